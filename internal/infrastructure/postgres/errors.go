package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/busca-app/cacapreco-api/internal/domain/repository"
)

// mapErr translates pgx errors into the repository sentinels. Unique-constraint
// violations become ErrDuplicate so the database, not the read-then-insert
// pre-check, decides conflicts.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}
