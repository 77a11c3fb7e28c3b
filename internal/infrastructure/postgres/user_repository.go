package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, senha_hash, tipo_usuario, ativo, email_confirmado,
	token_confirmacao, token_expira_em, ultimo_login, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.Usuario) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO usuario (email, senha_hash, tipo_usuario, ativo, email_confirmado, token_confirmacao, token_expira_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.SenhaHash, u.Tipo, u.Ativo, u.EmailConfirmado, u.TokenConfirmacao, u.TokenExpiraEm)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM usuario
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM usuario
		WHERE id = $1
	`, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanOne(row rowScanner) (*entity.Usuario, error) {
	u := &entity.Usuario{}
	if err := row.Scan(&u.ID, &u.Email, &u.SenhaHash, &u.Tipo, &u.Ativo, &u.EmailConfirmado,
		&u.TokenConfirmacao, &u.TokenExpiraEm, &u.UltimoLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) Activate(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE usuario
		SET ativo = TRUE, email_confirmado = TRUE, token_confirmacao = NULL, token_expira_em = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RotateConfirmation(ctx context.Context, email, code string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE usuario
		SET token_confirmacao = $1, token_expira_em = $2, updated_at = now()
		WHERE email = $3
	`, code, expiresAt, email)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE usuario SET ultimo_login = now() WHERE id = $1
	`, id)
	return mapErr(err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
