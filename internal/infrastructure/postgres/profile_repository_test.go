package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
)

// =============================================================================
// Fakes
// =============================================================================

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func idRow(id int64) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = id
		return nil
	}}
}

func errRow(err error) pgx.Row {
	return fakeRow{scan: func(_ ...any) error { return err }}
}

type statement struct {
	sql  string
	args []any
}

// fakeQuerier stands in for the transaction the insert helpers run on,
// answering each statement with the next scripted row.
type fakeQuerier struct {
	stmts []statement
	rows  []pgx.Row
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.stmts = append(q.stmts, statement{sql: sql, args: args})
	return q.rows[len(q.stmts)-1]
}

// =============================================================================
// Transactional profile creation
// =============================================================================

func TestCreateClientTx_InsertsAddressThenClient(t *testing.T) {
	tx := &fakeQuerier{rows: []pgx.Row{idRow(11), idRow(3)}}
	c := &entity.Cliente{IDUsuario: 42, Nome: "Ana"}
	end := &entity.Endereco{Logradouro: "Rua A", Numero: "10"}

	if err := createClientTx(context.Background(), tx, c, end); err != nil {
		t.Fatalf("createClientTx: %v", err)
	}
	if len(tx.stmts) != 2 {
		t.Fatalf("expected two statements, got %d", len(tx.stmts))
	}
	if !strings.Contains(tx.stmts[0].sql, "INSERT INTO endereco") {
		t.Errorf("first statement must insert the address, got %q", tx.stmts[0].sql)
	}
	if !strings.Contains(tx.stmts[1].sql, "INSERT INTO cliente") {
		t.Errorf("second statement must insert the client, got %q", tx.stmts[1].sql)
	}
	if end.ID != 11 || c.ID != 3 {
		t.Errorf("expected ids 11/3, got %d/%d", end.ID, c.ID)
	}
	// The client row must reference the address inserted in the same
	// transaction.
	if got := tx.stmts[1].args[5]; got != int64(11) {
		t.Errorf("expected id_endereco 11 on the client insert, got %v", got)
	}
}

func TestCreateClientTx_ProfileInsertFailureAbortsTransaction(t *testing.T) {
	// The address insert succeeds, the profile insert fails. The error must
	// reach BeginFunc so the whole transaction, address included, rolls back.
	boom := errors.New("unique violation")
	tx := &fakeQuerier{rows: []pgx.Row{idRow(11), errRow(boom)}}
	c := &entity.Cliente{IDUsuario: 42}

	err := createClientTx(context.Background(), tx, c, &entity.Endereco{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the profile insert error to propagate, got %v", err)
	}
	if c.ID != 0 {
		t.Errorf("client id must stay unset on failure, got %d", c.ID)
	}
}

func TestCreateSellerTx_ProfileInsertFailureAbortsTransaction(t *testing.T) {
	boom := errors.New("unique violation")
	tx := &fakeQuerier{rows: []pgx.Row{idRow(11), errRow(boom)}}
	v := &entity.Vendedor{IDUsuario: 42, NomeLoja: "Loja da Ana"}

	err := createSellerTx(context.Background(), tx, v, &entity.Endereco{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the profile insert error to propagate, got %v", err)
	}
	if v.ID != 0 {
		t.Errorf("seller id must stay unset on failure, got %d", v.ID)
	}
}

func TestCreateSellerTx_AddressInsertFailureSkipsProfileInsert(t *testing.T) {
	boom := errors.New("connection reset")
	tx := &fakeQuerier{rows: []pgx.Row{errRow(boom)}}

	err := createSellerTx(context.Background(), tx, &entity.Vendedor{}, &entity.Endereco{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the address insert error to propagate, got %v", err)
	}
	if len(tx.stmts) != 1 {
		t.Errorf("expected no profile insert after a failed address insert, got %d statements", len(tx.stmts))
	}
}
