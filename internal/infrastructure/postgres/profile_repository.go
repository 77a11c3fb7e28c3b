package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) ClientByUserID(ctx context.Context, idUsuario int64) (*entity.Cliente, error) {
	c := &entity.Cliente{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, id_usuario, nome, telefone, cpf, data_nascimento, id_endereco
		FROM cliente
		WHERE id_usuario = $1
	`, idUsuario).Scan(&c.ID, &c.IDUsuario, &c.Nome, &c.Telefone, &c.CPF, &c.DataNascimento, &c.IDEndereco)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *ProfileRepository) SellerByUserID(ctx context.Context, idUsuario int64) (*entity.Vendedor, error) {
	v := &entity.Vendedor{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, id_usuario, nome_loja, cnpj, telefone, fundacao, horario_funcionamento,
		       nome_responsavel, cpf_responsavel, breve_descricao, logotipo_url,
		       website_redes_sociais, id_categoria_loja, id_endereco
		FROM vendedor
		WHERE id_usuario = $1
	`, idUsuario).Scan(&v.ID, &v.IDUsuario, &v.NomeLoja, &v.CNPJ, &v.Telefone, &v.Fundacao,
		&v.HorarioFuncionamento, &v.NomeResponsavel, &v.CPFResponsavel, &v.BreveDescricao,
		&v.LogotipoURL, &v.WebsiteRedesSociais, &v.IDCategoriaLoja, &v.IDEndereco)
	if err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

// CreateClient inserts the address and the client row in one transaction.
// A failed profile insert rolls the address back too.
func (r *ProfileRepository) CreateClient(ctx context.Context, c *entity.Cliente, end *entity.Endereco) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return createClientTx(ctx, tx, c, end)
	})
	if err != nil {
		return mapErr(err)
	}
	c.IDEndereco = end.ID
	return nil
}

func (r *ProfileRepository) CreateSeller(ctx context.Context, v *entity.Vendedor, end *entity.Endereco) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return createSellerTx(ctx, tx, v, end)
	})
	if err != nil {
		return mapErr(err)
	}
	v.IDEndereco = end.ID
	return nil
}

// rowQuerier is the slice of pgx.Tx the profile inserts need.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// createClientTx runs inside BeginFunc: any returned error aborts the
// transaction, so the address insert never commits without the profile row.
func createClientTx(ctx context.Context, tx rowQuerier, c *entity.Cliente, end *entity.Endereco) error {
	if err := insertAddress(ctx, tx, end); err != nil {
		return err
	}
	return tx.QueryRow(ctx, `
		INSERT INTO cliente (id_usuario, nome, telefone, cpf, data_nascimento, id_endereco)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.IDUsuario, c.Nome, c.Telefone, c.CPF, c.DataNascimento, end.ID).Scan(&c.ID)
}

func createSellerTx(ctx context.Context, tx rowQuerier, v *entity.Vendedor, end *entity.Endereco) error {
	if err := insertAddress(ctx, tx, end); err != nil {
		return err
	}
	return tx.QueryRow(ctx, `
		INSERT INTO vendedor (id_usuario, nome_loja, cnpj, telefone, fundacao, horario_funcionamento,
		                      nome_responsavel, cpf_responsavel, breve_descricao, logotipo_url,
		                      website_redes_sociais, id_categoria_loja, id_endereco)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, v.IDUsuario, v.NomeLoja, v.CNPJ, v.Telefone, v.Fundacao, v.HorarioFuncionamento,
		v.NomeResponsavel, v.CPFResponsavel, v.BreveDescricao, v.LogotipoURL,
		v.WebsiteRedesSociais, v.IDCategoriaLoja, end.ID).Scan(&v.ID)
}

func insertAddress(ctx context.Context, tx rowQuerier, end *entity.Endereco) error {
	return tx.QueryRow(ctx, `
		INSERT INTO endereco (logradouro, numero, complemento, bairro, cidade, estado, cep)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, end.Logradouro, end.Numero, end.Complemento, end.Bairro, end.Cidade, end.Estado, end.CEP).Scan(&end.ID)
}

func (r *ProfileRepository) UpdateSeller(ctx context.Context, idVendedor int64, up entity.VendedorUpdate) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE vendedor SET
			nome_loja             = COALESCE($1, nome_loja),
			cnpj                  = COALESCE($2, cnpj),
			telefone              = COALESCE($3, telefone),
			horario_funcionamento = COALESCE($4, horario_funcionamento),
			nome_responsavel      = COALESCE($5, nome_responsavel),
			cpf_responsavel       = COALESCE($6, cpf_responsavel),
			breve_descricao       = COALESCE($7, breve_descricao),
			logotipo_url          = COALESCE($8, logotipo_url),
			website_redes_sociais = COALESCE($9, website_redes_sociais),
			id_categoria_loja     = COALESCE($10, id_categoria_loja)
		WHERE id = $11
	`, up.NomeLoja, up.CNPJ, up.Telefone, up.HorarioFuncionamento, up.NomeResponsavel,
		up.CPFResponsavel, up.BreveDescricao, up.LogotipoURL, up.WebsiteRedesSociais,
		up.IDCategoriaLoja, idVendedor)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SellerRatings(ctx context.Context, idVendedor int64) ([]entity.AvaliacaoLoja, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, id_vendedor, nota, comentario, created_at
		FROM avaliacao_loja
		WHERE id_vendedor = $1
		ORDER BY created_at DESC
	`, idVendedor)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.AvaliacaoLoja{}
	for rows.Next() {
		var a entity.AvaliacaoLoja
		if err := rows.Scan(&a.ID, &a.IDVendedor, &a.Nota, &a.Comentario, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) CreateIndication(ctx context.Context, ind *entity.IndicacaoVendedor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO indicacao_vendedor (id_cliente, id_vendedor, nome_indicado, email_indicado, telefone_indicado, mensagem)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, ind.IDCliente, ind.IDVendedor, ind.NomeIndicado, ind.EmailIndicado, ind.TelefoneIndicado, ind.Mensagem)
	return mapErr(row.Scan(&ind.ID, &ind.CreatedAt))
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
