package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/domain/repository"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]entity.CategoriaLoja, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nome, descricao FROM categoria_loja ORDER BY nome
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.CategoriaLoja{}
	for rows.Next() {
		var c entity.CategoriaLoja
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) Subcategories(ctx context.Context) ([]entity.SubcategoriaProduto, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nome, id_categoria_loja FROM subcategoria_produto ORDER BY nome
	`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.SubcategoriaProduto{}
	for rows.Next() {
		var s entity.SubcategoriaProduto
		if err := rows.Scan(&s.ID, &s.Nome, &s.IDCategoriaLoja); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const offeringColumns = `
	p.id, p.nome, p.descricao,
	vp.id, vp.nome, vp.valor,
	op.preco, op.quantidade_disponivel`

// SearchOfferings is the SQL fallback for the public product search; the
// service prefers Elasticsearch when one is configured.
func (r *CatalogRepository) SearchOfferings(ctx context.Context, q string) ([]entity.OfertaListada, error) {
	query := `
		SELECT` + offeringColumns + `, v.nome_loja
		FROM produto p
		JOIN variacao_produto vp ON vp.id_produto = p.id
		JOIN oferta_produto op ON op.id_variacao = vp.id
		JOIN vendedor v ON v.id = op.id_vendedor`
	args := []any{}
	if q != "" {
		query += ` WHERE p.nome ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY p.nome, vp.nome`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.OfertaListada{}
	for rows.Next() {
		var o entity.OfertaListada
		if err := rows.Scan(&o.IDProduto, &o.NomeProduto, &o.Descricao, &o.IDVariacao,
			&o.NomeVariacao, &o.ValorVariacao, &o.Preco, &o.QuantidadeDisponivel, &o.NomeLoja); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) SellerOfferings(ctx context.Context, idVendedor int64, idCategoria *int64) ([]entity.OfertaListada, error) {
	query := `
		SELECT` + offeringColumns + `, c.nome, iv.url_imagem
		FROM produto p
		JOIN variacao_produto vp ON vp.id_produto = p.id
		JOIN oferta_produto op ON op.id_variacao = vp.id
		LEFT JOIN subcategoria_produto sc ON sc.id = p.id_subcategoria
		LEFT JOIN categoria_loja c ON c.id = sc.id_categoria_loja
		LEFT JOIN imagem_variacao iv ON iv.id_variacao = vp.id
		WHERE op.id_vendedor = $1`
	args := []any{idVendedor}
	if idCategoria != nil {
		query += ` AND c.id = $2`
		args = append(args, *idCategoria)
	}
	query += ` ORDER BY p.nome, vp.nome`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.OfertaListada{}
	for rows.Next() {
		var o entity.OfertaListada
		if err := rows.Scan(&o.IDProduto, &o.NomeProduto, &o.Descricao, &o.IDVariacao,
			&o.NomeVariacao, &o.ValorVariacao, &o.Preco, &o.QuantidadeDisponivel,
			&o.NomeCategoria, &o.URLImagem); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateComplete inserts the product, every variation with its offer and image
// URLs, all in one transaction.
func (r *CatalogRepository) CreateComplete(ctx context.Context, idVendedor int64, p repository.NovoProdutoCompleto) (int64, error) {
	var idProduto int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO produto (nome, descricao, id_subcategoria)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.Nome, p.Descricao, p.IDSubcategoria).Scan(&idProduto); err != nil {
			return err
		}

		for _, v := range p.Variacoes {
			var idVariacao int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO variacao_produto (id_produto, nome, valor)
				VALUES ($1, $2, $3)
				RETURNING id
			`, idProduto, v.Nome, v.Valor).Scan(&idVariacao); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO oferta_produto (id_vendedor, id_variacao, preco, quantidade_disponivel)
				VALUES ($1, $2, $3, $4)
			`, idVendedor, idVariacao, v.Preco, v.QuantidadeDisponivel); err != nil {
				return err
			}
			for _, url := range v.ImagensURL {
				if _, err := tx.Exec(ctx, `
					INSERT INTO imagem_variacao (id_variacao, url_imagem)
					VALUES ($1, $2)
				`, idVariacao, url); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, mapErr(err)
	}
	return idProduto, nil
}

func (r *CatalogRepository) OfferOwned(ctx context.Context, idVariacao, idVendedor int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `
		SELECT 1 FROM oferta_produto WHERE id_variacao = $1 AND id_vendedor = $2
	`, idVariacao, idVendedor).Scan(&one)
	if err != nil {
		if mapErr(err) == repository.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *CatalogRepository) UpdateProductOffer(ctx context.Context, idProduto, idVariacao, idVendedor int64, up repository.OfertaAtualizacao) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if up.NomeProduto != nil || up.Descricao != nil {
			if _, err := tx.Exec(ctx, `
				UPDATE produto SET
					nome      = COALESCE($1, nome),
					descricao = COALESCE($2, descricao)
				WHERE id = $3
			`, up.NomeProduto, up.Descricao, idProduto); err != nil {
				return err
			}
		}
		if up.Preco != nil || up.QuantidadeDisponivel != nil {
			if _, err := tx.Exec(ctx, `
				UPDATE oferta_produto SET
					preco                 = COALESCE($1, preco),
					quantidade_disponivel = COALESCE($2, quantidade_disponivel)
				WHERE id_variacao = $3 AND id_vendedor = $4
			`, up.Preco, up.QuantidadeDisponivel, idVariacao, idVendedor); err != nil {
				return err
			}
		}
		return nil
	})
	return mapErr(err)
}

func (r *CatalogRepository) DeleteOffer(ctx context.Context, idVariacao, idVendedor int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM oferta_produto WHERE id_variacao = $1 AND id_vendedor = $2
	`, idVariacao, idVendedor)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)
