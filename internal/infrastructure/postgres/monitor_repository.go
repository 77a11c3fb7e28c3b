package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/domain/repository"
)

type MonitorRepository struct {
	pool *pgxpool.Pool
}

func NewMonitorRepository(pool *pgxpool.Pool) *MonitorRepository {
	return &MonitorRepository{pool: pool}
}

func (r *MonitorRepository) InsertSnapshot(ctx context.Context, m *entity.ProdutoMonitorado) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO produtos_monitorados_externos (id_vendedor, url_produto, nome_produto, preco_atual, ultima_coleta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.IDVendedor, m.URLProduto, m.NomeProduto, m.PrecoAtual, m.UltimaColeta)
	return mapErr(row.Scan(&m.ID))
}

var _ repository.MonitorRepository = (*MonitorRepository)(nil)
