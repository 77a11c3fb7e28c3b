package repository

import (
	"context"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
)

// NovaVariacao is one variation of a product being created, together with its
// offer and optional image URLs.
type NovaVariacao struct {
	Nome                 string
	Valor                string
	Preco                float64
	QuantidadeDisponivel int
	ImagensURL           []string
}

// NovoProdutoCompleto is the transactional unit for product creation: the base
// product plus at least one variation, each with an offer for the seller.
type NovoProdutoCompleto struct {
	Nome           string
	Descricao      string
	IDSubcategoria int64
	Variacoes      []NovaVariacao
}

// OfertaAtualizacao carries the fields a seller may change on an existing
// product/offer pair. Nil leaves the column unchanged.
type OfertaAtualizacao struct {
	NomeProduto          *string
	Descricao            *string
	Preco                *float64
	QuantidadeDisponivel *int
}

type CatalogRepository interface {
	Categories(ctx context.Context) ([]entity.CategoriaLoja, error)
	Subcategories(ctx context.Context) ([]entity.SubcategoriaProduto, error)

	SearchOfferings(ctx context.Context, q string) ([]entity.OfertaListada, error)
	SellerOfferings(ctx context.Context, idVendedor int64, idCategoria *int64) ([]entity.OfertaListada, error)

	// CreateComplete inserts product, variations, offers and images in one
	// transaction and returns the new product id.
	CreateComplete(ctx context.Context, idVendedor int64, p NovoProdutoCompleto) (int64, error)

	// OfferOwned reports whether the offer on the variation belongs to the seller.
	OfferOwned(ctx context.Context, idVariacao, idVendedor int64) (bool, error)
	UpdateProductOffer(ctx context.Context, idProduto, idVariacao, idVendedor int64, up OfertaAtualizacao) error
	DeleteOffer(ctx context.Context, idVariacao, idVendedor int64) error
}

// MonitorRepository stores competitor page snapshots for the monitoring stub.
type MonitorRepository interface {
	InsertSnapshot(ctx context.Context, m *entity.ProdutoMonitorado) error
}
