package repository

import (
	"context"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
)

// ProfileRepository covers the role-specific profile rows whose existence
// drives perfil_completo, plus the seller-adjacent tables (ratings,
// referrals).
//
// CreateClient and CreateSeller insert the address and the profile row in one
// transaction: if either insert fails nothing is committed.
type ProfileRepository interface {
	ClientByUserID(ctx context.Context, idUsuario int64) (*entity.Cliente, error)
	SellerByUserID(ctx context.Context, idUsuario int64) (*entity.Vendedor, error)

	CreateClient(ctx context.Context, c *entity.Cliente, end *entity.Endereco) error
	CreateSeller(ctx context.Context, v *entity.Vendedor, end *entity.Endereco) error

	UpdateSeller(ctx context.Context, idVendedor int64, up entity.VendedorUpdate) error
	SellerRatings(ctx context.Context, idVendedor int64) ([]entity.AvaliacaoLoja, error)
	CreateIndication(ctx context.Context, ind *entity.IndicacaoVendedor) error
}
