package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/application"
	repo "github.com/busca-app/cacapreco-api/internal/domain/repository"
	"github.com/busca-app/cacapreco-api/internal/interface/middleware"
	"github.com/busca-app/cacapreco-api/pkg/response"
	"github.com/busca-app/cacapreco-api/pkg/validation"
)

// ProductHandler exposes the public search plus the seller catalog CRUD.
type ProductHandler struct {
	Catalog  *application.CatalogService
	Profiles *application.ProfileService
}

func NewProductHandler(catalog *application.CatalogService, profiles *application.ProfileService) *ProductHandler {
	return &ProductHandler{Catalog: catalog, Profiles: profiles}
}

// Search is the public product search, open to anonymous users.
func (h *ProductHandler) Search(ctx *gin.Context) {
	list, err := h.Catalog.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao buscar produtos.", nil)
		return
	}
	response.Success(ctx, http.StatusOK, list, "")
}

// sellerID resolves the caller's seller profile id or writes the error.
func (h *ProductHandler) sellerID(ctx *gin.Context) (int64, bool) {
	id, err := h.Profiles.SellerID(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, application.ErrProfileMissing) {
			response.Error[any](ctx, http.StatusForbidden, "Complete o perfil de vendedor antes de gerenciar produtos.", nil)
		} else {
			response.Error[any](ctx, http.StatusInternalServerError, "Erro ao buscar perfil.", nil)
		}
		return 0, false
	}
	return id, true
}

// List returns the caller's offerings, optionally filtered by category.
func (h *ProductHandler) List(ctx *gin.Context) {
	idVendedor, ok := h.sellerID(ctx)
	if !ok {
		return
	}
	var idCategoria *int64
	if raw := ctx.Query("categoria"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error[any](ctx, http.StatusBadRequest, "Categoria inválida.", nil)
			return
		}
		idCategoria = &v
	}

	list, err := h.Catalog.SellerOfferings(ctx.Request.Context(), idVendedor, idCategoria)
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao listar produtos.", nil)
		return
	}
	response.Success(ctx, http.StatusOK, list, "")
}

type newVariationRequest struct {
	Nome                 string   `json:"nomeVariacao" binding:"required"`
	Valor                string   `json:"valorVariacao" binding:"required"`
	Preco                float64  `json:"preco" binding:"required,gt=0"`
	QuantidadeDisponivel int      `json:"quantidadeDisponivel" binding:"gte=0"`
	ImagensURL           []string `json:"imagensUrl" binding:"omitempty,dive,url"`
}

type createProductRequest struct {
	Nome           string                `json:"nomeProduto" binding:"required"`
	Descricao      string                `json:"descricao"`
	IDSubcategoria int64                 `json:"idSubcategoria" binding:"required"`
	Variacoes      []newVariationRequest `json:"variacoes" binding:"required,min=1,dive"`
}

// Create inserts a product with its variations, offers and images in one
// transaction; either everything lands or nothing does.
func (h *ProductHandler) Create(ctx *gin.Context) {
	idVendedor, ok := h.sellerID(ctx)
	if !ok {
		return
	}
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	p := repo.NovoProdutoCompleto{
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		IDSubcategoria: req.IDSubcategoria,
	}
	for _, v := range req.Variacoes {
		p.Variacoes = append(p.Variacoes, repo.NovaVariacao{
			Nome:                 v.Nome,
			Valor:                v.Valor,
			Preco:                v.Preco,
			QuantidadeDisponivel: v.QuantidadeDisponivel,
			ImagensURL:           v.ImagensURL,
		})
	}

	idProduto, err := h.Catalog.CreateComplete(ctx.Request.Context(), idVendedor, p)
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao cadastrar produto.", nil)
		return
	}
	response.Success(ctx, http.StatusCreated, gin.H{"idProduto": idProduto}, "Produto cadastrado com sucesso.")
}

type updateOfferRequest struct {
	IDVariacao           int64    `json:"idVariacao" binding:"required"`
	NomeProduto          *string  `json:"nomeProduto"`
	Descricao            *string  `json:"descricao"`
	Preco                *float64 `json:"preco" binding:"omitempty,gt=0"`
	QuantidadeDisponivel *int     `json:"quantidadeDisponivel" binding:"omitempty,gte=0"`
}

// Update edits a product and the caller's offer on one of its variations. The
// variation comes in the body; the offer must belong to the caller.
func (h *ProductHandler) Update(ctx *gin.Context) {
	idVendedor, ok := h.sellerID(ctx)
	if !ok {
		return
	}
	idProduto, err := strconv.ParseInt(ctx.Param("idProduto"), 10, 64)
	if err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Identificador inválido.", nil)
		return
	}
	var req updateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	up := repo.OfertaAtualizacao{
		NomeProduto:          req.NomeProduto,
		Descricao:            req.Descricao,
		Preco:                req.Preco,
		QuantidadeDisponivel: req.QuantidadeDisponivel,
	}
	err = h.Catalog.UpdateOffer(ctx.Request.Context(), idProduto, req.IDVariacao, idVendedor, up)
	switch {
	case err == nil:
		response.Success[any](ctx, http.StatusOK, nil, "Produto atualizado com sucesso.")
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](ctx, http.StatusForbidden, "Acesso negado.", nil)
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](ctx, http.StatusNotFound, "Produto não encontrado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao atualizar produto.", nil)
	}
}

// Delete removes the caller's offer on a variation.
func (h *ProductHandler) Delete(ctx *gin.Context) {
	idVendedor, ok := h.sellerID(ctx)
	if !ok {
		return
	}
	idVariacao, err := strconv.ParseInt(ctx.Param("idVariacao"), 10, 64)
	if err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Identificador inválido.", nil)
		return
	}

	err = h.Catalog.DeleteOffer(ctx.Request.Context(), idVariacao, idVendedor)
	switch {
	case err == nil:
		response.Success[any](ctx, http.StatusOK, nil, "Produto removido com sucesso.")
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](ctx, http.StatusForbidden, "Acesso negado.", nil)
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](ctx, http.StatusNotFound, "Produto não encontrado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao remover produto.", nil)
	}
}
