package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/application"
	"github.com/busca-app/cacapreco-api/pkg/response"
)

// CategoryHandler serves the public category and subcategory lists.
type CategoryHandler struct {
	Catalog *application.CatalogService
}

func NewCategoryHandler(catalog *application.CatalogService) *CategoryHandler {
	return &CategoryHandler{Catalog: catalog}
}

func (h *CategoryHandler) Categories(ctx *gin.Context) {
	cats, err := h.Catalog.Categories(ctx.Request.Context())
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao listar categorias.", nil)
		return
	}
	response.Success(ctx, http.StatusOK, cats, "")
}

func (h *CategoryHandler) Subcategories(ctx *gin.Context) {
	subs, err := h.Catalog.Subcategories(ctx.Request.Context())
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao listar subcategorias.", nil)
		return
	}
	response.Success(ctx, http.StatusOK, subs, "")
}
