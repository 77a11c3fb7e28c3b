package http

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/application"
	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	repo "github.com/busca-app/cacapreco-api/internal/domain/repository"
	"github.com/busca-app/cacapreco-api/internal/interface/middleware"
	"github.com/busca-app/cacapreco-api/pkg/response"
	"github.com/busca-app/cacapreco-api/pkg/validation"
)

// MonitorHandler registers competitor pages for price monitoring. Collection
// is stubbed: the first snapshot gets a placeholder price until the scraping
// pipeline fills real ones in.
type MonitorHandler struct {
	Monitor  repo.MonitorRepository
	Profiles *application.ProfileService
}

func NewMonitorHandler(monitor repo.MonitorRepository, profiles *application.ProfileService) *MonitorHandler {
	return &MonitorHandler{Monitor: monitor, Profiles: profiles}
}

type addURLRequest struct {
	URL         string `json:"url" binding:"required,url"`
	NomeProduto string `json:"nomeProduto"`
}

// fabricatedName builds the placeholder product name for url-only requests.
func fabricatedName(url string) string {
	if len(url) > 30 {
		url = url[:30]
	}
	return "Produto Fictício da URL: " + url + "..."
}

func (h *MonitorHandler) AddURL(ctx *gin.Context) {
	var req addURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "URL é obrigatória.", validation.ToDetails(err))
		return
	}
	if req.NomeProduto == "" {
		req.NomeProduto = fabricatedName(req.URL)
	}

	idVendedor, err := h.Profiles.SellerID(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, application.ErrProfileMissing) {
			response.Error[any](ctx, http.StatusForbidden, "Complete o perfil de vendedor antes de monitorar preços.", nil)
		} else {
			response.Error[any](ctx, http.StatusInternalServerError, "Erro ao buscar perfil.", nil)
		}
		return
	}

	m := &entity.ProdutoMonitorado{
		IDVendedor:   idVendedor,
		URLProduto:   req.URL,
		NomeProduto:  req.NomeProduto,
		PrecoAtual:   10 + rand.Float64()*90, // placeholder until real collection runs
		UltimaColeta: time.Now(),
	}
	if err := h.Monitor.InsertSnapshot(ctx.Request.Context(), m); err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Falha ao monitorar o produto. Tente novamente.", nil)
		return
	}
	response.Success(ctx, http.StatusOK, gin.H{
		"nomeProduto": m.NomeProduto,
		"preco":       m.PrecoAtual,
		"dataColeta":  m.UltimaColeta,
	}, "URL recebida para monitoramento. Dados fictícios retornados e armazenados.")
}
