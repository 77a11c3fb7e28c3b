package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/container"
	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	handlers "github.com/busca-app/cacapreco-api/internal/interface/http"
	"github.com/busca-app/cacapreco-api/internal/interface/middleware"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
)

// CatalogModule mounts the public category/search routes and the seller
// product CRUD.
type CatalogModule struct {
	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	JWT        *helpers.JWTManager
}

func NewCatalogModule(p *handlers.ProductHandler, c *handlers.CategoryHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Products: p, Categories: c, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	// Internal callers (health probes, the web frontend's SSR) hit the public
	// listing endpoints hard; private addresses bypass the limiter.
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/categories", publicLimiter, m.Categories.Categories)
	rg.GET("/subcategories", publicLimiter, m.Categories.Subcategories)

	products := rg.Group("/produtos")
	products.GET("", publicLimiter, m.Products.Search)

	seller := products.Group("/")
	seller.Use(
		middleware.Auth(m.JWT),
		middleware.RequireRole(entity.RoleVendedor),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	seller.GET("/meus-produtos", m.Products.List)
	seller.POST("/completo", m.Products.Create)
	seller.PUT("/:idProduto", m.Products.Update)
	seller.DELETE("/:idVariacao", m.Products.Delete)
}
