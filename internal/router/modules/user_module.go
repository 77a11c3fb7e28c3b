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

// UserModule mounts the profile and session routes under /usuarios. Every
// route requires a valid bearer token; profile completion derives the account
// id from it.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/usuarios")
	users.Use(
		middleware.Auth(m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)

	users.POST("/client/complete-profile", m.Handler.CompleteClient)
	users.POST("/seller/complete-profile", m.Handler.CompleteSeller)
	users.GET("/profile", m.Handler.Profile)
	users.PUT("/profile", middleware.RequireRole(entity.RoleVendedor), m.Handler.UpdateSeller)
	users.GET("/avaliacoes", middleware.RequireRole(entity.RoleVendedor), m.Handler.Ratings)
	users.POST("/indicate-seller", m.Handler.Indicate)
	users.POST("/suggestions", m.Handler.Suggestion)
	users.GET("/session", m.Handler.Session)
}
