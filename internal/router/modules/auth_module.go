package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/container"
	handlers "github.com/busca-app/cacapreco-api/internal/interface/http"
	"github.com/busca-app/cacapreco-api/internal/interface/middleware"
)

// AuthModule mounts the public account lifecycle under /autenticacao.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil) // 5 req/min per IP
	resendLimiter := middleware.RateLimit(container.GetRedis(), 3, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/autenticacao")
	auth.POST("/cadastro", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/verify-email", resendLimiter, m.Handler.VerifyEmail)
	auth.POST("/resend-verification", resendLimiter, m.Handler.ResendVerification)
}
