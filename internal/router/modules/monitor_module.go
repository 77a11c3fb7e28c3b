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

// MonitorModule mounts the seller-only price monitoring and dashboard routes.
type MonitorModule struct {
	Monitor   *handlers.MonitorHandler
	Dashboard *handlers.DashboardHandler
	JWT       *helpers.JWTManager
}

func NewMonitorModule(mon *handlers.MonitorHandler, dash *handlers.DashboardHandler, jwt *helpers.JWTManager) *MonitorModule {
	return &MonitorModule{Monitor: mon, Dashboard: dash, JWT: jwt}
}

func (m *MonitorModule) Register(rg *gin.RouterGroup) {
	sellerOnly := []gin.HandlerFunc{
		middleware.Auth(m.JWT),
		middleware.RequireRole(entity.RoleVendedor),
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil),
	}

	monitor := rg.Group("/monitor", sellerOnly...)
	monitor.POST("/add-url", m.Monitor.AddURL)

	dashboard := rg.Group("/dashboard", sellerOnly...)
	dashboard.GET("/analise", m.Dashboard.Analysis)
}
