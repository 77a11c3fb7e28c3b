package router

import (
	"github.com/busca-app/cacapreco-api/internal/application"
	"github.com/busca-app/cacapreco-api/internal/container"
	pginfra "github.com/busca-app/cacapreco-api/internal/infrastructure/postgres"
	handlers "github.com/busca-app/cacapreco-api/internal/interface/http"
	"github.com/busca-app/cacapreco-api/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module on the registry.
// Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	profileRepo := pginfra.NewProfileRepository(pool)
	catalogRepo := pginfra.NewCatalogRepository(pool)
	monitorRepo := pginfra.NewMonitorRepository(pool)

	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(userRepo, profileRepo, container.GetJWT(), pub, logger, cfg.VerificationCodeTTL)
	profileSvc := application.NewProfileService(userRepo, profileRepo, logger)
	catalogSvc := application.NewCatalogService(catalogRepo, container.GetRedis(), container.GetES(), cfg.ESProductsIndex, logger)

	authH := handlers.NewAuthHandler(authSvc)
	userH := handlers.NewUserHandler(authSvc, profileSvc)
	productH := handlers.NewProductHandler(catalogSvc, profileSvc)
	categoryH := handlers.NewCategoryHandler(catalogSvc)
	monitorH := handlers.NewMonitorHandler(monitorRepo, profileSvc)
	dashH := handlers.NewDashboardHandler()

	r.Add(modules.NewAuthModule(authH))
	r.Add(modules.NewUserModule(userH, container.GetJWT()))
	r.Add(modules.NewCatalogModule(productH, categoryH, container.GetJWT()))
	r.Add(modules.NewMonitorModule(monitorH, dashH, container.GetJWT()))
}
