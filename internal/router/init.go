package router

import (
	"todo-api/internal/application"
	"todo-api/internal/container"
	pginfra "todo-api/internal/infrastructure/postgres"
	handlers "todo-api/internal/interface/http"
	"todo-api/internal/interface/middleware"
	"todo-api/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it. Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	todoRepo := pginfra.NewTodoRepository(container.GetPGPool())

	gate := middleware.NewGate(
		container.GetJWT(),
		userRepo,
		container.GetRedis(),
		cfg.AuthCacheTTL,
		cfg.PermissionPolicy,
		logger,
	)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	todoSvc := application.NewTodoService(todoRepo, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, logger), gate))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(gate))
	}
}
