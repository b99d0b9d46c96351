package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"todo-api/internal/container"
	handlers "todo-api/internal/interface/http"
	"todo-api/internal/interface/middleware"
)

// TodoModule wires the todo handlers behind the authorization gate.
// Every route needs a valid bearer token; none declares extra permissions,
// so the gate's permission policy only comes into play for deployments that
// add permission sets of their own.
type TodoModule struct {
	Handler *handlers.TodoHandler
	Gate    *middleware.Gate
}

func NewTodoModule(h *handlers.TodoHandler, gate *middleware.Gate) *TodoModule {
	return &TodoModule{Handler: h, Gate: gate}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.Use(m.Gate.Auth(middleware.GateConfig{AuthHeaderRequired: true}))
	todos.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		todos.POST("", m.Handler.Create)
		todos.GET("", m.Handler.List)
		todos.GET("/:id", m.Handler.Get)
		todos.PUT("/:id", m.Handler.Update)
		todos.DELETE("/:id", m.Handler.Delete)
		todos.PATCH("/:id/toggle", m.Handler.Toggle)
	}
}
