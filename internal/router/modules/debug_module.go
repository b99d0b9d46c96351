package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"todo-api/internal/container"
	"todo-api/internal/interface/middleware"
)

type DebugModule struct {
	Gate *middleware.Gate
}

func NewDebugModule(gate *middleware.Gate) *DebugModule {
	return &DebugModule{Gate: gate}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Runtime metrics (expvar), admins only, rate-limited per IP
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars",
		rl,
		m.Gate.Auth(middleware.GateConfig{AuthHeaderRequired: true}),
		m.Gate.RequireAdmin(),
		gin.WrapH(expvar.Handler()),
	)
}
