package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/radityaqb/go-user-accounts/internal/container"
	handlers "github.com/radityaqb/go-user-accounts/internal/interface/http"
	"github.com/radityaqb/go-user-accounts/internal/interface/middleware"
)

// UserModule wires the user CRUD handlers into routes.
// GET    /users
// GET    /users/:id
// POST   /users
// PUT    /users/:id
// DELETE /users/:id
// PATCH  /users/:id/password
// GET    /search/users
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Mutations get a per-IP limiter; private addresses bypass it so local
	// tooling and health probes are never throttled.
	writeLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	{
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.POST("", createLimiter, m.Handler.Create)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
		users.PATCH("/:id/password", writeLimiter, m.Handler.ChangePassword)
	}
	rg.GET("/search/users", m.Handler.Search)
}
