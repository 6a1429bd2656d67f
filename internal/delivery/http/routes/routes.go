package routes

import (
	"careergps/internal/delivery/http/handler"
	v1 "careergps/internal/delivery/http/routes/v1"
	"careergps/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	wsh    *ws.Handler
	deps   v1.Deps
}

func NewRegistry(health *handler.HealthHandler, wsh *ws.Handler, deps v1.Deps) *Registry {
	return &Registry{health: health, wsh: wsh, deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	if r.wsh != nil {
		app.Get("/ws/jobs", r.wsh.HandleJobsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
