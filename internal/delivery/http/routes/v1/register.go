package v1

import (
	"careergps/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the constructed handlers into route registration so that
// wiring stays in the app container and this package only shapes URLs.
type Deps struct {
	Auth fiber.Handler

	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	UserSkillHandler   *handler.UserSkillHandler
	SkillHandler       *handler.SkillHandler
	JobsHandler        *handler.JobsHandler
	RecommendHandler   *handler.JobRecommendationHandler
	ApplicationHandler *handler.ApplicationHandler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	d.AuthHandler.RegisterRoutes(r.Group("/auth"))

	RegisterUsers(r.Group("/users", d.Auth), d.UserHandler, d.UserSkillHandler)

	d.SkillHandler.RegisterRoutes(r.Group("/skills"))

	RegisterJobs(r.Group("/jobs"), d.Auth, d.JobsHandler, d.RecommendHandler)

	d.ApplicationHandler.RegisterRoutes(r.Group("/applications", d.Auth))
}
