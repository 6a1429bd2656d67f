package v1

import (
	"careergps/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, auth fiber.Handler, jobsHandler *handler.JobsHandler, recommendHandler *handler.JobRecommendationHandler) {
	if r == nil || jobsHandler == nil {
		return
	}

	// "/recommended" goes first so the "/:jobID" wildcard cannot capture it.
	if recommendHandler != nil {
		recommendHandler.RegisterRoutes(r, auth)
	}
	jobsHandler.RegisterRoutes(r, auth)
}
