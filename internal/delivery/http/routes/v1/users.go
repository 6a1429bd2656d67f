package v1

import (
	"careergps/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, userSkillHandler *handler.UserSkillHandler) {
	if r == nil || userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r)
	if userSkillHandler != nil {
		userSkillHandler.RegisterRoutes(r)
	}
}
