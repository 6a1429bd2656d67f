package handler

import (
	"careergps/internal/delivery/http/middleware"
	"careergps/internal/pkg/response"
	"careergps/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.RecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/recommended", h.Recommend, auth)
}

func (h *JobRecommendationHandler) Recommend(c fiber.Ctx) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	recs, err := h.uc.Recommend(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, recs)
}
