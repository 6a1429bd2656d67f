package handler

import (
	"strconv"
	"strings"

	"careergps/internal/delivery/http/dto"
	"careergps/internal/delivery/http/middleware"
	"careergps/internal/pkg/response"
	"careergps/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

type createJobRequest struct {
	Title            string      `json:"title"`
	Company          string      `json:"company"`
	Location         string      `json:"location"`
	Description      string      `json:"description"`
	SalaryMin        *float64    `json:"salary_min"`
	SalaryMax        *float64    `json:"salary_max"`
	JobType          string      `json:"job_type"`
	Remote           bool        `json:"remote"`
	URL              string      `json:"url"`
	RequiredSkillIDs []uuid.UUID `json:"required_skill_ids"`
}

// RegisterRoutes must run after any handler that registers static paths
// under the same group, because "/:jobID" shadows later registrations.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/", h.List)
	r.Post("/", h.Create, auth)
	r.Get("/:jobID", h.Get)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	remote, err := parseQueryBool(c, "remote")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{
		Title:    c.Query("title"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
		Remote:   remote,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	j, skills, err := h.uc.GetJob(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j, skills))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.CreateJob(c.Context(), usecase.CreateJobInput{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Description:      req.Description,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		JobType:          req.JobType,
		Remote:           req.Remote,
		URL:              req.URL,
		RequiredSkillIDs: req.RequiredSkillIDs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromJob(j, nil))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func parseQueryBool(c fiber.Ctx, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
