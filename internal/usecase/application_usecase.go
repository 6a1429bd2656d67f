package usecase

import (
	"context"
	"errors"
	"strings"

	"careergps/internal/domain/application"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrInvalidStatus        = errors.New("invalid application status")
)

type ApplicationUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID, coverLetter string) (application.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type Applications struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
}

func NewApplicationUsecase(applications repository.ApplicationRepository, jobs repository.JobRepository) *Applications {
	return &Applications{applications: applications, jobs: jobs}
}

func (u *Applications) ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	out, err := u.applications.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) Apply(ctx context.Context, userID, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if jobID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !exists {
		return application.Application{}, ErrJobNotFound
	}

	created, err := u.applications.Create(ctx, application.Application{
		UserID:      userID,
		JobID:       jobID,
		CoverLetter: strings.TrimSpace(coverLetter),
		Status:      application.StatusApplied,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return application.Application{}, ErrDuplicateApplication
		}
		return application.Application{}, ErrInternal
	}
	return created, nil
}

// UpdateStatus moves an application along its pipeline. Only the owner
// may touch it.
func (u *Applications) UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, status application.Status) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if a.UserID != userID {
		return application.Application{}, ErrForbidden
	}

	if err := u.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return application.Application{}, ErrInternal
	}

	updated, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	return updated, nil
}
