package dto

import (
	"time"

	"careergps/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"applied_date"`
	LastUpdated time.Time `json:"last_updated"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedDate: a.AppliedDate,
		LastUpdated: a.LastUpdated,
	}
}

func FromApplications(in []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, FromApplication(a))
	}
	return out
}
