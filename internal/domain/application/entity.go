package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusReviewing, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	JobID       uuid.UUID
	CoverLetter string
	Status      Status
	AppliedDate time.Time
	LastUpdated time.Time
}
