package dto

import (
	"time"

	"careergps/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	ExperienceYears int       `json:"experience_years"`
	Education       string    `json:"education"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		ExperienceYears: u.ExperienceYears,
		Education:       u.Education,
		CreatedAt:       u.CreatedAt,
	}
}
