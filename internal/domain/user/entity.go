package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	FullName        string
	ExperienceYears int
	Education       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
