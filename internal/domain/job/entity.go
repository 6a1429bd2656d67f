package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID
	Title       string
	Company     string
	Location    string
	Description string
	SalaryMin   *float64
	SalaryMax   *float64
	JobType     string
	Remote      bool
	URL         string
	Source      string
	PostedDate  time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
