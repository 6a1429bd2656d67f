package dto

import (
	"time"

	"careergps/internal/domain/job"

	"github.com/google/uuid"
)

type JobDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	SalaryMin   *float64  `json:"salary_min"`
	SalaryMax   *float64  `json:"salary_max"`
	JobType     string    `json:"job_type"`
	Remote      bool      `json:"remote"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PostedDate  time.Time `json:"posted_date"`
	IsActive    bool      `json:"is_active"`
	Skills      []string  `json:"skills"`
}

func FromJob(j job.Job, skills []string) JobDetailResponse {
	if skills == nil {
		skills = []string{}
	}
	return JobDetailResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		JobType:     j.JobType,
		Remote:      j.Remote,
		URL:         j.URL,
		Source:      j.Source,
		PostedDate:  j.PostedDate,
		IsActive:    j.IsActive,
		Skills:      skills,
	}
}
