package repository

import (
	"context"
	"fmt"
	"time"

	"careergps/internal/domain/job"
	"careergps/internal/ingest"

	"github.com/google/uuid"
)

// IngestStore adapts the job, skill and job-skill repositories to the
// persistence surface the ingestion pipeline writes through.
type IngestStore struct {
	jobs      JobRepository
	skills    SkillRepository
	jobSkills JobSkillRepository
}

func NewIngestStore(jobs JobRepository, skills SkillRepository, jobSkills JobSkillRepository) *IngestStore {
	return &IngestStore{jobs: jobs, skills: skills, jobSkills: jobSkills}
}

func (s *IngestStore) FindByIdentity(ctx context.Context, url, title, company string) (job.Job, bool, error) {
	return s.jobs.FindByIdentity(ctx, url, title, company)
}

func (s *IngestStore) CreateFromPosting(ctx context.Context, source string, p ingest.Posting) (job.Job, error) {
	return s.jobs.Create(ctx, postingToJob(source, p))
}

func (s *IngestStore) UpdateFromPosting(ctx context.Context, id uuid.UUID, p ingest.Posting) error {
	return s.jobs.UpdateFromPosting(ctx, id, postingToJob("", p))
}

func (s *IngestStore) AttachSkills(ctx context.Context, jobID uuid.UUID, names []string) error {
	for _, name := range names {
		skillID, err := s.skills.EnsureByName(ctx, name)
		if err != nil {
			return fmt.Errorf("ensure skill %q: %w", name, err)
		}
		if err := s.jobSkills.Attach(ctx, jobID, skillID); err != nil {
			return fmt.Errorf("attach skill %q: %w", name, err)
		}
	}
	return nil
}

func (s *IngestStore) DeactivateNotTouched(ctx context.Context, touched []uuid.UUID) (int64, error) {
	return s.jobs.DeactivateNotTouched(ctx, touched)
}

func (s *IngestStore) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.jobs.DeleteInactiveBefore(ctx, cutoff)
}

func postingToJob(source string, p ingest.Posting) job.Job {
	jobType := p.JobType
	if jobType == "" {
		jobType = "Full-time"
	}
	posted := p.PostedDate
	if posted.IsZero() {
		posted = time.Now().UTC()
	}
	return job.Job{
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		JobType:     jobType,
		Remote:      p.Remote,
		URL:         p.URL,
		Source:      source,
		PostedDate:  posted,
		IsActive:    true,
	}
}
