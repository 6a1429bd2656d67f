package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"careergps/internal/domain/job"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type JobListParams struct {
	Title    string
	Company  string
	Location string
	Remote   *bool
	Limit    int
	Offset   int
}

type JobListItem struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	SalaryMin  *float64  `json:"salary_min"`
	SalaryMax  *float64  `json:"salary_max"`
	JobType    string    `json:"job_type"`
	Remote     bool      `json:"remote"`
	URL        string    `json:"url"`
	Source     string    `json:"source"`
	PostedDate time.Time `json:"posted_date"`
	Skills     []string  `json:"skills"`
}

type CreateJobInput struct {
	Title            string
	Company          string
	Location         string
	Description      string
	SalaryMin        *float64
	SalaryMax        *float64
	JobType          string
	Remote           bool
	URL              string
	RequiredSkillIDs []uuid.UUID
}

type JobUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, []string, error)
	CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error)
}

type Jobs struct {
	jobs      repository.JobRepository
	skills    repository.SkillRepository
	jobSkills repository.JobSkillRepository
	cache     JobCache
	logger    *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, skills repository.SkillRepository, jobSkills repository.JobSkillRepository, cache JobCache, logger *log.Logger) *Jobs {
	if logger == nil {
		logger = log.New(log.Writer(), "[jobs] ", log.LstdFlags)
	}
	return &Jobs{jobs: jobs, skills: skills, jobSkills: jobSkills, cache: cache, logger: logger}
}

func (u *Jobs) ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error) {
	if params.Limit == 0 {
		params.Limit = 20
	}
	if params.Limit < 0 || params.Limit > 50 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	cacheKey := JobListCacheKey(params)
	if u.cache != nil {
		var cached []JobListItem
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			u.logger.Printf("cache hit: %s", cacheKey)
			return cached, nil
		}
	}

	// Single-flight guard: when another request is already filling this
	// key, wait briefly and re-check before hitting the database.
	if u.cache != nil {
		lockKey := JobListLockKey(cacheKey)
		acquired, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && acquired {
			defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
		} else if err == nil {
			time.Sleep(300 * time.Millisecond)
			var cached []JobListItem
			if hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached); err2 == nil && hit {
				return cached, nil
			}
		}
	}

	items, err := u.queryJobs(ctx, params)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, items, 10*time.Minute); err != nil {
			u.logger.Printf("cache store failed: %v", err)
		}
	}
	return items, nil
}

func (u *Jobs) queryJobs(ctx context.Context, params JobListParams) ([]JobListItem, error) {
	jobs, err := u.jobs.ListActive(ctx, repository.JobFilter{
		Title:    strings.TrimSpace(params.Title),
		Company:  strings.TrimSpace(params.Company),
		Location: strings.TrimSpace(params.Location),
		Remote:   params.Remote,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	skillsByJob, err := u.jobSkills.SkillsByJobIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	items := make([]JobListItem, 0, len(jobs))
	for _, j := range jobs {
		names := make([]string, 0, len(skillsByJob[j.ID]))
		for _, sk := range skillsByJob[j.ID] {
			names = append(names, sk.Name)
		}
		items = append(items, JobListItem{
			ID:         j.ID,
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			SalaryMin:  j.SalaryMin,
			SalaryMax:  j.SalaryMax,
			JobType:    j.JobType,
			Remote:     j.Remote,
			URL:        j.URL,
			Source:     j.Source,
			PostedDate: j.PostedDate,
			Skills:     names,
		})
	}
	return items, nil
}

func (u *Jobs) GetJob(ctx context.Context, id uuid.UUID) (job.Job, []string, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, nil, ErrJobNotFound
		}
		return job.Job{}, nil, ErrInternal
	}

	skillsByJob, err := u.jobSkills.SkillsByJobIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return job.Job{}, nil, ErrInternal
	}
	names := make([]string, 0, len(skillsByJob[id]))
	for _, sk := range skillsByJob[id] {
		names = append(names, sk.Name)
	}
	return j, names, nil
}

// CreateJob handles manual postings. Required skills must already exist
// in the catalog.
func (u *Jobs) CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	if title == "" || company == "" {
		return job.Job{}, ErrInvalidInput
	}
	jobType := strings.TrimSpace(in.JobType)
	if jobType == "" {
		jobType = "Full-time"
	}

	for _, skillID := range in.RequiredSkillIDs {
		if _, err := u.skills.GetByID(ctx, skillID); err != nil {
			if errors.Is(err, repository.ErrSkillNotFound) {
				return job.Job{}, ErrSkillNotFound
			}
			return job.Job{}, ErrInternal
		}
	}

	created, err := u.jobs.Create(ctx, job.Job{
		Title:       title,
		Company:     company,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
		JobType:     jobType,
		Remote:      in.Remote,
		URL:         strings.TrimSpace(in.URL),
		Source:      "manual",
		PostedDate:  time.Now().UTC(),
		IsActive:    true,
	})
	if err != nil {
		return job.Job{}, ErrInternal
	}

	for _, skillID := range in.RequiredSkillIDs {
		if err := u.jobSkills.Attach(ctx, created.ID, skillID); err != nil {
			return job.Job{}, ErrInternal
		}
	}

	if u.cache != nil {
		for _, pattern := range []string{"jobs:list:*", "jobs:recs:*"} {
			if err := u.cache.DeleteByPattern(ctx, pattern); err != nil {
				u.logger.Printf("cache invalidation failed: %v", err)
			}
		}
	}
	return created, nil
}
