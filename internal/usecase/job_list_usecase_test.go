package usecase

import (
	"context"
	"errors"
	"testing"

	"careergps/internal/domain/job"
	"careergps/internal/domain/skill"

	"github.com/google/uuid"
)

func TestListJobsValidation(t *testing.T) {
	u := NewJobUsecase(&stubJobRepo{}, &stubSkillRepo{}, &stubJobSkillRepo{}, nil, quietTestLogger())

	if _, err := u.ListJobs(context.Background(), JobListParams{Limit: 51}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("limit over cap: %v", err)
	}
	if _, err := u.ListJobs(context.Background(), JobListParams{Offset: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative offset: %v", err)
	}
}

func TestListJobsResolvesSkills(t *testing.T) {
	j := job.Job{ID: uuid.New(), Title: "Backend Engineer", Company: "Acme"}
	jobs := &stubJobRepo{active: []job.Job{j}}
	jobSkills := &stubJobSkillRepo{
		skillsByJob: map[uuid.UUID][]skill.Skill{
			j.ID: {{ID: uuid.New(), Name: "go"}, {ID: uuid.New(), Name: "postgresql"}},
		},
	}

	u := NewJobUsecase(jobs, &stubSkillRepo{}, jobSkills, nil, quietTestLogger())
	got, err := u.ListJobs(context.Background(), JobListParams{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].Skills) != 2 {
		t.Fatalf("skills not resolved: %+v", got)
	}
}

func TestListJobsUsesCache(t *testing.T) {
	j := job.Job{ID: uuid.New(), Title: "Backend Engineer", Company: "Acme"}
	jobs := &stubJobRepo{active: []job.Job{j}}
	cache := newFakeCache()

	u := NewJobUsecase(jobs, &stubSkillRepo{}, &stubJobSkillRepo{}, cache, quietTestLogger())

	if _, err := u.ListJobs(context.Background(), JobListParams{Title: "backend"}); err != nil {
		t.Fatal(err)
	}
	if cache.sets != 1 {
		t.Fatalf("first call should fill the cache, sets=%d", cache.sets)
	}

	// Second identical query must come from the cache even if the
	// repository starts failing.
	jobs.listErr = errors.New("db down")
	got, err := u.ListJobs(context.Background(), JobListParams{Title: "backend"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != j.ID {
		t.Fatalf("cached result mismatch: %+v", got)
	}
}

func TestCreateJobRejectsUnknownSkill(t *testing.T) {
	u := NewJobUsecase(&stubJobRepo{}, &stubSkillRepo{}, &stubJobSkillRepo{}, nil, quietTestLogger())

	_, err := u.CreateJob(context.Background(), CreateJobInput{
		Title:            "Backend Engineer",
		Company:          "Acme",
		RequiredSkillIDs: []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestCreateJobAttachesSkillsAndInvalidatesCache(t *testing.T) {
	skillID := uuid.New()
	skills := &stubSkillRepo{byID: map[uuid.UUID]skill.Skill{skillID: {ID: skillID, Name: "go"}}}
	jobSkills := &stubJobSkillRepo{}
	cache := newFakeCache()
	cache.data["jobs:list:stale"] = []byte("[]")

	u := NewJobUsecase(&stubJobRepo{}, skills, jobSkills, cache, quietTestLogger())
	created, err := u.CreateJob(context.Background(), CreateJobInput{
		Title:            "Backend Engineer",
		Company:          "Acme",
		RequiredSkillIDs: []uuid.UUID{skillID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Source != "manual" || !created.IsActive {
		t.Fatalf("manual posting fields wrong: %+v", created)
	}
	if len(jobSkills.attached[created.ID]) != 1 {
		t.Fatalf("skill not attached: %+v", jobSkills.attached)
	}
	if len(cache.data) != 0 {
		t.Fatalf("listing cache should be invalidated: %v", cache.data)
	}
}
