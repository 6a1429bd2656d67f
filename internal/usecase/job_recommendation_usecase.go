package usecase

import (
	"context"
	"time"

	"careergps/internal/domain/matching"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

type Recommendation struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	SalaryMin  *float64  `json:"salary_min"`
	SalaryMax  *float64  `json:"salary_max"`
	JobType    string    `json:"job_type"`
	Remote     bool      `json:"remote"`
	URL        string    `json:"url"`
	PostedDate time.Time `json:"posted_date"`
	Skills     []string  `json:"skills"`
	MatchScore float64   `json:"match_score"`
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
}

type Recommender struct {
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	userSkills repository.UserSkillRepository
	cache      JobCache
}

func NewRecommendationUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, userSkills repository.UserSkillRepository, cache JobCache) *Recommender {
	return &Recommender{jobs: jobs, jobSkills: jobSkills, userSkills: userSkills, cache: cache}
}

// Recommend ranks active jobs by skill overlap with the user's profile.
// A user with no skills gets an empty list, not an error. Results are
// cached per user with a short TTL; sync cycles and new postings clear
// the jobs:recs:* space.
func (u *Recommender) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error) {
	if limit == 0 {
		limit = 10
	}
	if limit < 0 || limit > 50 {
		return nil, ErrInvalidInput
	}

	cacheKey := RecommendationCacheKey(userID, limit)
	if u.cache != nil {
		var cached []Recommendation
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := u.compute(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 5*time.Minute)
	}
	return out, nil
}

func (u *Recommender) compute(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error) {
	userSkillIDs, err := u.userSkills.SkillIDsByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(userSkillIDs) == 0 {
		return []Recommendation{}, nil
	}

	jobs, err := u.jobs.ListActiveForMatching(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if len(jobs) == 0 {
		return []Recommendation{}, nil
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	skillIDsByJob, err := u.jobSkills.SkillIDsByJobIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	candidates := make([]matching.JobSkills, 0, len(jobs))
	for _, j := range jobs {
		candidates = append(candidates, matching.JobSkills{
			JobID:    j.ID,
			SkillIDs: skillIDsByJob[j.ID],
		})
	}

	ranked := matching.Rank(userSkillIDs, candidates, limit)
	if len(ranked) == 0 {
		return []Recommendation{}, nil
	}

	rankedIDs := make([]uuid.UUID, 0, len(ranked))
	for _, m := range ranked {
		rankedIDs = append(rankedIDs, m.JobID)
	}
	skillsByJob, err := u.jobSkills.SkillsByJobIDs(ctx, rankedIDs)
	if err != nil {
		return nil, ErrInternal
	}

	jobByID := make(map[uuid.UUID]int, len(jobs))
	for i, j := range jobs {
		jobByID[j.ID] = i
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, m := range ranked {
		i, ok := jobByID[m.JobID]
		if !ok {
			continue
		}
		j := jobs[i]

		names := make([]string, 0, len(skillsByJob[j.ID]))
		for _, sk := range skillsByJob[j.ID] {
			names = append(names, sk.Name)
		}

		out = append(out, Recommendation{
			ID:         j.ID,
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			SalaryMin:  j.SalaryMin,
			SalaryMax:  j.SalaryMax,
			JobType:    j.JobType,
			Remote:     j.Remote,
			URL:        j.URL,
			PostedDate: j.PostedDate,
			Skills:     names,
			MatchScore: m.Score,
		})
	}
	return out, nil
}
