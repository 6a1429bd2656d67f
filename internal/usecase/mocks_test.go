package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"careergps/internal/domain/application"
	"careergps/internal/domain/job"
	"careergps/internal/domain/skill"
	"careergps/internal/domain/user"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

func quietTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubJobRepo struct {
	active    []job.Job
	byID      map[uuid.UUID]job.Job
	created   []job.Job
	listErr   error
	existsErr error
}

func (s *stubJobRepo) ListActive(_ context.Context, _ repository.JobFilter) ([]job.Job, error) {
	return s.active, s.listErr
}

func (s *stubJobRepo) ListActiveForMatching(_ context.Context) ([]job.Job, error) {
	return s.active, s.listErr
}

func (s *stubJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := s.byID[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (s *stubJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.byID[id]
	return ok, nil
}

func (s *stubJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	s.created = append(s.created, j)
	if s.byID == nil {
		s.byID = map[uuid.UUID]job.Job{}
	}
	s.byID[j.ID] = j
	return j, nil
}

func (s *stubJobRepo) FindByIdentity(_ context.Context, _, _, _ string) (job.Job, bool, error) {
	return job.Job{}, false, nil
}

func (s *stubJobRepo) UpdateFromPosting(_ context.Context, _ uuid.UUID, _ job.Job) error {
	return nil
}

func (s *stubJobRepo) DeactivateNotTouched(_ context.Context, _ []uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubJobRepo) DeleteInactiveBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type stubJobSkillRepo struct {
	idsByJob    map[uuid.UUID][]uuid.UUID
	skillsByJob map[uuid.UUID][]skill.Skill
	attached    map[uuid.UUID][]uuid.UUID
}

func (s *stubJobSkillRepo) Attach(_ context.Context, jobID, skillID uuid.UUID) error {
	if s.attached == nil {
		s.attached = map[uuid.UUID][]uuid.UUID{}
	}
	s.attached[jobID] = append(s.attached[jobID], skillID)
	return nil
}

func (s *stubJobSkillRepo) SkillIDsByJobIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return s.idsByJob, nil
}

func (s *stubJobSkillRepo) SkillsByJobIDs(_ context.Context, _ []uuid.UUID) (map[uuid.UUID][]skill.Skill, error) {
	return s.skillsByJob, nil
}

type stubUserSkillRepo struct {
	ids      []uuid.UUID
	skills   []skill.Skill
	attachE  error
	detachE  error
	idsError error
}

func (s *stubUserSkillRepo) ListByUserID(_ context.Context, _ uuid.UUID) ([]skill.Skill, error) {
	return s.skills, nil
}

func (s *stubUserSkillRepo) SkillIDsByUserID(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return s.ids, s.idsError
}

func (s *stubUserSkillRepo) Attach(_ context.Context, _, _ uuid.UUID) error {
	return s.attachE
}

func (s *stubUserSkillRepo) Detach(_ context.Context, _, _ uuid.UUID) error {
	return s.detachE
}

type stubSkillRepo struct {
	byID map[uuid.UUID]skill.Skill
}

func (s *stubSkillRepo) List(_ context.Context, _, _ int) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(s.byID))
	for _, sk := range s.byID {
		out = append(out, sk)
	}
	return out, nil
}

func (s *stubSkillRepo) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	sk, ok := s.byID[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return sk, nil
}

func (s *stubSkillRepo) CreateOrGet(_ context.Context, name, category string) (skill.Skill, error) {
	for _, sk := range s.byID {
		if sk.Name == name {
			return sk, nil
		}
	}
	sk := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	if s.byID == nil {
		s.byID = map[uuid.UUID]skill.Skill{}
	}
	s.byID[sk.ID] = sk
	return sk, nil
}

func (s *stubSkillRepo) EnsureByName(_ context.Context, name string) (uuid.UUID, error) {
	sk, err := s.CreateOrGet(context.Background(), name, "")
	return sk.ID, err
}

type stubApplicationRepo struct {
	byID      map[uuid.UUID]application.Application
	pairs     map[string]struct{}
	createErr error
}

func pairKey(userID, jobID uuid.UUID) string {
	return userID.String() + "/" + jobID.String()
}

func (s *stubApplicationRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	out := []application.Application{}
	for _, a := range s.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := s.byID[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (s *stubApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	if s.createErr != nil {
		return application.Application{}, s.createErr
	}
	if s.pairs == nil {
		s.pairs = map[string]struct{}{}
	}
	key := pairKey(a.UserID, a.JobID)
	if _, dup := s.pairs[key]; dup {
		return application.Application{}, repository.ErrDuplicateApplication
	}
	s.pairs[key] = struct{}{}

	a.ID = uuid.New()
	a.AppliedDate = time.Now().UTC()
	a.LastUpdated = a.AppliedDate
	if s.byID == nil {
		s.byID = map[uuid.UUID]application.Application{}
	}
	s.byID[a.ID] = a
	return a, nil
}

func (s *stubApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) error {
	a, ok := s.byID[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	a.LastUpdated = time.Now().UTC()
	s.byID[id] = a
	return nil
}

type stubUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
}

func (s *stubUserRepo) Create(_ context.Context, u user.User) error {
	if s.byID == nil {
		s.byID = map[uuid.UUID]user.User{}
	}
	if s.byEmail == nil {
		s.byEmail = map[string]user.User{}
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUserRepo) UpdateProfile(_ context.Context, u user.User) error {
	cur, ok := s.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	cur.FullName = u.FullName
	cur.ExperienceYears = u.ExperienceYears
	cur.Education = u.Education
	s.byID[u.ID] = cur
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}
