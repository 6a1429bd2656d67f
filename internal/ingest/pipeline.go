// Package ingest pulls job postings from external sources, normalizes
// them into the local catalog, and retires postings the sources stop
// returning.
package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"careergps/internal/domain/job"

	"github.com/google/uuid"
)

// SearchTerm is one keywords/location pair a source is queried with.
type SearchTerm struct {
	Keywords string
	Location string
}

// Posting is a normalized job offer as reported by a source, before it
// is reconciled against the catalog.
type Posting struct {
	Title       string
	Company     string
	Location    string
	Description string
	SalaryMin   *float64
	SalaryMax   *float64
	JobType     string
	Remote      bool
	URL         string
	PostedDate  time.Time
	Skills      []string
}

// Source fetches postings for a single search term. Implementations
// report a stable name used for attribution and error logs.
type Source interface {
	Name() string
	Fetch(ctx context.Context, term SearchTerm) ([]Posting, error)
}

// Store is the persistence surface the pipeline writes through.
type Store interface {
	// FindByIdentity locates an existing job by URL, or failing that by
	// the (title, company) pair.
	FindByIdentity(ctx context.Context, url, title, company string) (job.Job, bool, error)
	CreateFromPosting(ctx context.Context, source string, p Posting) (job.Job, error)
	// UpdateFromPosting refreshes the mutable fields of an existing job
	// and re-activates it.
	UpdateFromPosting(ctx context.Context, id uuid.UUID, p Posting) error
	// AttachSkills unions the named skills onto the job, creating skill
	// rows as needed. Existing links are kept.
	AttachSkills(ctx context.Context, jobID uuid.UUID, names []string) error
	DeactivateNotTouched(ctx context.Context, touched []uuid.UUID) (int64, error)
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CycleResult summarizes one full ingestion pass.
type CycleResult struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	Fetched      int64
	Created      int64
	Updated      int64
	Deactivated  int64
	Deleted      int64
	SourceErrors map[string]string
}

/// Pipeline runs ingestion cycles. Cycles are serialized: a second
// RunCycle call blocks until the first finishes.
type Pipeline struct {
	mu sync.Mutex

	store     Store
	sources   []Source
	extractor SkillExtractor
	terms     []SearchTerm
	retention time.Duration
	workers   int
	logger    *log.Logger

	// OnCycleComplete, when set, is invoked after every successful
	// cycle with its result.
	OnCycleComplete func(CycleResult)
}

type PipelineOption func(*Pipeline)

func WithRetention(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d > 0 {
			p.retention = d
		}
	}
}

func WithLogger(l *log.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func NewPipeline(store Store, sources []Source, extractor SkillExtractor, terms []SearchTerm, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store:     store,
		sources:   sources,
		extractor: extractor,
		terms:     terms,
		retention: 30 * 24 * time.Hour,
		workers:   2,
		logger:    log.New(log.Writer(), "[ingest] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunCycle fetches every source for every search term, reconciles the
// postings against the catalog, and then applies lifecycle rules:
// active jobs no source returned this cycle are deactivated, and jobs
// inactive for longer than the retention window are deleted. A source
// failure skips that source but never aborts the cycle.
func (p *Pipeline) RunCycle(ctx context.Context) (CycleResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	res := CycleResult{
		StartedAt:    time.Now().UTC(),
		SourceErrors: map[string]string{},
	}

	if p.store == nil {
		return res, fmt.Errorf("ingest: nil store")
	}
	if len(p.sources) == 0 {
		return res, fmt.Errorf("ingest: no sources configured")
	}

	touched := make([]uuid.UUID, 0, 128)
	seen := map[uuid.UUID]struct{}{}

	// Sources fetch in parallel; reconciliation below stays on this
	// goroutine so catalog writes never race each other.
	batches := p.fetchAll(ctx)

	for _, batch := range batches {
		if batch.err != nil {
			res.SourceErrors[batch.name] = batch.err.Error()
			p.logger.Printf("source %s failed: %v", batch.name, batch.err)
			continue
		}
		res.Fetched += int64(len(batch.postings))

		for _, posting := range batch.postings {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			id, created, err := p.ingestOne(ctx, batch.name, posting)
			if err != nil {
				p.logger.Printf("source %s posting %q: %v", batch.name, posting.Title, err)
				continue
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				touched = append(touched, id)
			}
		}
	}

	// An empty touched set means every source came back empty or
	// failed. Deactivating the whole catalog on a transient outage
	// would be destructive, so lifecycle is skipped for this cycle.
	if len(touched) > 0 {
		deactivated, err := p.store.DeactivateNotTouched(ctx, touched)
		if err != nil {
			return res, fmt.Errorf("deactivate stale jobs: %w", err)
		}
		res.Deactivated = deactivated

		cutoff := time.Now().UTC().Add(-p.retention)
		deleted, err := p.store.DeleteInactiveBefore(ctx, cutoff)
		if err != nil {
			return res, fmt.Errorf("purge expired jobs: %w", err)
		}
		res.Deleted = deleted
	} else {
		p.logger.Printf("no postings ingested, skipping lifecycle pass")
	}

	res.FinishedAt = time.Now().UTC()
	p.logger.Printf("cycle done: fetched=%d created=%d updated=%d deactivated=%d deleted=%d sourceErrors=%d",
		res.Fetched, res.Created, res.Updated, res.Deactivated, res.Deleted, len(res.SourceErrors))

	if p.OnCycleComplete != nil {
		p.OnCycleComplete(res)
	}
	return res, nil
}

type sourceBatch struct {
	name     string
	postings []Posting
	err      error
}

// fetchAll queries every source over the worker pool and returns one
// batch per source, in source order. Each batch slot is written by
// exactly one worker.
func (p *Pipeline) fetchAll(ctx context.Context) []sourceBatch {
	batches := make([]sourceBatch, len(p.sources))

	pool := newWorkerPool(p.workers, len(p.sources))
	results := pool.run(ctx)

	for i, src := range p.sources {
		i, src := i, src
		pool.submit(func(ctx context.Context) error {
			postings, err := p.fetchSource(ctx, src)
			batches[i] = sourceBatch{name: src.Name(), postings: postings, err: err}
			return err
		})
	}
	pool.close()

	for range results {
	}
	return batches
}

func (p *Pipeline) fetchSource(ctx context.Context, src Source) ([]Posting, error) {
	out := make([]Posting, 0, 64)
	for _, term := range p.terms {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		postings, err := src.Fetch(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("fetch %q: %w", term.Keywords, err)
		}
		out = append(out, postings...)
	}
	return out, nil
}

// ingestOne reconciles a single posting. Identity is the posting URL,
// falling back to (title, company). A known job gets its mutable fields
// refreshed; an unknown one is created. Either way skills extracted
// from the text are unioned onto the job.
func (p *Pipeline) ingestOne(ctx context.Context, source string, posting Posting) (uuid.UUID, bool, error) {
	if strings.TrimSpace(posting.Title) == "" || strings.TrimSpace(posting.Company) == "" {
		return uuid.Nil, false, fmt.Errorf("posting missing title or company")
	}

	skills := posting.Skills
	if p.extractor != nil {
		skills = unionSkills(skills, p.extractor.Extract(posting.Title+" "+posting.Description))
	}

	existing, found, err := p.store.FindByIdentity(ctx, posting.URL, posting.Title, posting.Company)
	if err != nil {
		return uuid.Nil, false, err
	}

	var id uuid.UUID
	created := false
	if found {
		id = existing.ID
		if err := p.store.UpdateFromPosting(ctx, id, posting); err != nil {
			return uuid.Nil, false, err
		}
	} else {
		j, err := p.store.CreateFromPosting(ctx, source, posting)
		if err != nil {
			return uuid.Nil, false, err
		}
		id = j.ID
		created = true
	}

	if len(skills) > 0 {
		if err := p.store.AttachSkills(ctx, id, skills); err != nil {
			return uuid.Nil, false, err
		}
	}
	return id, created, nil
}

func unionSkills(a, b []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(a, b...) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
