package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"careergps/internal/database"
	"careergps/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter narrows the active-job listing. Text filters are
// case-insensitive substring matches.
type JobFilter struct {
	Title    string
	Company  string
	Location string
	Remote   *bool
	Limit    int
	Offset   int
}

type JobRepository interface {
	ListActive(ctx context.Context, f JobFilter) ([]job.Job, error)
	ListActiveForMatching(ctx context.Context) ([]job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, j job.Job) (job.Job, error)

	// Ingestion support.
	FindByIdentity(ctx context.Context, url, title, company string) (job.Job, bool, error)
	UpdateFromPosting(ctx context.Context, id uuid.UUID, j job.Job) error
	DeactivateNotTouched(ctx context.Context, touched []uuid.UUID) (int64, error)
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const selectJob = `SELECT id, title, company, location, description, salary_min, salary_max,
	job_type, remote, url, source, posted_date, is_active, created_at, updated_at FROM jobs`

func (r *PostgresJobRepository) ListActive(ctx context.Context, f JobFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := selectJob + ` WHERE is_active = true`
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if s := strings.TrimSpace(f.Title); s != "" {
		query += ` AND title ILIKE ` + arg("%"+s+"%")
	}
	if s := strings.TrimSpace(f.Company); s != "" {
		query += ` AND company ILIKE ` + arg("%"+s+"%")
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		query += ` AND location ILIKE ` + arg("%"+s+"%")
	}
	if f.Remote != nil {
		query += ` AND remote = ` + arg(*f.Remote)
	}

	query += ` ORDER BY posted_date DESC, id ASC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *PostgresJobRepository) ListActiveForMatching(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, selectJob+` WHERE is_active = true ORDER BY posted_date DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, selectJob+` WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now().UTC()
	}
	j.IsActive = true

	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, company, location, description, salary_min, salary_max,
			job_type, remote, url, source, posted_date, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		j.ID, j.Title, j.Company, j.Location, j.Description, j.SalaryMin, j.SalaryMax,
		j.JobType, j.Remote, j.URL, j.Source, j.PostedDate, j.IsActive,
	)
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, j.ID)
}

// FindByIdentity resolves the dedup identity key: a job matches when its
// url equals the fetched url, or its (title, company) pair matches.
func (r *PostgresJobRepository) FindByIdentity(ctx context.Context, url, title, company string) (job.Job, bool, error) {
	row := r.db.QueryRow(ctx,
		selectJob+` WHERE (url <> '' AND url = $1) OR (title = $2 AND company = $3) LIMIT 1`,
		strings.TrimSpace(url), strings.TrimSpace(title), strings.TrimSpace(company),
	)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return job.Job{}, false, nil
		}
		return job.Job{}, false, err
	}
	return j, true, nil
}

// UpdateFromPosting refreshes mutable fields from a re-observed posting
// and reactivates the job. Title/company/url keep their stored values so
// the identity key stays stable.
func (r *PostgresJobRepository) UpdateFromPosting(ctx context.Context, id uuid.UUID, j job.Job) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET description = $2, location = $3, salary_min = $4, salary_max = $5,
			job_type = $6, remote = $7, is_active = true, updated_at = now()
		 WHERE id = $1`,
		id, j.Description, j.Location, j.SalaryMin, j.SalaryMax, j.JobType, j.Remote,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeactivateNotTouched(ctx context.Context, touched []uuid.UUID) (int64, error) {
	if len(touched) == 0 {
		// Nothing was observed this cycle; treat as a failed pass rather
		// than deactivating the whole board.
		return 0, nil
	}
	return r.db.Exec(ctx,
		`UPDATE jobs SET is_active = false, updated_at = now()
		 WHERE is_active = true AND NOT (id = ANY($1))`,
		touched,
	)
}

func (r *PostgresJobRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM jobs WHERE is_active = false AND updated_at < $1`,
		cutoff,
	)
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
		&j.SalaryMin, &j.SalaryMax, &j.JobType, &j.Remote, &j.URL, &j.Source,
		&j.PostedDate, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func scanJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
			&j.SalaryMin, &j.SalaryMax, &j.JobType, &j.Remote, &j.URL, &j.Source,
			&j.PostedDate, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
