package repository

import (
	"context"
	"database/sql"
	"errors"

	"careergps/internal/database"
	"careergps/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
)

type ApplicationRepository interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	Create(ctx context.Context, a application.Application) (application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const selectApplication = `SELECT id, user_id, job_id, cover_letter, status, applied_date, last_updated FROM applications`

func (r *PostgresApplicationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, selectApplication+` WHERE user_id = $1 ORDER BY applied_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobID, &a.CoverLetter, &a.Status, &a.AppliedDate, &a.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, selectApplication+` WHERE id = $1`, id)
	var a application.Application
	if err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.CoverLetter, &a.Status, &a.AppliedDate, &a.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusApplied
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, job_id, cover_letter, status) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.UserID, a.JobID, a.CoverLetter, a.Status,
	)
	if err != nil {
		// The (user_id, job_id) unique constraint enforces one
		// application per user per job.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return application.Application{}, ErrDuplicateApplication
		}
		return application.Application{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, last_updated = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
