package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"careergps/internal/database"
	"careergps/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	List(ctx context.Context, limit, offset int) ([]skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	// CreateOrGet returns the existing skill when the name is already
	// taken; skill names are unique and case-preserving.
	CreateOrGet(ctx context.Context, name, category string) (skill.Skill, error)
	// EnsureByName is the ingestion path: create the skill lazily on
	// first encounter and return its id.
	EnsureByName(ctx context.Context, name string) (uuid.UUID, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context, limit, offset int) ([]skill.Skill, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, category, created_at FROM skills WHERE id = $1`, id)
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) CreateOrGet(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, errors.New("empty skill name")
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name, strings.TrimSpace(category),
	)
	if err != nil {
		return skill.Skill{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT id, name, category, created_at FROM skills WHERE name = $1`, name)
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) EnsureByName(ctx context.Context, name string) (uuid.UUID, error) {
	s, err := r.CreateOrGet(ctx, name, "")
	if err != nil {
		return uuid.Nil, err
	}
	return s.ID, nil
}
