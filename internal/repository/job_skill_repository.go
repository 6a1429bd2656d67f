package repository

import (
	"context"

	"careergps/internal/database"
	"careergps/internal/domain/skill"

	"github.com/google/uuid"
)

type JobSkillRepository interface {
	// Attach is idempotent: attaching an already-attached skill is a
	// no-op, preserving set semantics on the association.
	Attach(ctx context.Context, jobID, skillID uuid.UUID) error
	SkillIDsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	SkillsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]skill.Skill, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) Attach(ctx context.Context, jobID, skillID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jobID, skillID,
	)
	return err
}

func (r *PostgresJobSkillRepository) SkillIDsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, skill_id FROM job_skills WHERE job_id = ANY($1)`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID, skillID uuid.UUID
		if err := rows.Scan(&jobID, &skillID); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], skillID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) SkillsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]skill.Skill, error) {
	out := make(map[uuid.UUID][]skill.Skill, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, s.id, s.name, s.category, s.created_at
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY s.name ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var s skill.Skill
		if err := rows.Scan(&jobID, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
