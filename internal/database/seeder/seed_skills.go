package seeder

import (
	"context"
	"fmt"

	"careergps/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

// Run loads the baseline skill taxonomy. Names are lowercase so they
// line up with what the description extractor produces.
func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "python", Category: "Programming Language"},
		{Name: "javascript", Category: "Programming Language"},
		{Name: "typescript", Category: "Programming Language"},
		{Name: "go", Category: "Programming Language"},
		{Name: "java", Category: "Programming Language"},
		{Name: "ruby", Category: "Programming Language"},
		{Name: "rust", Category: "Programming Language"},
		{Name: "react", Category: "Frontend"},
		{Name: "angular", Category: "Frontend"},
		{Name: "vue.js", Category: "Frontend"},
		{Name: "html", Category: "Frontend"},
		{Name: "css", Category: "Frontend"},
		{Name: "node.js", Category: "Backend"},
		{Name: "django", Category: "Backend"},
		{Name: "flask", Category: "Backend"},
		{Name: "express", Category: "Backend"},
		{Name: "spring", Category: "Backend"},
		{Name: "rails", Category: "Backend"},
		{Name: "graphql", Category: "Backend"},
		{Name: "rest api", Category: "Backend"},
		{Name: "sql", Category: "Database"},
		{Name: "postgresql", Category: "Database"},
		{Name: "mongodb", Category: "Database"},
		{Name: "aws", Category: "Cloud"},
		{Name: "docker", Category: "DevOps"},
		{Name: "kubernetes", Category: "DevOps"},
		{Name: "ci/cd", Category: "DevOps"},
		{Name: "devops", Category: "DevOps"},
		{Name: "git", Category: "Tooling"},
		{Name: "machine learning", Category: "Data"},
		{Name: "data science", Category: "Data"},
		{Name: "deep learning", Category: "Data"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
