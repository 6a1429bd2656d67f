package seeder

import (
	"context"
	"strings"
	"time"

	"careergps/internal/database"

	"github.com/google/uuid"
)

// DemoJobsSeeder inserts a handful of postings so a fresh environment
// has something to list, match, and apply to before the first sync
// cycle runs. Idempotent via the seed URL.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

type demoJob struct {
	Title       string
	Company     string
	Location    string
	JobType     string
	Remote      bool
	Description string
	Skills      []string
}

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "title", "company", "location", "description",
		"job_type", "remote", "url", "source", "posted_date", "is_active",
	); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_skills", "job_id", "skill_id"); err != nil {
		return err
	}

	skillsByName, err := loadSkillsByName(ctx, db)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	items := []demoJob{
		{
			Title:       "Backend Engineer (Go)",
			Company:     "CareerGPS Labs",
			Location:    "Austin, TX",
			JobType:     "Full-time",
			Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			Skills:      []string{"go", "postgresql", "rest api", "docker"},
		},
		{
			Title:       "Full Stack Developer",
			Company:     "CareerGPS Labs",
			Location:    "Remote",
			JobType:     "Full-time",
			Remote:      true,
			Description: "Develop web apps with React and TypeScript backed by Node.js services.",
			Skills:      []string{"react", "typescript", "node.js", "css"},
		},
		{
			Title:       "DevOps Engineer",
			Company:     "Northwind Cloud",
			Location:    "Remote",
			JobType:     "Full-time",
			Remote:      true,
			Description: "Operate CI/CD, Docker, Kubernetes, and AWS infrastructure for production workloads.",
			Skills:      []string{"ci/cd", "docker", "kubernetes", "aws"},
		},
		{
			Title:       "Data Scientist",
			Company:     "InsightWorks",
			Location:    "New York, NY",
			JobType:     "Full-time",
			Description: "Build machine learning models in Python and ship analytics pipelines on SQL warehouses.",
			Skills:      []string{"python", "machine learning", "sql", "data science"},
		},
		{
			Title:       "Mobile Engineer (Contract)",
			Company:     "AppForge",
			Location:    "Denver, CO",
			JobType:     "Contract",
			Description: "Build cross-platform mobile apps, integrate REST APIs, and maintain release pipelines.",
			Skills:      []string{"javascript", "rest api", "git"},
		},
	}

	for _, it := range items {
		jobID, created, err := upsertDemoJob(ctx, db, it, now)
		if err != nil {
			return err
		}
		if !created {
			continue
		}

		for _, name := range it.Skills {
			skillID, ok := skillsByName[name]
			if !ok {
				continue
			}
			_, err := db.Exec(ctx,
				`INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				jobID, skillID,
			)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func upsertDemoJob(ctx context.Context, db database.DB, it demoJob, now time.Time) (uuid.UUID, bool, error) {
	url := demoJobURL(it.Title)

	row := db.QueryRow(ctx, `SELECT id FROM jobs WHERE url = $1 LIMIT 1`, url)
	var existing uuid.UUID
	if err := row.Scan(&existing); err == nil && existing != uuid.Nil {
		return existing, false, nil
	}

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO jobs (
			id, title, company, location, description, job_type, remote, url, source, posted_date, is_active
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,true)`,
		id, it.Title, it.Company, it.Location, it.Description, it.JobType, it.Remote, url, "seed", now,
	)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

func demoJobURL(title string) string {
	s := strings.ToLower(title)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, s)
	return "https://careergps.invalid/seed/" + s
}

func loadSkillsByName(ctx context.Context, db database.DB) (map[string]uuid.UUID, error) {
	rows, err := db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[strings.ToLower(strings.TrimSpace(name))] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
