package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"careergps/internal/config"
	"careergps/internal/database"
	"careergps/internal/database/migration"
	dbpostgres "careergps/internal/database/postgres"
	"careergps/internal/delivery/http/handler"
	"careergps/internal/delivery/http/middleware"
	"careergps/internal/delivery/http/routes"
	v1 "careergps/internal/delivery/http/routes/v1"
	"careergps/internal/pkg/jwt"
	"careergps/internal/repository"
	"careergps/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type skillData struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type jobData struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type recommendationData struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	MatchScore float64   `json:"match_score"`
	Skills     []string  `json:"skills"`
}

type applicationData struct {
	ID     uuid.UUID `json:"id"`
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// Exercises the whole loop against a real database: register, build a
// skill profile, post jobs, get ranked recommendations, then apply and
// track the application.
func TestIntegration_ProfileToRecommendationToApplication(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	app := newTestFiberApp(db)

	suffix := uuid.New().String()[:8]
	email := "it-" + suffix + "@example.com"

	var created struct {
		userID   uuid.UUID
		skillIDs []uuid.UUID
		jobIDs   []uuid.UUID
	}
	defer func() {
		cleanCtx, cleanCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanCancel()
		for _, id := range created.jobIDs {
			_, _ = db.Exec(cleanCtx, `DELETE FROM jobs WHERE id = $1`, id)
		}
		_, _ = db.Exec(cleanCtx, `DELETE FROM users WHERE email = $1`, email)
		for _, id := range created.skillIDs {
			_, _ = db.Exec(cleanCtx, `DELETE FROM skills WHERE id = $1`, id)
		}
	}()

	token := registerAndLogin(t, app, email)

	goID := createSkill(t, app, "it-go-"+suffix)
	pgID := createSkill(t, app, "it-postgresql-"+suffix)
	dockerID := createSkill(t, app, "it-docker-"+suffix)
	awsID := createSkill(t, app, "it-aws-"+suffix)
	created.skillIDs = []uuid.UUID{goID, pgID, dockerID, awsID}

	addUserSkill(t, app, token, goID)
	addUserSkill(t, app, token, pgID)

	fullMatchID := createJob(t, app, token, "Backend Engineer "+suffix, []uuid.UUID{goID, pgID})
	halfMatchID := createJob(t, app, token, "Platform Engineer "+suffix, []uuid.UUID{goID, pgID, dockerID, awsID})
	created.jobIDs = []uuid.UUID{fullMatchID, halfMatchID}

	recs := getRecommendations(t, app, token)
	if len(recs) < 2 {
		t.Fatalf("recommendations: expected at least 2 items, got %d", len(recs))
	}

	for i := 1; i < len(recs); i++ {
		if recs[i].MatchScore > recs[i-1].MatchScore {
			t.Fatalf("recommendations not sorted: idx=%d prev=%.1f cur=%.1f", i, recs[i-1].MatchScore, recs[i].MatchScore)
		}
	}

	seen := map[uuid.UUID]struct{}{}
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			t.Fatalf("recommendations: duplicate job %s", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	byID := map[uuid.UUID]recommendationData{}
	for _, r := range recs {
		byID[r.ID] = r
	}
	full, ok := byID[fullMatchID]
	if !ok {
		t.Fatalf("recommendations: full-match job missing")
	}
	if full.MatchScore != 100.0 {
		t.Fatalf("full-match score: want 100, got %.1f", full.MatchScore)
	}
	half, ok := byID[halfMatchID]
	if !ok {
		t.Fatalf("recommendations: half-match job missing")
	}
	if half.MatchScore != 50.0 {
		t.Fatalf("half-match score: want 50, got %.1f", half.MatchScore)
	}

	appID := applyToJob(t, app, token, fullMatchID)
	updateApplicationStatus(t, app, token, appID, "interview")

	// A second apply to the same job must conflict.
	status, _ := doJSON(t, app, "POST", "/api/v1/applications", token, map[string]any{
		"job_id": fullMatchID,
	})
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate apply: want 409, got %d", status)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := envOrDefault("CAREERGPS_TEST_DB_HOST", os.Getenv("DB_HOST"))
	port := envOrDefault("CAREERGPS_TEST_DB_PORT", os.Getenv("DB_PORT"))
	name := envOrDefault("CAREERGPS_TEST_DB_NAME", os.Getenv("DB_NAME"))
	user := envOrDefault("CAREERGPS_TEST_DB_USER", os.Getenv("DB_USER"))
	pass := envOrDefault("CAREERGPS_TEST_DB_PASSWORD", os.Getenv("DB_PASSWORD"))
	ssl := envOrDefault("CAREERGPS_TEST_DB_SSL_MODE", os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CAREERGPS_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_*)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}
	migDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "migrations"))
	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found: %s", migDir)
	}

	if err := (migration.Runner{Dir: migDir}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func newTestFiberApp(db database.DB) *fiber.App {
	logger := log.New(io.Discard, "", 0)

	jwtSvc := jwt.NewHMACService("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	users := repository.NewPostgresUserRepository(db)
	skills := repository.NewPostgresSkillRepository(db)
	userSkills := repository.NewPostgresUserSkillRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	jobSkills := repository.NewPostgresJobSkillRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db),
		nil,
		v1.Deps{
			Auth:               authMw.Middleware(),
			AuthHandler:        handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc)),
			UserHandler:        handler.NewUserHandler(usecase.NewUserUsecase(users)),
			UserSkillHandler:   handler.NewUserSkillHandler(usecase.NewUserSkillUsecase(skills, userSkills)),
			SkillHandler:       handler.NewSkillHandler(usecase.NewSkillUsecase(skills)),
			JobsHandler:        handler.NewJobsHandler(usecase.NewJobUsecase(jobs, skills, jobSkills, nil, logger)),
			RecommendHandler:   handler.NewJobRecommendationHandler(usecase.NewRecommendationUsecase(jobs, jobSkills, userSkills, nil)),
			ApplicationHandler: handler.NewApplicationHandler(usecase.NewApplicationUsecase(applications, jobs)),
		},
	)
	registry.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, sr.Data
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"email":     email,
		"password":  "integration-pass",
		"full_name": "Integration Tester",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register: want 201, got %d", status)
	}

	status, data := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "integration-pass",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login: want 200, got %d", status)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("login data: %v", err)
	}
	var token string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		t.Fatalf("login: missing access_token")
	}
	return token
}

func createSkill(t *testing.T, app *fiber.App, name string) uuid.UUID {
	t.Helper()

	status, data := doJSON(t, app, "POST", "/api/v1/skills", "", map[string]any{
		"name":     name,
		"category": "Integration",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create skill %s: want 201, got %d", name, status)
	}
	var s skillData
	if err := json.Unmarshal(data, &s); err != nil || s.ID == uuid.Nil {
		t.Fatalf("create skill %s: bad response: %v", name, err)
	}
	return s.ID
}

func addUserSkill(t *testing.T, app *fiber.App, token string, skillID uuid.UUID) {
	t.Helper()

	status, _ := doJSON(t, app, "POST", "/api/v1/users/me/skills", token, map[string]any{
		"skill_id": skillID,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("add user skill: want 201, got %d", status)
	}
}

func createJob(t *testing.T, app *fiber.App, token, title string, skillIDs []uuid.UUID) uuid.UUID {
	t.Helper()

	status, data := doJSON(t, app, "POST", "/api/v1/jobs", token, map[string]any{
		"title":              title,
		"company":            "Integration Co",
		"location":           "Remote",
		"remote":             true,
		"job_type":           "Full-time",
		"required_skill_ids": skillIDs,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create job %s: want 201, got %d", title, status)
	}
	var j jobData
	if err := json.Unmarshal(data, &j); err != nil || j.ID == uuid.Nil {
		t.Fatalf("create job %s: bad response: %v", title, err)
	}
	return j.ID
}

func getRecommendations(t *testing.T, app *fiber.App, token string) []recommendationData {
	t.Helper()

	status, data := doJSON(t, app, "GET", "/api/v1/jobs/recommended?limit=20", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("recommendations: want 200, got %d", status)
	}
	var items []recommendationData
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	return items
}

func applyToJob(t *testing.T, app *fiber.App, token string, jobID uuid.UUID) uuid.UUID {
	t.Helper()

	status, data := doJSON(t, app, "POST", "/api/v1/applications", token, map[string]any{
		"job_id":       jobID,
		"cover_letter": "Please consider my application.",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("apply: want 201, got %d", status)
	}
	var a applicationData
	if err := json.Unmarshal(data, &a); err != nil || a.ID == uuid.Nil {
		t.Fatalf("apply: bad response: %v", err)
	}
	if a.Status != "applied" {
		t.Fatalf("apply: want status applied, got %s", a.Status)
	}
	return a.ID
}

func updateApplicationStatus(t *testing.T, app *fiber.App, token string, appID uuid.UUID, status string) {
	t.Helper()

	code, data := doJSON(t, app, "PUT", "/api/v1/applications/"+appID.String(), token, map[string]any{
		"status": status,
	})
	if code != fiber.StatusOK {
		t.Fatalf("update application: want 200, got %d", code)
	}
	var a applicationData
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("update application: %v", err)
	}
	if a.Status != status {
		t.Fatalf("update application: want %s, got %s", status, a.Status)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
