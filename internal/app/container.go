package app

import (
	"context"
	"log"
	"os"
	"time"

	"careergps/internal/config"
	"careergps/internal/database"
	dbpostgres "careergps/internal/database/postgres"
	"careergps/internal/infrastructure/cache"
	"careergps/internal/ingest"
	"careergps/internal/repository"
	"careergps/internal/ws"
)

// Container holds the process-wide dependencies shared by the HTTP
// server and the sync command.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Repos    Repositories
	Pipeline *ingest.Pipeline

	Logger *log.Logger
}

type Repositories struct {
	Users        repository.UserRepository
	Skills       repository.SkillRepository
	UserSkills   repository.UserSkillRepository
	Jobs         repository.JobRepository
	JobSkills    repository.JobSkillRepository
	Applications repository.ApplicationRepository
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "["+cfg.App.AppName+"] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(logger)
	hub := ws.NewHub(logger)

	repos := Repositories{
		Users:        repository.NewPostgresUserRepository(db),
		Skills:       repository.NewPostgresSkillRepository(db),
		UserSkills:   repository.NewPostgresUserSkillRepository(db),
		Jobs:         repository.NewPostgresJobRepository(db),
		JobSkills:    repository.NewPostgresJobSkillRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Repos:  repos,
		Logger: logger,
	}
	c.Pipeline = buildPipeline(c)

	return c, nil
}

func buildPipeline(c *Container) *ingest.Pipeline {
	sync := c.Config.Sync

	var sources []ingest.Source
	if sync.AdzunaAppID != "" && sync.AdzunaAPIKey != "" {
		sources = append(sources, ingest.NewAdzunaSource(sync.AdzunaAppID, sync.AdzunaAPIKey, sync.AdzunaCountry))
	} else {
		c.Logger.Printf("[Sync] Adzuna credentials missing, source disabled")
	}
	sources = append(sources, ingest.NewIndeedSource(sync.IndeedBaseURL))

	terms := make([]ingest.SearchTerm, 0, len(sync.SearchTerms))
	for _, t := range sync.SearchTerms {
		terms = append(terms, ingest.SearchTerm{Keywords: t.Keywords, Location: t.Location})
	}

	store := repository.NewIngestStore(c.Repos.Jobs, c.Repos.Skills, c.Repos.JobSkills)

	retention := time.Duration(sync.RetentionDays) * 24 * time.Hour
	p := ingest.NewPipeline(store, sources, ingest.NewKeywordExtractor(), terms,
		ingest.WithRetention(retention),
		ingest.WithLogger(c.Logger),
	)

	p.OnCycleComplete = func(res ingest.CycleResult) {
		ws.NotifySyncCompleted(c.Hub, res.Created, res.Updated, res.Deactivated)

		if res.Created > 0 || res.Updated > 0 || res.Deactivated > 0 || res.Deleted > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := c.Cache.InvalidateJobLists(ctx); err != nil {
				c.Logger.Printf("[Sync] cache invalidation failed: %v", err)
			}
		}
	}

	return p
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
