package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careergps/internal/config"
	"careergps/internal/database/migration"
	"careergps/internal/delivery/http/handler"
	"careergps/internal/delivery/http/middleware"
	"careergps/internal/delivery/http/routes"
	v1 "careergps/internal/delivery/http/routes/v1"
	"careergps/internal/pkg/jwt"
	"careergps/internal/scheduler"
	"careergps/internal/usecase"
	"careergps/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Scheduler *scheduler.Scheduler
	Container *Container
}

// Bootstrap builds the whole server: database, cache, pipeline,
// scheduler, and the HTTP surface. The returned cleanup closes what
// Bootstrap opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Dir: "migrations"}).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	go c.Hub.Run()

	sched, err := scheduler.New(func(ctx context.Context) error {
		_, err := c.Pipeline.RunCycle(ctx)
		return err
	}, cfg.Sync.IntervalHours, c.Logger)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	app := &App{
		Fiber:     buildFiber(c),
		Scheduler: sched,
		Container: c,
	}

	cleanup := func() error {
		return c.Close()
	}
	return app, cleanup, nil
}

func buildFiber(c *Container) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.AccessSecret,
		c.Config.JWT.RefreshSecret,
		c.Config.JWT.AccessExpiresIn,
		c.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	authUC := usecase.NewAuthUsecase(c.Repos.Users, jwtSvc)
	userUC := usecase.NewUserUsecase(c.Repos.Users)
	userSkillUC := usecase.NewUserSkillUsecase(c.Repos.Skills, c.Repos.UserSkills)
	skillUC := usecase.NewSkillUsecase(c.Repos.Skills)
	jobUC := usecase.NewJobUsecase(c.Repos.Jobs, c.Repos.Skills, c.Repos.JobSkills, c.Cache, c.Logger)
	recommendUC := usecase.NewRecommendationUsecase(c.Repos.Jobs, c.Repos.JobSkills, c.Repos.UserSkills, c.Cache)
	applicationUC := usecase.NewApplicationUsecase(c.Repos.Applications, c.Repos.Jobs)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		ws.NewHandler(c.Hub, c.Logger),
		v1.Deps{
			Auth:               authMw.Middleware(),
			AuthHandler:        handler.NewAuthHandler(authUC),
			UserHandler:        handler.NewUserHandler(userUC),
			UserSkillHandler:   handler.NewUserSkillHandler(userSkillUC),
			SkillHandler:       handler.NewSkillHandler(skillUC),
			JobsHandler:        handler.NewJobsHandler(jobUC),
			RecommendHandler:   handler.NewJobRecommendationHandler(recommendUC),
			ApplicationHandler: handler.NewApplicationHandler(applicationUC),
		},
	)
	registry.Register(f)

	return f
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
