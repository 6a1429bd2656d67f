package main

import (
	"context"
	"flag"
	"log"
	"time"

	"careergps/internal/app"
	"careergps/internal/config"
	"careergps/internal/database/migration"
	"careergps/internal/database/seeder"
)

// One-shot sync run. Useful from cron or for backfilling a fresh
// database without starting the HTTP server.
func main() {
	timeout := flag.Duration("timeout", 20*time.Minute, "overall run timeout")
	seed := flag.Bool("seed", false, "seed baseline skills and demo jobs before syncing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Dir: "migrations"}).Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *seed {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.DB); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}

	res, err := c.Pipeline.RunCycle(ctx)
	if err != nil {
		log.Fatalf("sync failed: %v", err)
	}

	log.Printf(
		"sync complete | fetched=%d created=%d updated=%d deactivated=%d deleted=%d sources_failed=%d",
		res.Fetched, res.Created, res.Updated, res.Deactivated, res.Deleted, len(res.SourceErrors),
	)
}
