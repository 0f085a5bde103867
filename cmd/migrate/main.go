// Command migrate applies the SQL migrations for the postgres storage driver.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "path to the atlas binary")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg.DB, *dir, *bin, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db config.DBConfig, dir, bin string, logger *slog.Logger) error {
	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), bin)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: db.BuildDSN()})
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "count", len(res.Applied), "current", res.Current, "target", res.Target)
	return nil
}
