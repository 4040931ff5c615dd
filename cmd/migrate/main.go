package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rental-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	schema := flag.String("schema", "file://migrations/schema.sql", "desired schema state")
	devURL := flag.String("dev-url", "docker://postgres/17/dev?search_path=public", "dev database used by atlas to normalize the schema")
	dryRun := flag.Bool("dry-run", false, "print the planned changes without applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg.DB, *schema, *devURL, *dryRun); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.DBConfig, schema, devURL string, dryRun bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         cfg.BuildDSN(),
		To:          schema,
		DevURL:      devURL,
		DryRun:      dryRun,
		AutoApprove: true,
	})
	if err != nil {
		return err
	}

	for _, stmt := range res.Changes.Pending {
		slog.Info("planned", "statement", stmt)
	}
	slog.Info("schema applied", "applied", len(res.Changes.Applied), "dry_run", dryRun)
	return nil
}
