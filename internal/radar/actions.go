// Package radar wires the CLI surface to the scan and view pipeline.
package radar

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bitcoinsearch/bitdevs-radar/internal/logger"
	"github.com/bitcoinsearch/bitdevs-radar/models"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/fetcher"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/scanner"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/storage"
	"github.com/bitcoinsearch/bitdevs-radar/pkg/views"
)

// RunAction is the single CLI action: scan (or reload a detailed artifact)
// and render every view. An invalid --start-date logs an error and returns
// nil so the process exits 0 without output; any other failure propagates and
// exits 1.
func RunAction(c *cli.Context) error {
	level := logger.DefaultLevel
	if c.Bool("debug") {
		level = "debug"
	}
	log := logger.Must(logger.Config{Level: level})
	defer log.Sync()

	log.Info("starting BitDevs Resource Radar")

	var startDate *models.Date
	if raw := c.String("start-date"); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			log.Error("invalid start date format",
				logger.String("start_date", raw), logger.Error(err))
			return nil
		}
		startDate = &date
		log.Info("filtering resources", logger.String("from", date.String()))
	}

	store := &storage.Storage{}
	gen := views.New(store, log)

	var result models.ScanResult
	if input := c.String("detailed-input"); input != "" {
		if !store.HasFile(input) {
			err := fmt.Errorf("detailed input %s does not exist", input)
			log.Error("an error occurred during execution", logger.Error(err))
			return err
		}
		log.Info("loading pre-existing data", logger.String("path", input))
		loaded, err := gen.LoadDetailed(input)
		if err != nil {
			log.Error("an error occurred during execution", logger.Error(err))
			return err
		}
		result = loaded
	} else {
		scanned, err := scanRepositories(c.Context, c, startDate, log)
		if err != nil {
			log.Error("an error occurred during execution", logger.Error(err))
			return err
		}
		result = scanned
	}

	if err := generateViews(gen, result, c, log); err != nil {
		log.Error("an error occurred during execution", logger.Error(err))
		return err
	}
	return nil
}

func scanRepositories(ctx context.Context, c *cli.Context, startDate *models.Date, log logger.Logger) (models.ScanResult, error) {
	log.Debug("loading configuration",
		logger.String("config", c.String("config")),
		logger.String("exclude", c.String("exclude")))

	cfg, err := models.LoadRepoListConfig(c.String("config"))
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info("loaded configuration", logger.Int("repositories", len(cfg.Repositories)))

	excluded, err := models.LoadExcludedDomains(c.String("exclude"))
	if err != nil {
		// Missing or malformed exclusion lists are not fatal; the scan just
		// runs without exclusions.
		log.Warn("proceeding with empty exclusion list", logger.Error(err))
		excluded = nil
	} else {
		log.Info("loaded excluded domains", logger.Int("count", len(excluded)))
	}

	sc, err := scanner.New(cfg, excluded, startDate, fetcher.NewFetcher(), log)
	if err != nil {
		return models.ScanResult{}, err
	}
	defer func() {
		if err := sc.Close(); err != nil {
			log.Warn("failed to clean up run workspace", logger.Error(err))
		}
	}()

	return sc.Scan(ctx), nil
}

func generateViews(gen *views.Generator, result models.ScanResult, c *cli.Context, log logger.Logger) error {
	log.Info("generating views")

	if shouldWriteDetailed(c.String("detailed-input"), c.String("detailed-output")) {
		if err := gen.SaveDetailed(result, c.String("detailed-output")); err != nil {
			return err
		}
	}

	if err := gen.CategoryView(result, c.String("category-output")); err != nil {
		return err
	}
	if err := gen.DomainView(result, c.String("domain-output")); err != nil {
		return err
	}
	return gen.DateView(result, c.String("date-output"))
}

// shouldWriteDetailed decides whether the detailed artifact gets written:
// always after a fresh scan, and when regenerating from an input at a
// different path. When the input is being reused as the output, rewriting it
// over itself is skipped.
func shouldWriteDetailed(detailedInput, detailedOutput string) bool {
	return detailedInput == "" || detailedInput != detailedOutput
}
