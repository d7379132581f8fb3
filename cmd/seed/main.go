// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

// Command seed loads a small sample catalogue into the database for local
// development: a few movies plus a series with a full season/episode
// hierarchy, followed by a score rollup so the stored scores are consistent.
//
// Seeding is idempotent: entries whose slug already exists are skipped.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/rateflix/rateflix/internal/catalog"
	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/config"
	"github.com/rateflix/rateflix/internal/platform/migration"
	pgstore "github.com/rateflix/rateflix/internal/platform/postgres"
	"github.com/rateflix/rateflix/internal/review"
	"github.com/rateflix/rateflix/internal/scoring"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "rateflix-seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// Seeding runs without Redis: scores land in the database only.
	contentRepository := catalog.NewContentRepository(pool)
	reviewRepository := review.NewRepository(pool)
	aggregator := scoring.NewAggregator(contentRepository, reviewRepository, scoring.NoopScoreCache{}, log)
	service := catalog.NewService(contentRepository, scoring.NoopScoreCache{}, aggregator, log)

	seedMovies(ctx, log, service)
	seedSeries(ctx, log, service)

	log.Info("seed_complete")
}

func seedMovies(ctx context.Context, log *slog.Logger, service *catalog.Service) {
	movies := []catalog.CreateContentInput{
		{
			Type:        "movie",
			Title:       "Heat",
			Description: "A meticulous thief and a dogged detective circle each other across Los Angeles.",
			ReleaseYear: 1995,
			BaseScore:   8.3,
			MetaScore:   7.6,
			Duration:    intPtr(170),
		},
		{
			Type:        "movie",
			Title:       "Blade Runner 2049",
			Description: "A young blade runner unearths a secret that could plunge society into chaos.",
			ReleaseYear: 2017,
			BaseScore:   8.0,
			MetaScore:   8.1,
			Duration:    intPtr(164),
		},
		{
			Type:        "movie",
			Title:       "1917",
			Description: "Two soldiers race across enemy territory to deliver a message that could save hundreds.",
			ReleaseYear: 2019,
			BaseScore:   8.2,
			MetaScore:   7.8,
			Duration:    intPtr(119),
		},
	}

	for _, input := range movies {
		content, err := service.CreateContent(ctx, input)
		if skipConflict(log, err, input.Title) {
			continue
		}
		must(log, err, "seed movie")
		log.Info("seeded_movie", slog.Int64("id", content.ID), slog.String("slug", content.Slug))
	}
}

func seedSeries(ctx context.Context, log *slog.Logger, service *catalog.Service) {
	input := catalog.CreateContentInput{
		Type:         "series",
		Title:        "The Wire",
		Description:  "Baltimore through the eyes of its police, dealers, docks, schools, and press.",
		ReleaseYear:  2002,
		MetaScore:    9.0,
		TotalSeasons: intPtr(2),
	}

	series, err := service.CreateContent(ctx, input)
	if skipConflict(log, err, input.Title) {
		return
	}
	must(log, err, "seed series")

	seasons := []struct {
		season   catalog.CreateSeasonInput
		episodes []catalog.CreateEpisodeInput
	}{
		{
			season: catalog.CreateSeasonInput{SeasonNumber: 1, ReleaseYear: 2002, Description: "The Barksdale investigation."},
			episodes: []catalog.CreateEpisodeInput{
				{EpisodeNumber: 1, Title: "The Target", Duration: 62, IMDBScore: 8.3, MetaScore: 8.0},
				{EpisodeNumber: 2, Title: "The Detail", Duration: 57, IMDBScore: 8.1, MetaScore: 7.9},
				{EpisodeNumber: 3, Title: "The Buys", Duration: 57, IMDBScore: 8.4, MetaScore: 8.2},
			},
		},
		{
			season: catalog.CreateSeasonInput{SeasonNumber: 2, ReleaseYear: 2003, Description: "The docks."},
			episodes: []catalog.CreateEpisodeInput{
				{EpisodeNumber: 1, Title: "Ebb Tide", Duration: 58, IMDBScore: 8.0, MetaScore: 7.7},
				{EpisodeNumber: 2, Title: "Collateral Damage", Duration: 58, IMDBScore: 8.2, MetaScore: 7.9},
			},
		},
	}

	for _, entry := range seasons {
		season, err := service.AddSeason(ctx, series.ID, entry.season)
		must(log, err, "seed season")

		for _, episodeInput := range entry.episodes {
			_, err := service.AddEpisode(ctx, series.ID, season.ID, episodeInput)
			must(log, err, "seed episode")
		}
	}

	// AddSeason/AddEpisode already roll scores up incrementally; one final
	// pass leaves the hierarchy in its settled state.
	must(log, service.RecomputeSeries(ctx, series.ID), "recompute series scores")
	log.Info("seeded_series", slog.Int64("id", series.ID), slog.String("slug", series.Slug))
}

// skipConflict reports whether err is a duplicate-slug conflict, logging the
// skip. Any other error is left for must to handle.
func skipConflict(log *slog.Logger, err error, title string) bool {
	if appError := apperr.As(err); appError != nil && appError.Code == "CONFLICT" {
		log.Info("seed_skipped_existing", slog.String("title", title))
		return true
	}
	return false
}

func intPtr(v int) *int { return &v }

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
