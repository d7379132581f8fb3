// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package scoring

import (
	"context"
	"log/slog"

	"github.com/rateflix/rateflix/internal/catalog"
	"github.com/rateflix/rateflix/internal/platform/apperr"
)

// errNotASeries rejects season rollups aimed at a movie.
func errNotASeries() error {
	return apperr.Unprocessable("Content is not a series")
}

// RatingSource supplies the community ratings feeding the public score blend.
//
// Implemented by the review repository. Only positive ratings count as votes,
// but the aggregator filters defensively either way.
type RatingSource interface {

	/*
		ListRatingsByContent returns every rating value submitted for a
		content item.

		Parameters:
		  - context: context.Context
		  - contentID: int64

		Returns:
		  - []int: Rating values (comment-only reviews report 0)
		  - error: Retrieval failures
	*/
	ListRatingsByContent(context context.Context, contentID int64) ([]int, error)
}

// Aggregator recomputes persisted scores after review mutations and
// catalogue hierarchy edits.
//
// # Concurrency
//
// Every recompute of a given content item runs under a per-item mutex. The
// read-compute-write cycle is therefore atomic per title: concurrent review
// submissions trigger recomputes that serialize, and whichever recompute
// runs last has read the final review state, so the last persisted score is
// correct regardless of interleaving.
type Aggregator struct {
	contents catalog.ContentRepository
	ratings  RatingSource
	cache    ScoreCache
	locks    *keyedMutex
	logger   *slog.Logger
}

// NewAggregator wires the score engine to its storage and cache backends.
func NewAggregator(contents catalog.ContentRepository, ratings RatingSource, cache ScoreCache, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		contents: contents,
		ratings:  ratings,
		cache:    cache,
		locks:    newKeyedMutex(),
		logger:   logger,
	}
}

/*
RecomputePublicScore re-derives and persists the blended public score of a
content item from its current base score and review set.

The new score is written to the catalogue store and through the cache. A
cache write failure is logged but does not fail the recompute — the database
holds the truth and the TTL bounds staleness.

Parameters:
  - context: context.Context
  - contentID: int64

Returns:
  - float64: The newly persisted public score
  - error: apperr.NotFound if the content is missing, storage failures otherwise
*/
func (a *Aggregator) RecomputePublicScore(ctx context.Context, contentID int64) (float64, error) {
	lock := a.locks.get(contentID)
	lock.Lock()
	defer lock.Unlock()

	return a.recomputePublicScoreLocked(ctx, contentID)
}

// recomputePublicScoreLocked is the lock-free core of RecomputePublicScore,
// shared with the series rollup which already holds the item's mutex.
func (a *Aggregator) recomputePublicScoreLocked(ctx context.Context, contentID int64) (float64, error) {
	content, err := a.contents.FindByID(ctx, contentID)
	if err != nil {
		return 0, err
	}

	ratings, err := a.ratings.ListRatingsByContent(ctx, contentID)
	if err != nil {
		return 0, err
	}

	score := WeightedPublicScore(content.BaseScore, ratings)

	if err := a.contents.SetPublicScore(ctx, contentID, score); err != nil {
		return 0, err
	}

	if err := a.cache.SetPublicScore(ctx, contentID, score); err != nil {
		a.logger.WarnContext(ctx, "score_cache_write_failed",
			slog.Int64("content_id", contentID),
			slog.String("error", err.Error()),
		)
	}

	a.logger.InfoContext(ctx, "public_score_recomputed",
		slog.Int64("content_id", contentID),
		slog.Float64("public_score", score),
	)

	return score, nil
}

/*
RecomputeSeriesScores rolls editorial scores up the series hierarchy.

Bottom-up pass:

 1. Each season's IMDb and meta scores become the one-decimal mean of its
    episodes' scores (0 for an episode-less season).
 2. The series base and meta scores become the one-decimal mean of the
    season rollups (0 for a season-less series).
 3. The public score is re-blended from the new base score, since the
    editorial anchor just moved.

Parameters:
  - context: context.Context
  - seriesID: int64

Returns:
  - error: apperr.NotFound if the series is missing, apperr.Unprocessable if
    the ID refers to a movie, storage failures otherwise
*/
func (a *Aggregator) RecomputeSeriesScores(ctx context.Context, seriesID int64) error {
	lock := a.locks.get(seriesID)
	lock.Lock()
	defer lock.Unlock()

	content, err := a.contents.FindByID(ctx, seriesID)
	if err != nil {
		return err
	}
	if content.Type != catalog.ContentTypeSeries {
		return errNotASeries()
	}

	seasons, err := a.contents.ListSeasons(ctx, seriesID)
	if err != nil {
		return err
	}

	seasonIMDB := make([]float64, 0, len(seasons))
	seasonMeta := make([]float64, 0, len(seasons))

	for _, season := range seasons {
		episodes, err := a.contents.ListEpisodes(ctx, season.ID)
		if err != nil {
			return err
		}

		episodeIMDB := make([]float64, 0, len(episodes))
		episodeMeta := make([]float64, 0, len(episodes))
		for _, episode := range episodes {
			episodeIMDB = append(episodeIMDB, episode.IMDBScore)
			episodeMeta = append(episodeMeta, episode.MetaScore)
		}

		imdb := MeanRounded(episodeIMDB)
		meta := MeanRounded(episodeMeta)

		if err := a.contents.SetSeasonScores(ctx, season.ID, imdb, meta); err != nil {
			return err
		}

		seasonIMDB = append(seasonIMDB, imdb)
		seasonMeta = append(seasonMeta, meta)
	}

	base := MeanRounded(seasonIMDB)
	meta := MeanRounded(seasonMeta)

	if err := a.contents.SetSeriesScores(ctx, seriesID, base, meta); err != nil {
		return err
	}

	// The base score moved, so the blended public score must follow.
	if _, err := a.recomputePublicScoreLocked(ctx, seriesID); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "series_scores_recomputed",
		slog.Int64("series_id", seriesID),
		slog.Int("seasons", len(seasons)),
		slog.Float64("base_score", base),
		slog.Float64("meta_score", meta),
	)

	return nil
}
