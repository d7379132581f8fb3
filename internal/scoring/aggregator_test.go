// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateflix/rateflix/internal/catalog"
	"github.com/rateflix/rateflix/internal/platform/apperr"
)

// # In-memory Fakes

// fakeContentStore is an in-memory catalog.ContentRepository for aggregator tests.
type fakeContentStore struct {
	contents map[int64]*catalog.Content
	seasons  map[int64][]*catalog.Season  // keyed by series ID
	episodes map[int64][]*catalog.Episode // keyed by season ID
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		contents: make(map[int64]*catalog.Content),
		seasons:  make(map[int64][]*catalog.Season),
		episodes: make(map[int64][]*catalog.Episode),
	}
}

func (s *fakeContentStore) List(_ context.Context, _ catalog.Filter, _, _ int) ([]*catalog.Content, int, error) {
	return nil, 0, nil
}

func (s *fakeContentStore) FindByID(_ context.Context, id int64) (*catalog.Content, error) {
	c, ok := s.contents[id]
	if !ok {
		return nil, apperr.NotFound("Content")
	}
	return c, nil
}

func (s *fakeContentStore) FindBySlug(_ context.Context, slug string) (*catalog.Content, error) {
	for _, c := range s.contents {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Content")
}

func (s *fakeContentStore) Create(_ context.Context, c *catalog.Content) error {
	s.contents[c.ID] = c
	return nil
}

func (s *fakeContentStore) ListSeasons(_ context.Context, seriesID int64) ([]*catalog.Season, error) {
	return s.seasons[seriesID], nil
}

func (s *fakeContentStore) ListEpisodes(_ context.Context, seasonID int64) ([]*catalog.Episode, error) {
	return s.episodes[seasonID], nil
}

func (s *fakeContentStore) CreateSeason(_ context.Context, season *catalog.Season) error {
	s.seasons[season.SeriesID] = append(s.seasons[season.SeriesID], season)
	return nil
}

func (s *fakeContentStore) CreateEpisode(_ context.Context, episode *catalog.Episode) error {
	s.episodes[episode.SeasonID] = append(s.episodes[episode.SeasonID], episode)
	return nil
}

func (s *fakeContentStore) SetPublicScore(_ context.Context, contentID int64, score float64) error {
	c, ok := s.contents[contentID]
	if !ok {
		return apperr.NotFound("Content")
	}
	c.PublicScore = score
	return nil
}

func (s *fakeContentStore) SetSeasonScores(_ context.Context, seasonID int64, imdb, meta float64) error {
	for _, seasons := range s.seasons {
		for _, season := range seasons {
			if season.ID == seasonID {
				season.IMDBScore = imdb
				season.MetaScore = meta
				return nil
			}
		}
	}
	return apperr.NotFound("Season")
}

func (s *fakeContentStore) SetSeriesScores(_ context.Context, seriesID int64, base, meta float64) error {
	c, ok := s.contents[seriesID]
	if !ok {
		return apperr.NotFound("Content")
	}
	c.BaseScore = base
	c.MetaScore = meta
	return nil
}

// fakeRatingSource serves canned ratings per content ID.
type fakeRatingSource struct {
	ratings map[int64][]int
}

func (s *fakeRatingSource) ListRatingsByContent(_ context.Context, contentID int64) ([]int, error) {
	return s.ratings[contentID], nil
}

// spyCache records writes and can be forced to fail.
type spyCache struct {
	stored map[int64]float64
	fail   bool
}

func newSpyCache() *spyCache {
	return &spyCache{stored: make(map[int64]float64)}
}

func (c *spyCache) GetPublicScore(_ context.Context, contentID int64) (float64, bool, error) {
	v, ok := c.stored[contentID]
	return v, ok, nil
}

func (c *spyCache) SetPublicScore(_ context.Context, contentID int64, score float64) error {
	if c.fail {
		return errors.New("redis down")
	}
	c.stored[contentID] = score
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Tests

/*
TestRecomputePublicScore_BlendsRatings verifies the full recompute path:
the blended score is persisted to the store and written through the cache.
*/
func TestRecomputePublicScore_BlendsRatings(t *testing.T) {
	store := newFakeContentStore()
	store.contents[1] = &catalog.Content{ID: 1, Type: catalog.ContentTypeMovie, BaseScore: 6.0, PublicScore: 6.0}

	ratings := &fakeRatingSource{ratings: map[int64][]int{1: {8, 10}}}
	cache := newSpyCache()

	agg := NewAggregator(store, ratings, cache, testLogger())

	score, err := agg.RecomputePublicScore(context.Background(), 1)
	require.NoError(t, err)

	assert.InDelta(t, 6.5, score, 1e-9)
	assert.InDelta(t, 6.5, store.contents[1].PublicScore, 1e-9)
	assert.InDelta(t, 6.5, cache.stored[1], 1e-9)
}

/*
TestRecomputePublicScore_ResetsWithoutVotes verifies that comment-only
reviews carry no voting weight: with no positive ratings left, the public
score returns to the editorial base score.
*/
func TestRecomputePublicScore_ResetsWithoutVotes(t *testing.T) {
	store := newFakeContentStore()
	store.contents[1] = &catalog.Content{ID: 1, Type: catalog.ContentTypeMovie, BaseScore: 6.0, PublicScore: 6.5}

	ratings := &fakeRatingSource{ratings: map[int64][]int{1: {0, 0}}}

	agg := NewAggregator(store, ratings, NoopScoreCache{}, testLogger())

	score, err := agg.RecomputePublicScore(context.Background(), 1)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, score, 1e-9)
	assert.InDelta(t, 6.0, store.contents[1].PublicScore, 1e-9)
}

/*
TestRecomputePublicScore_MissingContent verifies the NOT_FOUND propagation
for recomputes aimed at unknown content.
*/
func TestRecomputePublicScore_MissingContent(t *testing.T) {
	agg := NewAggregator(newFakeContentStore(), &fakeRatingSource{}, NoopScoreCache{}, testLogger())

	_, err := agg.RecomputePublicScore(context.Background(), 99)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestRecomputePublicScore_CacheFailureIsNonFatal verifies that a cache outage
does not fail the recompute — the database remains the source of truth.
*/
func TestRecomputePublicScore_CacheFailureIsNonFatal(t *testing.T) {
	store := newFakeContentStore()
	store.contents[1] = &catalog.Content{ID: 1, Type: catalog.ContentTypeMovie, BaseScore: 7.0}

	cache := newSpyCache()
	cache.fail = true

	agg := NewAggregator(store, &fakeRatingSource{ratings: map[int64][]int{1: {9}}}, cache, testLogger())

	score, err := agg.RecomputePublicScore(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 7.2, score, 1e-9)
	assert.InDelta(t, 7.2, store.contents[1].PublicScore, 1e-9)
}

/*
TestRecomputeSeriesScores_RollsUpHierarchy verifies the bottom-up editorial
rollup: episodes → seasons → series root, with one-decimal rounding at every
level, followed by a public score re-blend from the new base score.
*/
func TestRecomputeSeriesScores_RollsUpHierarchy(t *testing.T) {
	store := newFakeContentStore()
	store.contents[10] = &catalog.Content{ID: 10, Type: catalog.ContentTypeSeries}

	store.seasons[10] = []*catalog.Season{
		{ID: 100, SeriesID: 10, SeasonNumber: 1},
		{ID: 200, SeriesID: 10, SeasonNumber: 2},
	}
	store.episodes[100] = []*catalog.Episode{
		{ID: 1001, SeasonID: 100, EpisodeNumber: 1, IMDBScore: 8.5, MetaScore: 6.0},
		{ID: 1002, SeasonID: 100, EpisodeNumber: 2, IMDBScore: 8.0, MetaScore: 7.0},
	}
	store.episodes[200] = []*catalog.Episode{
		{ID: 2001, SeasonID: 200, EpisodeNumber: 1, IMDBScore: 6.6, MetaScore: 8.0},
	}

	ratings := &fakeRatingSource{ratings: map[int64][]int{10: {9}}}
	cache := newSpyCache()

	agg := NewAggregator(store, ratings, cache, testLogger())

	err := agg.RecomputeSeriesScores(context.Background(), 10)
	require.NoError(t, err)

	// Season 1: IMDb (8.5+8.0)/2 = 8.25 → 8.3, meta (6.0+7.0)/2 = 6.5.
	assert.InDelta(t, 8.3, store.seasons[10][0].IMDBScore, 1e-9)
	assert.InDelta(t, 6.5, store.seasons[10][0].MetaScore, 1e-9)

	// Season 2: single episode passes through.
	assert.InDelta(t, 6.6, store.seasons[10][1].IMDBScore, 1e-9)
	assert.InDelta(t, 8.0, store.seasons[10][1].MetaScore, 1e-9)

	// Series root: base (8.3+6.6)/2 = 7.45 → 7.5, meta (6.5+8.0)/2 = 7.25 → 7.3.
	assert.InDelta(t, 7.5, store.contents[10].BaseScore, 1e-9)
	assert.InDelta(t, 7.3, store.contents[10].MetaScore, 1e-9)

	// Public score re-blended from the fresh base: (7.5×10 + 9) / 11 = 7.6.
	assert.InDelta(t, 7.6, store.contents[10].PublicScore, 1e-9)
	assert.InDelta(t, 7.6, cache.stored[10], 1e-9)
}

/*
TestRecomputeSeriesScores_EmptySeries verifies that a series without seasons
rolls up to zero rather than erroring.
*/
func TestRecomputeSeriesScores_EmptySeries(t *testing.T) {
	store := newFakeContentStore()
	store.contents[10] = &catalog.Content{ID: 10, Type: catalog.ContentTypeSeries, BaseScore: 5.0}

	agg := NewAggregator(store, &fakeRatingSource{}, NoopScoreCache{}, testLogger())

	err := agg.RecomputeSeriesScores(context.Background(), 10)
	require.NoError(t, err)

	assert.Zero(t, store.contents[10].BaseScore)
	assert.Zero(t, store.contents[10].MetaScore)
	assert.Zero(t, store.contents[10].PublicScore)
}

/*
TestRecomputeSeriesScores_RejectsMovie verifies that the season rollup
refuses to run against a movie.
*/
func TestRecomputeSeriesScores_RejectsMovie(t *testing.T) {
	store := newFakeContentStore()
	store.contents[1] = &catalog.Content{ID: 1, Type: catalog.ContentTypeMovie, BaseScore: 7.0}

	agg := NewAggregator(store, &fakeRatingSource{}, NoopScoreCache{}, testLogger())

	err := agg.RecomputeSeriesScores(context.Background(), 1)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
}
