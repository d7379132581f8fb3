// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateflix/rateflix/internal/platform/apperr"
)

// # In-memory Fakes

type fakeRepository struct {
	contents map[int64]*Content
	seasons  map[int64][]*Season
	episodes map[int64][]*Episode
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		contents: make(map[int64]*Content),
		seasons:  make(map[int64][]*Season),
		episodes: make(map[int64][]*Episode),
		nextID:   1,
	}
}

func (r *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Content, int, error) {
	var all []*Content
	for _, c := range r.contents {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		all = append(all, c)
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeRepository) FindByID(_ context.Context, id int64) (*Content, error) {
	c, ok := r.contents[id]
	if !ok {
		return nil, apperr.NotFound("Content")
	}
	return c, nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*Content, error) {
	for _, c := range r.contents {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Content")
}

func (r *fakeRepository) Create(_ context.Context, c *Content) error {
	for _, existing := range r.contents {
		if existing.Slug == c.Slug {
			return apperr.Conflict("Content already exists")
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.contents[c.ID] = c
	return nil
}

func (r *fakeRepository) ListSeasons(_ context.Context, seriesID int64) ([]*Season, error) {
	return r.seasons[seriesID], nil
}

func (r *fakeRepository) ListEpisodes(_ context.Context, seasonID int64) ([]*Episode, error) {
	return r.episodes[seasonID], nil
}

func (r *fakeRepository) CreateSeason(_ context.Context, season *Season) error {
	season.ID = r.nextID
	r.nextID++
	r.seasons[season.SeriesID] = append(r.seasons[season.SeriesID], season)
	return nil
}

func (r *fakeRepository) CreateEpisode(_ context.Context, episode *Episode) error {
	episode.ID = r.nextID
	r.nextID++
	r.episodes[episode.SeasonID] = append(r.episodes[episode.SeasonID], episode)
	return nil
}

func (r *fakeRepository) SetPublicScore(_ context.Context, contentID int64, score float64) error {
	c, ok := r.contents[contentID]
	if !ok {
		return apperr.NotFound("Content")
	}
	c.PublicScore = score
	return nil
}

func (r *fakeRepository) SetSeasonScores(_ context.Context, _ int64, _, _ float64) error { return nil }

func (r *fakeRepository) SetSeriesScores(_ context.Context, _ int64, _, _ float64) error { return nil }

// fakeCache records fills and serves canned entries.
type fakeCache struct {
	entries map[int64]float64
	fills   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]float64)}
}

func (c *fakeCache) GetPublicScore(_ context.Context, contentID int64) (float64, bool, error) {
	v, ok := c.entries[contentID]
	return v, ok, nil
}

func (c *fakeCache) SetPublicScore(_ context.Context, contentID int64, score float64) error {
	c.entries[contentID] = score
	c.fills++
	return nil
}

// fakeRecomputer records rollup triggers.
type fakeRecomputer struct {
	calls []int64
}

func (r *fakeRecomputer) RecomputeSeriesScores(_ context.Context, seriesID int64) error {
	r.calls = append(r.calls, seriesID)
	return nil
}

func newTestService(repo *fakeRepository, cache *fakeCache, recomputer *fakeRecomputer) *Service {
	return NewService(repo, cache, recomputer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intPtr(v int) *int { return &v }

// # Tests

/*
TestGetContent_ResolvesIDAndSlug verifies that numeric references resolve by
primary key with a slug fallback, and non-numeric references resolve by slug.
*/
func TestGetContent_ResolvesIDAndSlug(t *testing.T) {
	repo := newFakeRepository()
	repo.contents[7] = &Content{ID: 7, Type: ContentTypeMovie, Title: "The Matrix", Slug: "the-matrix"}
	repo.contents[8] = &Content{ID: 8, Type: ContentTypeMovie, Title: "1917", Slug: "1917"}

	service := newTestService(repo, newFakeCache(), &fakeRecomputer{})

	t.Run("by_id", func(t *testing.T) {
		content, err := service.GetContent(context.Background(), "7")
		require.NoError(t, err)
		assert.Equal(t, "the-matrix", content.Slug)
	})

	t.Run("by_slug", func(t *testing.T) {
		content, err := service.GetContent(context.Background(), "the-matrix")
		require.NoError(t, err)
		assert.Equal(t, int64(7), content.ID)
	})

	t.Run("numeric_slug_fallback", func(t *testing.T) {
		// "1917" is not a live ID, so the lookup falls back to the slug.
		content, err := service.GetContent(context.Background(), "1917")
		require.NoError(t, err)
		assert.Equal(t, int64(8), content.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.GetContent(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestCreateContent_Validation verifies the variant field rules: movies need a
duration, series reject movie-only fields, and scores stay on the 0–10 scale.
*/
func TestCreateContent_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateContentInput
	}{
		{"missing_title", CreateContentInput{Type: "movie", ReleaseYear: 2020, Duration: intPtr(120)}},
		{"unknown_type", CreateContentInput{Type: "podcast", Title: "X", ReleaseYear: 2020}},
		{"movie_without_duration", CreateContentInput{Type: "movie", Title: "X", ReleaseYear: 2020}},
		{"series_with_duration", CreateContentInput{Type: "series", Title: "X", ReleaseYear: 2020, Duration: intPtr(45)}},
		{"score_out_of_range", CreateContentInput{Type: "movie", Title: "X", ReleaseYear: 2020, Duration: intPtr(120), BaseScore: 11}},
		{"ancient_release_year", CreateContentInput{Type: "movie", Title: "X", ReleaseYear: 1700, Duration: intPtr(120)}},
	}

	service := newTestService(newFakeRepository(), newFakeCache(), &fakeRecomputer{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateContent(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestCreateContent_SeedsPublicScore verifies that a freshly created title
starts with its public score at the editorial base score, and that the slug
is derived from the title.
*/
func TestCreateContent_SeedsPublicScore(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeCache(), &fakeRecomputer{})

	content, err := service.CreateContent(context.Background(), CreateContentInput{
		Type:        "movie",
		Title:       "Blade Runner 2049",
		ReleaseYear: 2017,
		BaseScore:   8.0,
		MetaScore:   8.1,
		Duration:    intPtr(164),
	})
	require.NoError(t, err)

	assert.Equal(t, "blade-runner-2049", content.Slug)
	assert.InDelta(t, 8.0, content.PublicScore, 1e-9)
	assert.NotZero(t, content.ID)
}

/*
TestCreateContent_DuplicateSlug verifies the CONFLICT surface for two titles
producing the same slug.
*/
func TestCreateContent_DuplicateSlug(t *testing.T) {
	service := newTestService(newFakeRepository(), newFakeCache(), &fakeRecomputer{})

	input := CreateContentInput{Type: "movie", Title: "Heat", ReleaseYear: 1995, Duration: intPtr(170)}

	_, err := service.CreateContent(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateContent(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestGetPublicScore_CacheFirst verifies the cache-first read path: hits skip
the repository, misses read through and refill the cache.
*/
func TestGetPublicScore_CacheFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.contents[1] = &Content{ID: 1, Type: ContentTypeMovie, PublicScore: 7.4}

	cache := newFakeCache()
	service := newTestService(repo, cache, &fakeRecomputer{})

	// Miss: read-through and refill.
	score, err := service.GetPublicScore(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 7.4, score, 1e-9)
	assert.Equal(t, 1, cache.fills)

	// Hit: the cached value is served even if the row changed underneath.
	repo.contents[1].PublicScore = 9.9
	score, err = service.GetPublicScore(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 7.4, score, 1e-9)
	assert.Equal(t, 1, cache.fills)
}

/*
TestAddSeason_TriggersRollup verifies that hierarchy changes trigger the
series score rollup and that movies reject season creation.
*/
func TestAddSeason_TriggersRollup(t *testing.T) {
	repo := newFakeRepository()
	repo.contents[10] = &Content{ID: 10, Type: ContentTypeSeries, Title: "The Wire"}
	repo.contents[20] = &Content{ID: 20, Type: ContentTypeMovie, Title: "Heat"}

	recomputer := &fakeRecomputer{}
	service := newTestService(repo, newFakeCache(), recomputer)

	input := CreateSeasonInput{SeasonNumber: 1, ReleaseYear: 2002, IMDBScore: 8.5, MetaScore: 7.9}

	season, err := service.AddSeason(context.Background(), 10, input)
	require.NoError(t, err)
	assert.NotZero(t, season.ID)
	assert.Equal(t, []int64{10}, recomputer.calls)

	_, err = service.AddSeason(context.Background(), 20, input)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

/*
TestAddEpisode_ChecksSeasonOwnership verifies that episodes can only be
added through the season's own series, and that additions trigger a rollup.
*/
func TestAddEpisode_ChecksSeasonOwnership(t *testing.T) {
	repo := newFakeRepository()
	repo.contents[10] = &Content{ID: 10, Type: ContentTypeSeries}
	repo.contents[11] = &Content{ID: 11, Type: ContentTypeSeries}
	repo.seasons[10] = []*Season{{ID: 100, SeriesID: 10, SeasonNumber: 1}}

	recomputer := &fakeRecomputer{}
	service := newTestService(repo, newFakeCache(), recomputer)

	input := CreateEpisodeInput{EpisodeNumber: 1, Title: "Pilot", Duration: 55, IMDBScore: 8.0, MetaScore: 7.0}

	episode, err := service.AddEpisode(context.Background(), 10, 100, input)
	require.NoError(t, err)
	assert.NotZero(t, episode.ID)
	assert.Equal(t, []int64{10}, recomputer.calls)

	// Season 100 belongs to series 10, not 11.
	_, err = service.AddEpisode(context.Background(), 11, 100, input)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestListContents_RejectsUnknownTypeFilter verifies the early validation of
the type filter.
*/
func TestListContents_RejectsUnknownTypeFilter(t *testing.T) {
	service := newTestService(newFakeRepository(), newFakeCache(), &fakeRecomputer{})

	_, _, err := service.ListContents(context.Background(), Filter{Type: "podcast"}, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
