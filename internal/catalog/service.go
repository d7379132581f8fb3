// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package catalog

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/validate"
	"github.com/rateflix/rateflix/pkg/slug"
)

// errNotASeries rejects hierarchy operations aimed at a movie.
func errNotASeries() error {
	return apperr.Unprocessable("Content is not a series")
}

// errSeasonNotFound rejects episode operations aimed at a season of a
// different series (or a missing one).
func errSeasonNotFound() error {
	return apperr.NotFound("Season")
}

// # Collaborator Contracts

// ScoreCache is the read side of the public-score cache used by lookups.
//
// Satisfied by the scoring engine's Redis cache; the catalogue never writes
// scores itself, so cache fills here only repair misses.
type ScoreCache interface {
	GetPublicScore(context context.Context, contentID int64) (float64, bool, error)
	SetPublicScore(context context.Context, contentID int64, score float64) error
}

// SeriesRecomputer triggers the bottom-up editorial score rollup after the
// series hierarchy changes. Satisfied by the scoring aggregator.
type SeriesRecomputer interface {
	RecomputeSeriesScores(context context.Context, seriesID int64) error
}

// # Input Contracts

// CreateContentInput carries the fields for creating a movie or a series.
type CreateContentInput struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReleaseYear int     `json:"release_year"`
	ImageURL    string  `json:"image_url"`
	TrailerURL  string  `json:"trailer_url"`
	BaseScore   float64 `json:"base_score"`
	MetaScore   float64 `json:"meta_score"`

	// Movie-only fields.
	Duration   *int   `json:"duration,omitempty"`
	DirectorID *int64 `json:"director_id,omitempty"`

	// Series-only fields.
	TotalSeasons *int `json:"total_seasons,omitempty"`
}

// CreateSeasonInput carries the fields for adding a season to a series.
type CreateSeasonInput struct {
	SeasonNumber int     `json:"season_number"`
	Description  string  `json:"description"`
	ReleaseYear  int     `json:"release_year"`
	IMDBScore    float64 `json:"imdb_score"`
	MetaScore    float64 `json:"meta_score"`
}

// CreateEpisodeInput carries the fields for adding an episode to a season.
type CreateEpisodeInput struct {
	EpisodeNumber int     `json:"episode_number"`
	Title         string  `json:"title"`
	TrailerURL    string  `json:"trailer_url"`
	Duration      int     `json:"duration"`
	IMDBScore     float64 `json:"imdb_score"`
	MetaScore     float64 `json:"meta_score"`
}

// # Catalogue Service

// Service implements the catalogue use-cases on top of [ContentRepository].
type Service struct {
	repository ContentRepository
	cache      ScoreCache
	recomputer SeriesRecomputer
	logger     *slog.Logger
}

// NewService wires the catalogue service with its collaborators.
func NewService(repository ContentRepository, cache ScoreCache, recomputer SeriesRecomputer, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		recomputer: recomputer,
		logger:     logger,
	}
}

/*
GetContent resolves a catalogue entry by numeric ID or SEO slug.

Description: A purely numeric reference is tried as a primary key first and
falls back to a slug lookup, since a title like "1917" produces an
all-numeric slug.

Parameters:
  - context: context.Context
  - reference: string (Numeric ID or slug)

Returns:
  - *Content: The hydrated entity
  - error: apperr.NotFound if missing
*/
func (service *Service) GetContent(context context.Context, reference string) (*Content, error) {

	// Numeric references resolve by primary key first
	if id, err := strconv.ParseInt(reference, 10, 64); err == nil && id > 0 {
		content, err := service.repository.FindByID(context, id)
		if err == nil {
			return content, nil
		}
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return nil, err
		}
	}

	return service.repository.FindBySlug(context, reference)
}

/*
ListContents returns a filtered, paginated catalogue page.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Content: Matching entries
  - int: Total count for pagination metadata
  - error: Storage failures
*/
func (service *Service) ListContents(context context.Context, filter Filter, limit, offset int) ([]*Content, int, error) {

	// Reject unknown type filters early instead of returning an empty page
	if filter.Type != "" && !filter.Type.Valid() {
		v := &validate.Validator{}
		return nil, 0, v.OneOf("type", string(filter.Type), string(ContentTypeMovie), string(ContentTypeSeries)).Err()
	}

	return service.repository.List(context, filter, limit, offset)
}

/*
GetPublicScore returns the blended public score of a content item,
cache-first.

Description: On a cache miss the score is read from the database and the
cache is refilled. Cache failures fall back to the database silently — the
cache is an optimization, never a dependency.

Parameters:
  - context: context.Context
  - contentID: int64

Returns:
  - float64: The public score (one decimal)
  - error: apperr.NotFound if the content is missing
*/
func (service *Service) GetPublicScore(context context.Context, contentID int64) (float64, error) {

	// Cache lookup (failures degrade to a miss)
	if score, ok, err := service.cache.GetPublicScore(context, contentID); err == nil && ok {
		return score, nil
	}

	content, err := service.repository.FindByID(context, contentID)
	if err != nil {
		return 0, err
	}

	// Repair the miss; a failed fill is not worth failing the read
	if err := service.cache.SetPublicScore(context, contentID, content.PublicScore); err != nil {
		service.logger.WarnContext(context, "score_cache_fill_failed",
			slog.Int64("content_id", contentID),
			slog.String("error", err.Error()),
		)
	}

	return content.PublicScore, nil
}

/*
CreateContent validates and persists a new movie or series.

The slug is derived from the title. The public score starts at the editorial
base score — with no community ratings, the blend degenerates to the anchor.

Parameters:
  - context: context.Context
  - input: CreateContentInput

Returns:
  - *Content: The persisted entity with generated identity
  - error: apperr.ValidationError on bad input, apperr.Conflict on duplicate slug
*/
func (service *Service) CreateContent(context context.Context, input CreateContentInput) (*Content, error) {

	contentType := ContentType(input.Type)

	// Validate shared fields
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 250).
		MaxLen("description", input.Description, 5000).
		OneOf("type", input.Type, string(ContentTypeMovie), string(ContentTypeSeries)).
		Range("release_year", input.ReleaseYear, 1888, 2100).
		ScoreRange("base_score", input.BaseScore, 0, 10).
		ScoreRange("meta_score", input.MetaScore, 0, 10)

	// Validate variant fields
	switch contentType {
	case ContentTypeMovie:
		v.Custom("duration", input.Duration == nil || *input.Duration <= 0, "A movie requires a positive duration in minutes").
			Custom("total_seasons", input.TotalSeasons != nil, "Not applicable to movies")
	case ContentTypeSeries:
		v.Custom("duration", input.Duration != nil, "Not applicable to series").
			Custom("director_id", input.DirectorID != nil, "Not applicable to series")
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	content := &Content{
		Type:        contentType,
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		ReleaseYear: input.ReleaseYear,
		ImageURL:    input.ImageURL,
		TrailerURL:  input.TrailerURL,
		BaseScore:   input.BaseScore,
		PublicScore: input.BaseScore,
		MetaScore:   input.MetaScore,

		Duration:     input.Duration,
		DirectorID:   input.DirectorID,
		TotalSeasons: input.TotalSeasons,
	}

	if err := service.repository.Create(context, content); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "content_created",
		slog.Int64("content_id", content.ID),
		slog.String("type", string(content.Type)),
		slog.String("slug", content.Slug),
	)

	return content, nil
}

/*
AddSeason validates and persists a new season under a series, then rolls the
series' editorial scores up from the changed hierarchy.

Parameters:
  - context: context.Context
  - seriesID: int64
  - input: CreateSeasonInput

Returns:
  - *Season: The persisted season
  - error: apperr.NotFound if the series is missing, apperr.Unprocessable if
    the target is a movie, apperr.Conflict on duplicate season number
*/
func (service *Service) AddSeason(context context.Context, seriesID int64, input CreateSeasonInput) (*Season, error) {

	v := &validate.Validator{}
	v.Range("season_number", input.SeasonNumber, 1, 1000).
		MaxLen("description", input.Description, 5000).
		Range("release_year", input.ReleaseYear, 1888, 2100).
		ScoreRange("imdb_score", input.IMDBScore, 0, 10).
		ScoreRange("meta_score", input.MetaScore, 0, 10)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// The parent must exist and be a series
	if err := service.requireSeries(context, seriesID); err != nil {
		return nil, err
	}

	season := &Season{
		SeriesID:     seriesID,
		SeasonNumber: input.SeasonNumber,
		Description:  input.Description,
		ReleaseYear:  input.ReleaseYear,
		IMDBScore:    input.IMDBScore,
		MetaScore:    input.MetaScore,
	}

	if err := service.repository.CreateSeason(context, season); err != nil {
		return nil, err
	}

	if err := service.recomputer.RecomputeSeriesScores(context, seriesID); err != nil {
		return nil, err
	}

	return season, nil
}

/*
AddEpisode validates and persists a new episode under a season, then rolls
the series' editorial scores up from the changed hierarchy.

Parameters:
  - context: context.Context
  - seriesID: int64
  - seasonID: int64
  - input: CreateEpisodeInput

Returns:
  - *Episode: The persisted episode
  - error: apperr.NotFound if the series or season is missing,
    apperr.Conflict on duplicate episode number
*/
func (service *Service) AddEpisode(context context.Context, seriesID, seasonID int64, input CreateEpisodeInput) (*Episode, error) {

	v := &validate.Validator{}
	v.Range("episode_number", input.EpisodeNumber, 1, 10000).
		Required("title", input.Title).
		MaxLen("title", input.Title, 250).
		Range("duration", input.Duration, 1, 1000).
		ScoreRange("imdb_score", input.IMDBScore, 0, 10).
		ScoreRange("meta_score", input.MetaScore, 0, 10)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// The season must belong to the addressed series
	if err := service.requireSeason(context, seriesID, seasonID); err != nil {
		return nil, err
	}

	episode := &Episode{
		SeasonID:      seasonID,
		EpisodeNumber: input.EpisodeNumber,
		Title:         input.Title,
		TrailerURL:    input.TrailerURL,
		Duration:      input.Duration,
		IMDBScore:     input.IMDBScore,
		MetaScore:     input.MetaScore,
	}

	if err := service.repository.CreateEpisode(context, episode); err != nil {
		return nil, err
	}

	if err := service.recomputer.RecomputeSeriesScores(context, seriesID); err != nil {
		return nil, err
	}

	return episode, nil
}

/*
ListSeasons returns the season hierarchy of a series.

Parameters:
  - context: context.Context
  - seriesID: int64

Returns:
  - []*Season: Ordered seasons
  - error: apperr.NotFound if the series is missing
*/
func (service *Service) ListSeasons(context context.Context, seriesID int64) ([]*Season, error) {
	if err := service.requireSeries(context, seriesID); err != nil {
		return nil, err
	}
	return service.repository.ListSeasons(context, seriesID)
}

/*
ListEpisodes returns the episodes of a season within a series.

Parameters:
  - context: context.Context
  - seriesID: int64
  - seasonID: int64

Returns:
  - []*Episode: Ordered episodes
  - error: apperr.NotFound if the series or season is missing
*/
func (service *Service) ListEpisodes(context context.Context, seriesID, seasonID int64) ([]*Episode, error) {
	if err := service.requireSeason(context, seriesID, seasonID); err != nil {
		return nil, err
	}
	return service.repository.ListEpisodes(context, seasonID)
}

/*
RecomputeSeries triggers a full editorial rollup of a series on demand.

Exposed to administrators for repairing scores after out-of-band data edits.

Parameters:
  - context: context.Context
  - seriesID: int64

Returns:
  - error: apperr.NotFound if the series is missing, apperr.Unprocessable if
    the target is a movie
*/
func (service *Service) RecomputeSeries(context context.Context, seriesID int64) error {
	return service.recomputer.RecomputeSeriesScores(context, seriesID)
}

// requireSeries fails unless seriesID refers to an existing series.
func (service *Service) requireSeries(context context.Context, seriesID int64) error {
	content, err := service.repository.FindByID(context, seriesID)
	if err != nil {
		return err
	}
	if content.Type != ContentTypeSeries {
		return errNotASeries()
	}
	return nil
}

// requireSeason fails unless seasonID is a season of seriesID.
func (service *Service) requireSeason(context context.Context, seriesID, seasonID int64) error {
	if err := service.requireSeries(context, seriesID); err != nil {
		return err
	}

	seasons, err := service.repository.ListSeasons(context, seriesID)
	if err != nil {
		return err
	}
	for _, season := range seasons {
		if season.ID == seasonID {
			return nil
		}
	}
	return errSeasonNotFound()
}
