// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package catalog

import "context"

// # Catalogue Data Access

// ContentRepository defines the data access contract for the catalogue domain.
type ContentRepository interface {

	/*
		List returns a filtered, paginated slice of content and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for type and title search)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Content: Slice of matching catalogue entries
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Content, int, error)

	/*
		FindByID returns the content entry with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Content: The hydrated domain entity
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id int64) (*Content, error)

	/*
		FindBySlug returns the content entry matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Content: The hydrated domain entity
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Content, error)

	/*
		Create persists a new movie or series to the store.

		The generated ID is written back onto the entity.

		Parameters:
		  - context: context.Context
		  - content: *Content

		Returns:
		  - error: Storage or constraint failures (duplicate slug → apperr.Conflict)
	*/
	Create(context context.Context, content *Content) error

	// # Series Hierarchy

	/*
		ListSeasons returns all seasons of a series, ordered by season number.

		Parameters:
		  - context: context.Context
		  - seriesID: int64

		Returns:
		  - []*Season: Ordered seasons (empty slice for a season-less series)
		  - error: Retrieval failures
	*/
	ListSeasons(context context.Context, seriesID int64) ([]*Season, error)

	/*
		ListEpisodes returns all episodes of a season, ordered by episode number.

		Parameters:
		  - context: context.Context
		  - seasonID: int64

		Returns:
		  - []*Episode: Ordered episodes (empty slice for an episode-less season)
		  - error: Retrieval failures
	*/
	ListEpisodes(context context.Context, seasonID int64) ([]*Episode, error)

	/*
		CreateSeason persists a new season under a series.

		Parameters:
		  - context: context.Context
		  - season: *Season

		Returns:
		  - error: apperr.Conflict on duplicate season number, apperr.Unprocessable
		    when the series does not exist
	*/
	CreateSeason(context context.Context, season *Season) error

	/*
		CreateEpisode persists a new episode under a season.

		Parameters:
		  - context: context.Context
		  - episode: *Episode

		Returns:
		  - error: apperr.Conflict on duplicate episode number, apperr.Unprocessable
		    when the season does not exist
	*/
	CreateEpisode(context context.Context, episode *Episode) error

	// # Score Write-back

	/*
		SetPublicScore updates the blended community score of a content entry.

		Parameters:
		  - context: context.Context
		  - contentID: int64
		  - score: float64 (Already rounded to one decimal)

		Returns:
		  - error: apperr.NotFound if the content does not exist
	*/
	SetPublicScore(context context.Context, contentID int64, score float64) error

	/*
		SetSeasonScores updates the rolled-up editorial scores of a season.

		Parameters:
		  - context: context.Context
		  - seasonID: int64
		  - imdbScore: float64 (Mean of episode IMDb scores, one decimal)
		  - metaScore: float64 (Mean of episode meta scores, one decimal)

		Returns:
		  - error: apperr.NotFound if the season does not exist
	*/
	SetSeasonScores(context context.Context, seasonID int64, imdbScore, metaScore float64) error

	/*
		SetSeriesScores updates the rolled-up editorial scores of a series root.

		Parameters:
		  - context: context.Context
		  - seriesID: int64
		  - baseScore: float64 (Mean of season IMDb scores, one decimal)
		  - metaScore: float64 (Mean of season meta scores, one decimal)

		Returns:
		  - error: apperr.NotFound if the series does not exist
	*/
	SetSeriesScores(context context.Context, seriesID int64, baseScore, metaScore float64) error
}
