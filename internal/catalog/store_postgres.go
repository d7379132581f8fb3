// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/database/schema"
	"github.com/rateflix/rateflix/internal/platform/dberr"
)

// # PostgreSQL Repository

// contentRepository implements the [ContentRepository] interface using pgx.
type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository constructs a PostgreSQL backed catalogue store.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

// contentColumns is the canonical SELECT column list for catalog.content rows,
// matched field-for-field by scanContent.
func contentColumns(alias string) string {
	cols := []string{
		schema.CatalogContent.ID,
		schema.CatalogContent.ContentType,
		schema.CatalogContent.Title,
		schema.CatalogContent.Slug,
		schema.CatalogContent.Description,
		schema.CatalogContent.ReleaseYear,
		schema.CatalogContent.ImageURL,
		schema.CatalogContent.TrailerURL,
		schema.CatalogContent.BaseScore,
		schema.CatalogContent.PublicScore,
		schema.CatalogContent.MetaScore,
		schema.CatalogContent.Duration,
		schema.CatalogContent.DirectorID,
		schema.CatalogContent.TotalSeasons,
		schema.CatalogContent.CreatedAt,
		schema.CatalogContent.UpdatedAt,
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// scanContent maps one row produced by contentColumns onto a Content entity.
func scanContent(row interface{ Scan(dest ...any) error }) (*Content, error) {
	content := &Content{}
	err := row.Scan(
		&content.ID,
		&content.Type,
		&content.Title,
		&content.Slug,
		&content.Description,
		&content.ReleaseYear,
		&content.ImageURL,
		&content.TrailerURL,
		&content.BaseScore,
		&content.PublicScore,
		&content.MetaScore,
		&content.Duration,
		&content.DirectorID,
		&content.TotalSeasons,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return content, nil
}

/*
List returns a filtered, paginated slice of content and the total count.

Description: Uses COUNT(*) OVER() as a window function to retrieve the total
record count without a second query. Filters are appended dynamically with
positional arguments.

Parameters:
  - context: context.Context
  - filter: Filter (Type and title search criteria)
  - limit: int
  - offset: int

Returns:
  - []*Content: Slice of hydrated catalogue entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *contentRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Content, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE c.%s IS NULL
	`,
		contentColumns("c"),
		schema.CatalogContent.Table,
		schema.CatalogContent.DeletedAt,
	))

	// Type Filtering (movie / series)
	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CatalogContent.ContentType, argID))
		args = append(args, string(filter.Type))
		argID++
	}

	// Title Search Filtering
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s ILIKE $%d", schema.CatalogContent.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	// Stable ordering: newest first, ID as tiebreaker
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC, c.%s DESC", schema.CatalogContent.CreatedAt, schema.CatalogContent.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list content: %w", err)
	}
	defer rows.Close()

	var contents []*Content
	var totalCount int

	for rows.Next() {
		content := &Content{}
		err := rows.Scan(
			&content.ID,
			&content.Type,
			&content.Title,
			&content.Slug,
			&content.Description,
			&content.ReleaseYear,
			&content.ImageURL,
			&content.TrailerURL,
			&content.BaseScore,
			&content.PublicScore,
			&content.MetaScore,
			&content.Duration,
			&content.DirectorID,
			&content.TotalSeasons,
			&content.CreatedAt,
			&content.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}

	return contents, totalCount, nil
}

/*
FindByID retrieves a content record by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Content: The hydrated entity
  - error: apperr.NotFound if missing or soft-deleted
*/
func (repository *contentRepository) FindByID(context context.Context, id int64) (*Content, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`,
		contentColumns("c"),
		schema.CatalogContent.Table,
		schema.CatalogContent.ID,
		schema.CatalogContent.DeletedAt,
	)

	content, err := scanContent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Content")
	}

	return content, nil
}

/*
FindBySlug retrieves a content record by its unique SEO identifier.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Content: The hydrated entity
  - error: apperr.NotFound if missing or soft-deleted
*/
func (repository *contentRepository) FindBySlug(context context.Context, slug string) (*Content, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL
	`,
		contentColumns("c"),
		schema.CatalogContent.Table,
		schema.CatalogContent.Slug,
		schema.CatalogContent.DeletedAt,
	)

	content, err := scanContent(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Content")
	}

	return content, nil
}

/*
Create persists a new movie or series and writes the generated identity and
timestamps back onto the entity.

Parameters:
  - context: context.Context
  - content: *Content

Returns:
  - error: apperr.Conflict on duplicate slug, otherwise storage failures
*/
func (repository *contentRepository) Create(context context.Context, content *Content) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s, %s, %s
	`,
		schema.CatalogContent.Table,
		schema.CatalogContent.ContentType,
		schema.CatalogContent.Title,
		schema.CatalogContent.Slug,
		schema.CatalogContent.Description,
		schema.CatalogContent.ReleaseYear,
		schema.CatalogContent.ImageURL,
		schema.CatalogContent.TrailerURL,
		schema.CatalogContent.BaseScore,
		schema.CatalogContent.PublicScore,
		schema.CatalogContent.MetaScore,
		schema.CatalogContent.Duration,
		schema.CatalogContent.DirectorID,
		schema.CatalogContent.TotalSeasons,
		schema.CatalogContent.ID,
		schema.CatalogContent.CreatedAt,
		schema.CatalogContent.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		string(content.Type),
		content.Title,
		content.Slug,
		content.Description,
		content.ReleaseYear,
		content.ImageURL,
		content.TrailerURL,
		content.BaseScore,
		content.PublicScore,
		content.MetaScore,
		content.Duration,
		content.DirectorID,
		content.TotalSeasons,
	).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Content")
	}

	return nil
}

// # Series Hierarchy

/*
ListSeasons returns all seasons of a series ordered by season number.

Parameters:
  - context: context.Context
  - seriesID: int64

Returns:
  - []*Season: Ordered seasons
  - error: Database execution errors
*/
func (repository *contentRepository) ListSeasons(context context.Context, seriesID int64) ([]*Season, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogSeason.ID,
		schema.CatalogSeason.SeriesID,
		schema.CatalogSeason.SeasonNumber,
		schema.CatalogSeason.Description,
		schema.CatalogSeason.ReleaseYear,
		schema.CatalogSeason.IMDBScore,
		schema.CatalogSeason.MetaScore,
		schema.CatalogSeason.CreatedAt,
		schema.CatalogSeason.UpdatedAt,
		schema.CatalogSeason.Table,
		schema.CatalogSeason.SeriesID,
		schema.CatalogSeason.SeasonNumber,
	)

	rows, err := repository.pool.Query(context, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list seasons: %w", err)
	}
	defer rows.Close()

	seasons := []*Season{}
	for rows.Next() {
		season := &Season{}
		err := rows.Scan(
			&season.ID,
			&season.SeriesID,
			&season.SeasonNumber,
			&season.Description,
			&season.ReleaseYear,
			&season.IMDBScore,
			&season.MetaScore,
			&season.CreatedAt,
			&season.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}

	return seasons, nil
}

/*
ListEpisodes returns all episodes of a season ordered by episode number.

Parameters:
  - context: context.Context
  - seasonID: int64

Returns:
  - []*Episode: Ordered episodes
  - error: Database execution errors
*/
func (repository *contentRepository) ListEpisodes(context context.Context, seasonID int64) ([]*Episode, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogEpisode.ID,
		schema.CatalogEpisode.SeasonID,
		schema.CatalogEpisode.EpisodeNumber,
		schema.CatalogEpisode.Title,
		schema.CatalogEpisode.TrailerURL,
		schema.CatalogEpisode.Duration,
		schema.CatalogEpisode.IMDBScore,
		schema.CatalogEpisode.MetaScore,
		schema.CatalogEpisode.CreatedAt,
		schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.SeasonID,
		schema.CatalogEpisode.EpisodeNumber,
	)

	rows, err := repository.pool.Query(context, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list episodes: %w", err)
	}
	defer rows.Close()

	episodes := []*Episode{}
	for rows.Next() {
		episode := &Episode{}
		err := rows.Scan(
			&episode.ID,
			&episode.SeasonID,
			&episode.EpisodeNumber,
			&episode.Title,
			&episode.TrailerURL,
			&episode.Duration,
			&episode.IMDBScore,
			&episode.MetaScore,
			&episode.CreatedAt,
			&episode.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}

	return episodes, nil
}

/*
CreateSeason persists a new season and writes the generated identity back.

Parameters:
  - context: context.Context
  - season: *Season

Returns:
  - error: apperr.Conflict on duplicate season number, apperr.Unprocessable
    when the parent series is missing
*/
func (repository *contentRepository) CreateSeason(context context.Context, season *Season) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s
	`,
		schema.CatalogSeason.Table,
		schema.CatalogSeason.SeriesID,
		schema.CatalogSeason.SeasonNumber,
		schema.CatalogSeason.Description,
		schema.CatalogSeason.ReleaseYear,
		schema.CatalogSeason.IMDBScore,
		schema.CatalogSeason.MetaScore,
		schema.CatalogSeason.ID,
		schema.CatalogSeason.CreatedAt,
		schema.CatalogSeason.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		season.SeriesID,
		season.SeasonNumber,
		season.Description,
		season.ReleaseYear,
		season.IMDBScore,
		season.MetaScore,
	).Scan(&season.ID, &season.CreatedAt, &season.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Season")
	}

	return nil
}

/*
CreateEpisode persists a new episode and writes the generated identity back.

Parameters:
  - context: context.Context
  - episode: *Episode

Returns:
  - error: apperr.Conflict on duplicate episode number, apperr.Unprocessable
    when the parent season is missing
*/
func (repository *contentRepository) CreateEpisode(context context.Context, episode *Episode) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.SeasonID,
		schema.CatalogEpisode.EpisodeNumber,
		schema.CatalogEpisode.Title,
		schema.CatalogEpisode.TrailerURL,
		schema.CatalogEpisode.Duration,
		schema.CatalogEpisode.IMDBScore,
		schema.CatalogEpisode.MetaScore,
		schema.CatalogEpisode.ID,
		schema.CatalogEpisode.CreatedAt,
		schema.CatalogEpisode.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		episode.SeasonID,
		episode.EpisodeNumber,
		episode.Title,
		episode.TrailerURL,
		episode.Duration,
		episode.IMDBScore,
		episode.MetaScore,
	).Scan(&episode.ID, &episode.CreatedAt, &episode.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Episode")
	}

	return nil
}

// # Score Write-back

/*
SetPublicScore updates the blended community score of a content entry.

Parameters:
  - context: context.Context
  - contentID: int64
  - score: float64

Returns:
  - error: apperr.NotFound when no live row matches
*/
func (repository *contentRepository) SetPublicScore(context context.Context, contentID int64, score float64) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = now()
		WHERE %s = $2 AND %s IS NULL
	`,
		schema.CatalogContent.Table,
		schema.CatalogContent.PublicScore,
		schema.CatalogContent.UpdatedAt,
		schema.CatalogContent.ID,
		schema.CatalogContent.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, score, contentID)
	if err != nil {
		return fmt.Errorf("postgres: failed to set public score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Content")
	}

	return nil
}

/*
SetSeasonScores updates the rolled-up editorial scores of a season.

Parameters:
  - context: context.Context
  - seasonID: int64
  - imdbScore: float64
  - metaScore: float64

Returns:
  - error: apperr.NotFound when no row matches
*/
func (repository *contentRepository) SetSeasonScores(context context.Context, seasonID int64, imdbScore, metaScore float64) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3
	`,
		schema.CatalogSeason.Table,
		schema.CatalogSeason.IMDBScore,
		schema.CatalogSeason.MetaScore,
		schema.CatalogSeason.UpdatedAt,
		schema.CatalogSeason.ID,
	)

	tag, err := repository.pool.Exec(context, query, imdbScore, metaScore, seasonID)
	if err != nil {
		return fmt.Errorf("postgres: failed to set season scores: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Season")
	}

	return nil
}

/*
SetSeriesScores updates the rolled-up editorial scores of a series root.

Parameters:
  - context: context.Context
  - seriesID: int64
  - baseScore: float64
  - metaScore: float64

Returns:
  - error: apperr.NotFound when no live series row matches
*/
func (repository *contentRepository) SetSeriesScores(context context.Context, seriesID int64, baseScore, metaScore float64) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3 AND %s = $4 AND %s IS NULL
	`,
		schema.CatalogContent.Table,
		schema.CatalogContent.BaseScore,
		schema.CatalogContent.MetaScore,
		schema.CatalogContent.UpdatedAt,
		schema.CatalogContent.ID,
		schema.CatalogContent.ContentType,
		schema.CatalogContent.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, baseScore, metaScore, seriesID, string(ContentTypeSeries))
	if err != nil {
		return fmt.Errorf("postgres: failed to set series scores: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Series")
	}

	return nil
}
