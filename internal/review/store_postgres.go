// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/database/schema"
	"github.com/rateflix/rateflix/internal/platform/dberr"
)

// # PostgreSQL Repository

// reviewRepository implements the [Repository] interface using pgx.
type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed review store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &reviewRepository{pool: pool}
}

// reviewColumns is the canonical SELECT column list, matched by scanReview.
func reviewColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.SocialReview.ID,
		schema.SocialReview.ContentID,
		schema.SocialReview.UserID,
		schema.SocialReview.Rating,
		schema.SocialReview.Comment,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.UpdatedAt,
	)
}

// scanReview maps one row produced by reviewColumns onto a Review entity.
func scanReview(row interface{ Scan(dest ...any) error }) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.ContentID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

/*
FindByID retrieves a review by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Review: The hydrated review
  - error: apperr.NotFound if missing
*/
func (repository *reviewRepository) FindByID(context context.Context, id int64) (*Review, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		reviewColumns(),
		schema.SocialReview.Table,
		schema.SocialReview.ID,
	)

	review, err := scanReview(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return review, nil
}

/*
FindByContentAndUser retrieves a user's review of a content item.

Parameters:
  - context: context.Context
  - contentID: int64
  - userID: string

Returns:
  - *Review: The hydrated review
  - error: apperr.NotFound if the user has not reviewed the item
*/
func (repository *reviewRepository) FindByContentAndUser(context context.Context, contentID int64, userID string) (*Review, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		reviewColumns(),
		schema.SocialReview.Table,
		schema.SocialReview.ContentID,
		schema.SocialReview.UserID,
	)

	review, err := scanReview(repository.pool.QueryRow(context, query, contentID, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return review, nil
}

/*
ListByContent returns a paginated page of reviews for a content item,
newest first, using COUNT(*) OVER() for the total.

Parameters:
  - context: context.Context
  - contentID: int64
  - limit: int
  - offset: int

Returns:
  - []*Review: Page of reviews
  - int: Total review count
  - error: Database execution errors
*/
func (repository *reviewRepository) ListByContent(context context.Context, contentID int64, limit, offset int) ([]*Review, int, error) {

	query := fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3
	`,
		reviewColumns(),
		schema.SocialReview.Table,
		schema.SocialReview.ContentID,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.ID,
	)

	rows, err := repository.pool.Query(context, query, contentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var totalCount int

	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID,
			&review.ContentID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, totalCount, nil
}

/*
ListRatingsByContent returns every rating value submitted for a content item.

Parameters:
  - context: context.Context
  - contentID: int64

Returns:
  - []int: Rating values, comment-only reviews included as 0
  - error: Database execution errors
*/
func (repository *reviewRepository) ListRatingsByContent(context context.Context, contentID int64) ([]int, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialReview.Rating,
		schema.SocialReview.Table,
		schema.SocialReview.ContentID,
	)

	rows, err := repository.pool.Query(context, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

/*
Create persists a new review and writes the generated identity and
timestamps back onto the entity.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.Conflict on a duplicate (content, user) pair,
    apperr.Unprocessable when the content does not exist
*/
func (repository *reviewRepository) Create(context context.Context, review *Review) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		schema.SocialReview.Table,
		schema.SocialReview.ContentID,
		schema.SocialReview.UserID,
		schema.SocialReview.Rating,
		schema.SocialReview.Comment,
		schema.SocialReview.ID,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		review.ContentID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	return nil
}

/*
Update persists changes to an existing review's rating and comment.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.NotFound when the review no longer exists
*/
func (repository *reviewRepository) Update(context context.Context, review *Review) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3
		RETURNING %s
	`,
		schema.SocialReview.Table,
		schema.SocialReview.Rating,
		schema.SocialReview.Comment,
		schema.SocialReview.UpdatedAt,
		schema.SocialReview.ID,
		schema.SocialReview.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		review.Rating,
		review.Comment,
		review.ID,
	).Scan(&review.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	return nil
}

/*
Delete removes a review permanently.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound when no row matched
*/
func (repository *reviewRepository) Delete(context context.Context, id int64) error {

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
	`,
		schema.SocialReview.Table,
		schema.SocialReview.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

/*
Restore re-inserts a previously deleted review with its original identity
and timestamps.

Description: The identity column is GENERATED ALWAYS, so the insert uses
OVERRIDING SYSTEM VALUE to reclaim the original ID during compensation.

Parameters:
  - context: context.Context
  - review: *Review (Snapshot taken before deletion)

Returns:
  - error: Storage failures
*/
func (repository *reviewRepository) Restore(context context.Context, review *Review) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.SocialReview.Table,
		schema.SocialReview.ID,
		schema.SocialReview.ContentID,
		schema.SocialReview.UserID,
		schema.SocialReview.Rating,
		schema.SocialReview.Comment,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		review.ID,
		review.ContentID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	return nil
}
