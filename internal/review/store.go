// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package review

import "context"

// # Review Data Access

// Repository defines the data access contract for the review domain.
//
// It also satisfies the scoring engine's rating source contract via
// [Repository.ListRatingsByContent].
type Repository interface {

	/*
		FindByID returns the review with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Review: The hydrated review
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Review, error)

	/*
		FindByContentAndUser returns a user's review of a content item.

		Parameters:
		  - context: context.Context
		  - contentID: int64
		  - userID: string

		Returns:
		  - *Review: The hydrated review
		  - error: apperr.NotFound if the user has not reviewed the item
	*/
	FindByContentAndUser(context context.Context, contentID int64, userID string) (*Review, error)

	/*
		ListByContent returns a paginated page of reviews for a content item,
		newest first, and the total count.

		Parameters:
		  - context: context.Context
		  - contentID: int64
		  - limit: int
		  - offset: int

		Returns:
		  - []*Review: Page of reviews
		  - int: Total review count for the item
		  - error: Retrieval failures
	*/
	ListByContent(context context.Context, contentID int64, limit, offset int) ([]*Review, int, error)

	/*
		ListRatingsByContent returns every rating value submitted for a
		content item, feeding the public score blend.

		Parameters:
		  - context: context.Context
		  - contentID: int64

		Returns:
		  - []int: Rating values (0 for comment-only reviews)
		  - error: Retrieval failures
	*/
	ListRatingsByContent(context context.Context, contentID int64) ([]int, error)

	/*
		Create persists a new review and writes the generated identity back.

		The UNIQUE (contentid, userid) index enforces one review per user
		per item at the storage level.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: apperr.Conflict if the user already reviewed the item,
		    apperr.Unprocessable if the content does not exist
	*/
	Create(context context.Context, review *Review) error

	/*
		Update persists changes to an existing review's rating and comment.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: apperr.NotFound if the review no longer exists
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes a review permanently.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound if the review does not exist
	*/
	Delete(context context.Context, id int64) error

	/*
		Restore re-inserts a previously deleted review with its original
		identity and timestamps. Used for compensation when a score
		recomputation fails after a deletion.

		Parameters:
		  - context: context.Context
		  - review: *Review (Snapshot taken before deletion)

		Returns:
		  - error: Storage failures
	*/
	Restore(context context.Context, review *Review) error
}
