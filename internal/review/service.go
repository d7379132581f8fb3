// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rateflix/rateflix/internal/catalog"
	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/validate"
)

// # Collaborator Contracts

// ContentFinder verifies review targets against the catalogue.
// Satisfied by the catalogue repository.
type ContentFinder interface {
	FindByID(context context.Context, id int64) (*catalog.Content, error)
}

// ScoreRecomputer re-derives a content item's public score after a review
// mutation. Satisfied by the scoring aggregator.
type ScoreRecomputer interface {
	RecomputePublicScore(context context.Context, contentID int64) (float64, error)
}

// # Input Contracts

// SubmitReviewInput carries the fields of a review submission.
//
// A Rating of 0 submits (or preserves, on update) a comment-only review.
type SubmitReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// # Review Service

// Service implements the review use-cases on top of [Repository].
type Service struct {
	repository Repository
	contents   ContentFinder
	recomputer ScoreRecomputer
	logger     *slog.Logger
}

// NewService wires the review service with its collaborators.
func NewService(repository Repository, contents ContentFinder, recomputer ScoreRecomputer, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		contents:   contents,
		recomputer: recomputer,
		logger:     logger,
	}
}

/*
SubmitReview creates or amends the caller's review of a content item and
recomputes the public score.

Description: The one-review-per-user rule is enforced by the storage layer's
unique index. The service optimistically inserts and, on a conflict, retries
as an amendment of the existing review — this stays correct under concurrent
first submissions, where a pre-check would race.

On amendment, omitted fields keep their previous values: a zero rating
preserves the existing vote, an empty comment preserves the existing text.

If the score recomputation fails, the mutation is rolled back so the stored
score and the stored reviews never disagree, and an internal error surfaces.

Parameters:
  - context: context.Context
  - contentID: int64
  - userID: string (Subject from the verified token, stored as given)
  - input: SubmitReviewInput

Returns:
  - *SubmitResult: The persisted review, new public score, and amendment flag
  - error: apperr.ValidationError on bad input, apperr.NotFound for unknown
    content, apperr.Internal if recomputation failed and was compensated
*/
func (service *Service) SubmitReview(context context.Context, contentID int64, userID string, input SubmitReviewInput) (*SubmitResult, error) {

	input.Comment = strings.TrimSpace(input.Comment)

	// Validate: an identified caller, plus a vote, a comment, or both
	v := &validate.Validator{}
	v.Required("user_id", userID).
		Range("rating", input.Rating, 0, 10).
		MaxLen("comment", input.Comment, 2000).
		Custom("rating", input.Rating == 0 && input.Comment == "", "Provide a rating or a comment")
	if err := v.Err(); err != nil {
		return nil, err
	}

	// The target must exist before any write
	if _, err := service.contents.FindByID(context, contentID); err != nil {
		return nil, err
	}

	review := &Review{
		ContentID: contentID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	updated := false
	var snapshot *Review

	err := service.repository.Create(context, review)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || appError.Code != "CONFLICT" {
			return nil, err
		}

		// The user already reviewed this item: amend the existing review
		review, snapshot, err = service.amendExisting(context, contentID, userID, input)
		if err != nil {
			return nil, err
		}
		updated = true
	}

	score, err := service.recomputer.RecomputePublicScore(context, contentID)
	if err != nil {
		service.compensateSubmit(context, review, snapshot)
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(context, "review_submitted",
		slog.Int64("content_id", contentID),
		slog.String("user_id", userID),
		slog.Int64("review_id", review.ID),
		slog.Bool("updated", updated),
		slog.Float64("public_score", score),
	)

	return &SubmitResult{Review: review, PublicScore: score, Updated: updated}, nil
}

// amendExisting applies a partial update to the caller's existing review and
// returns a pre-mutation snapshot for compensation.
func (service *Service) amendExisting(context context.Context, contentID int64, userID string, input SubmitReviewInput) (*Review, *Review, error) {
	existing, err := service.repository.FindByContentAndUser(context, contentID, userID)
	if err != nil {
		return nil, nil, err
	}

	snapshot := *existing

	// Omitted fields keep their previous values
	if input.Rating > 0 {
		existing.Rating = input.Rating
	}
	if input.Comment != "" {
		existing.Comment = input.Comment
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, nil, err
	}

	return existing, &snapshot, nil
}

// compensateSubmit rolls a submission back after a failed recomputation:
// a fresh review is deleted, an amended one reverts to its snapshot.
// Best effort: a failed rollback is logged, not surfaced, since the caller
// already receives the recomputation error.
func (service *Service) compensateSubmit(context context.Context, review *Review, snapshot *Review) {
	var err error
	if snapshot != nil {
		err = service.repository.Update(context, snapshot)
	} else {
		err = service.repository.Delete(context, review.ID)
	}

	if err != nil {
		service.logger.ErrorContext(context, "review_compensation_failed",
			slog.Int64("review_id", review.ID),
			slog.Int64("content_id", review.ContentID),
			slog.String("error", err.Error()),
		)
	}
}

/*
GetReview returns a single review by ID.

Parameters:
  - context: context.Context
  - reviewID: int64

Returns:
  - *Review: The hydrated review
  - error: apperr.NotFound if missing
*/
func (service *Service) GetReview(context context.Context, reviewID int64) (*Review, error) {
	return service.repository.FindByID(context, reviewID)
}

/*
ListReviews returns a paginated page of a content item's reviews, newest
first.

Parameters:
  - context: context.Context
  - contentID: int64
  - limit: int
  - offset: int

Returns:
  - []*Review: Page of reviews
  - int: Total review count
  - error: apperr.NotFound for unknown content
*/
func (service *Service) ListReviews(context context.Context, contentID int64, limit, offset int) ([]*Review, int, error) {
	if _, err := service.contents.FindByID(context, contentID); err != nil {
		return nil, 0, err
	}
	return service.repository.ListByContent(context, contentID, limit, offset)
}

/*
DeleteReview removes a review and recomputes the public score.

Description: Only the review's author or an administrator may delete it.
Deleting the last rated review returns the public score to the editorial
base score. If the recomputation fails, the review is restored from its
pre-deletion snapshot and an internal error surfaces.

Parameters:
  - context: context.Context
  - reviewID: int64
  - actorID: string (The authenticated caller's subject)
  - isAdmin: bool

Returns:
  - *DeleteResult: The public score after recomputation
  - error: apperr.NotFound if missing, apperr.Forbidden for other users'
    reviews, apperr.Internal if recomputation failed and was compensated
*/
func (service *Service) DeleteReview(context context.Context, reviewID int64, actorID string, isAdmin bool) (*DeleteResult, error) {

	review, err := service.repository.FindByID(context, reviewID)
	if err != nil {
		return nil, err
	}

	// Owner-or-admin authorization
	if review.UserID != actorID && !isAdmin {
		return nil, apperr.Forbidden("You can only delete your own reviews")
	}

	snapshot := *review

	if err := service.repository.Delete(context, reviewID); err != nil {
		return nil, err
	}

	score, err := service.recomputer.RecomputePublicScore(context, review.ContentID)
	if err != nil {
		// Put the review back so score and reviews stay consistent
		if restoreErr := service.repository.Restore(context, &snapshot); restoreErr != nil {
			service.logger.ErrorContext(context, "review_restore_failed",
				slog.Int64("review_id", reviewID),
				slog.String("error", restoreErr.Error()),
			)
		}
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(context, "review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("content_id", review.ContentID),
		slog.String("actor_id", actorID),
		slog.Float64("public_score", score),
	)

	return &DeleteResult{PublicScore: score}, nil
}
