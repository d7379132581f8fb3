// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateflix/rateflix/internal/catalog"
	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/scoring"
)

// Subjects as the identity service mints them: opaque UUID strings.
const (
	userAda  = "0de45547-58cc-4cf5-b68c-8bd3e8914434"
	userBram = "a81bc81b-dede-4e5d-abff-90865d1e13b1"
)

// # In-memory Fakes

// fakeRepository is an in-memory Repository enforcing the one-review-per-user
// rule the way the unique index does.
type fakeRepository struct {
	reviews map[int64]*Review
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: make(map[int64]*Review), nextID: 1}
}

func (r *fakeRepository) FindByID(_ context.Context, id int64) (*Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	copied := *review
	return &copied, nil
}

func (r *fakeRepository) FindByContentAndUser(_ context.Context, contentID int64, userID string) (*Review, error) {
	for _, review := range r.reviews {
		if review.ContentID == contentID && review.UserID == userID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (r *fakeRepository) ListByContent(_ context.Context, contentID int64, limit, offset int) ([]*Review, int, error) {
	var matched []*Review
	for _, review := range r.reviews {
		if review.ContentID == contentID {
			matched = append(matched, review)
		}
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRepository) ListRatingsByContent(_ context.Context, contentID int64) ([]int, error) {
	var ratings []int
	for _, review := range r.reviews {
		if review.ContentID == contentID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (r *fakeRepository) Create(_ context.Context, review *Review) error {
	for _, existing := range r.reviews {
		if existing.ContentID == review.ContentID && existing.UserID == review.UserID {
			return apperr.Conflict("Review already exists")
		}
	}
	review.ID = r.nextID
	r.nextID++
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, review *Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return apperr.NotFound("Review")
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeRepository) Restore(_ context.Context, review *Review) error {
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

// fakeContents serves catalogue entries for target verification.
type fakeContents struct {
	contents map[int64]*catalog.Content
}

func (f *fakeContents) FindByID(_ context.Context, id int64) (*catalog.Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return nil, apperr.NotFound("Content")
	}
	return c, nil
}

// blendRecomputer runs the real weighting formula over the fake stores so
// the tests observe genuine score progressions.
type blendRecomputer struct {
	repo     Repository
	contents map[int64]*catalog.Content
	fail     bool
}

func (r *blendRecomputer) RecomputePublicScore(ctx context.Context, contentID int64) (float64, error) {
	if r.fail {
		return 0, errors.New("scoring unavailable")
	}

	content, ok := r.contents[contentID]
	if !ok {
		return 0, apperr.NotFound("Content")
	}

	ratings, err := r.repo.ListRatingsByContent(ctx, contentID)
	if err != nil {
		return 0, err
	}

	score := scoring.WeightedPublicScore(content.BaseScore, ratings)
	content.PublicScore = score
	return score, nil
}

// testEnv bundles the fakes behind a wired service.
type testEnv struct {
	repo       *fakeRepository
	contents   map[int64]*catalog.Content
	recomputer *blendRecomputer
	service    *Service
}

func newTestEnv() *testEnv {
	repo := newFakeRepository()
	contents := map[int64]*catalog.Content{
		1: {ID: 1, Type: catalog.ContentTypeMovie, Title: "Heat", BaseScore: 6.0, PublicScore: 6.0},
	}
	recomputer := &blendRecomputer{repo: repo, contents: contents}
	service := NewService(repo, &fakeContents{contents: contents}, recomputer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &testEnv{repo: repo, contents: contents, recomputer: recomputer, service: service}
}

// # Tests

/*
TestSubmitReview_Validation verifies the submission rules: the caller must be
identified, ratings stay on the 0–10 scale, and an empty submission (no vote,
no comment) is rejected.
*/
func TestSubmitReview_Validation(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		input  SubmitReviewInput
	}{
		{"rating_too_high", userAda, SubmitReviewInput{Rating: 11}},
		{"rating_negative", userAda, SubmitReviewInput{Rating: -1}},
		{"empty_submission", userAda, SubmitReviewInput{}},
		{"whitespace_comment_only", userAda, SubmitReviewInput{Comment: "   "}},
		{"comment_too_long", userAda, SubmitReviewInput{Comment: strings.Repeat("x", 2001)}},
		{"missing_user_id", "", SubmitReviewInput{Rating: 8}},
	}

	env := newTestEnv()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.SubmitReview(context.Background(), 1, tt.userID, tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestSubmitReview_UnknownContent verifies the NOT_FOUND surface for reviews
aimed at content that does not exist.
*/
func TestSubmitReview_UnknownContent(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.SubmitReview(context.Background(), 99, userAda, SubmitReviewInput{Rating: 8})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestSubmitReview_CreatesAndScores verifies a first submission: the review is
persisted and the public score blends the new vote with the base score.
*/
func TestSubmitReview_CreatesAndScores(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8, Comment: "Tight."})
	require.NoError(t, err)

	assert.False(t, result.Updated)
	assert.NotZero(t, result.Review.ID)
	// (6.0×10 + 8) / 11 = 6.18… → 6.2
	assert.InDelta(t, 6.2, result.PublicScore, 1e-9)
	assert.InDelta(t, 6.2, env.contents[1].PublicScore, 1e-9)
}

/*
TestSubmitReview_AmendsOnSecondSubmission verifies the one-review-per-user
rule: a repeat submission amends the existing review instead of adding a
second one, and the score follows the new vote.
*/
func TestSubmitReview_AmendsOnSecondSubmission(t *testing.T) {
	env := newTestEnv()

	first, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 4})
	require.NoError(t, err)

	second, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 10})
	require.NoError(t, err)

	assert.True(t, second.Updated)
	assert.Equal(t, first.Review.ID, second.Review.ID)
	assert.Len(t, env.repo.reviews, 1)
	// (6.0×10 + 10) / 11 = 6.36… → 6.4
	assert.InDelta(t, 6.4, second.PublicScore, 1e-9)
}

/*
TestSubmitReview_PartialAmendment verifies that amendments only touch
provided fields: a zero rating keeps the existing vote, an empty comment
keeps the existing text.
*/
func TestSubmitReview_PartialAmendment(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8, Comment: "Great."})
	require.NoError(t, err)

	t.Run("comment_only_keeps_rating", func(t *testing.T) {
		result, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Comment: "Even better on rewatch."})
		require.NoError(t, err)

		assert.Equal(t, 8, result.Review.Rating)
		assert.Equal(t, "Even better on rewatch.", result.Review.Comment)
		assert.InDelta(t, 6.2, result.PublicScore, 1e-9)
	})

	t.Run("rating_only_keeps_comment", func(t *testing.T) {
		result, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 9})
		require.NoError(t, err)

		assert.Equal(t, 9, result.Review.Rating)
		assert.Equal(t, "Even better on rewatch.", result.Review.Comment)
	})
}

/*
TestSubmitReview_CompensatesFailedRecompute verifies the rollback paths: a
fresh review is removed and an amended review reverts to its previous state
when the score recomputation fails, surfacing INTERNAL_ERROR.
*/
func TestSubmitReview_CompensatesFailedRecompute(t *testing.T) {
	t.Run("create_rolled_back", func(t *testing.T) {
		env := newTestEnv()
		env.recomputer.fail = true

		_, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8})
		require.Error(t, err)
		assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
		assert.Empty(t, env.repo.reviews)
	})

	t.Run("amend_rolled_back", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8, Comment: "Solid."})
		require.NoError(t, err)

		env.recomputer.fail = true
		_, err = env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 2})
		require.Error(t, err)
		assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)

		stored, findErr := env.repo.FindByContentAndUser(context.Background(), 1, userAda)
		require.NoError(t, findErr)
		assert.Equal(t, 8, stored.Rating)
		assert.Equal(t, "Solid.", stored.Comment)
	})
}

/*
TestDeleteReview_Authorization verifies the owner-or-admin rule: strangers
are rejected, the author and administrators may delete.
*/
func TestDeleteReview_Authorization(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8})
	require.NoError(t, err)
	reviewID := result.Review.ID

	t.Run("stranger_forbidden", func(t *testing.T) {
		_, err := env.service.DeleteReview(context.Background(), reviewID, userBram, false)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("admin_allowed", func(t *testing.T) {
		_, err := env.service.DeleteReview(context.Background(), reviewID, userBram, true)
		require.NoError(t, err)
		assert.Empty(t, env.repo.reviews)
	})

	t.Run("missing_after_delete", func(t *testing.T) {
		_, err := env.service.DeleteReview(context.Background(), reviewID, userAda, false)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestDeleteReview_RestoresOnFailedRecompute verifies the deletion
compensation: the review reappears with its original identity when the
recomputation fails.
*/
func TestDeleteReview_RestoresOnFailedRecompute(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.SubmitReview(context.Background(), 1, userAda, SubmitReviewInput{Rating: 8})
	require.NoError(t, err)

	env.recomputer.fail = true
	_, err = env.service.DeleteReview(context.Background(), result.Review.ID, userAda, false)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)

	restored, findErr := env.repo.FindByID(context.Background(), result.Review.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 8, restored.Rating)
}

/*
TestPublicScoreLifecycle walks a title through a full community episode:
votes arrive, a vote is amended, and finally every review disappears,
returning the score to its editorial anchor.
*/
func TestPublicScoreLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Fresh title rests at its base score.
	assert.InDelta(t, 6.0, env.contents[1].PublicScore, 1e-9)

	// Ada votes 8: (60 + 8) / 11 → 6.2.
	first, err := env.service.SubmitReview(ctx, 1, userAda, SubmitReviewInput{Rating: 8})
	require.NoError(t, err)
	assert.InDelta(t, 6.2, first.PublicScore, 1e-9)

	// Bram votes 10: (60 + 18) / 12 → 6.5.
	second, err := env.service.SubmitReview(ctx, 1, userBram, SubmitReviewInput{Rating: 10})
	require.NoError(t, err)
	assert.InDelta(t, 6.5, second.PublicScore, 1e-9)

	// Bram reconsiders, amends to 9: (60 + 17) / 12 → 6.4.
	amended, err := env.service.SubmitReview(ctx, 1, userBram, SubmitReviewInput{Rating: 9})
	require.NoError(t, err)
	assert.True(t, amended.Updated)
	assert.InDelta(t, 6.4, amended.PublicScore, 1e-9)

	// Both reviews go; the score resets to the base.
	_, err = env.service.DeleteReview(ctx, first.Review.ID, userAda, false)
	require.NoError(t, err)

	last, err := env.service.DeleteReview(ctx, amended.Review.ID, userBram, false)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, last.PublicScore, 1e-9)
	assert.InDelta(t, 6.0, env.contents[1].PublicScore, 1e-9)
}
