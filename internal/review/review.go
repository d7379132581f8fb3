// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

/*
Package review implements community reviews: a rating, a comment, or both,
attached to a catalogue entry by an authenticated user.

Each user holds at most one review per content item — a second submission
updates the first. Every review mutation triggers a public score
recomputation through the scoring engine, and a recomputation failure rolls
the mutation back so the stored score never drifts from the stored reviews.
*/
package review

import "time"

// Review is one user's opinion on a content item.
//
// A Rating of 0 marks a comment-only review: it is visible but carries no
// voting weight in the public score blend.
//
// UserID is the subject string from the identity service's token, stored as
// given. It is opaque to this service.
type Review struct {
	ID        int64     `json:"id"`
	ContentID int64     `json:"content_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rated reports whether the review carries a vote.
func (r *Review) Rated() bool { return r.Rating > 0 }

// SubmitResult is the outcome of a review submission.
type SubmitResult struct {
	// Review is the persisted review after the submission.
	Review *Review `json:"review"`
	// PublicScore is the content's blended score after recomputation.
	PublicScore float64 `json:"public_score"`
	// Updated is true when an existing review was amended instead of created.
	Updated bool `json:"updated"`
}

// DeleteResult is the outcome of a review deletion.
type DeleteResult struct {
	// PublicScore is the content's blended score after recomputation.
	PublicScore float64 `json:"public_score"`
}
