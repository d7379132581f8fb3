// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package schema

// SocialReviewTable represents the 'social.review' table.
//
// A UNIQUE index on (contentid, userid) backs the one-review-per-user
// constraint.
type SocialReviewTable struct {
	Table     string
	ID        string
	ContentID string
	UserID    string
	Rating    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// SocialReview is the schema definition for social.review.
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	ContentID: "contentid",
	UserID:    "userid",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
