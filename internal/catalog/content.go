// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

/*
Package catalog implements the content catalogue domain: movies, series,
seasons, and episodes.

Movies and series share one Content entity discriminated by [ContentType].
Series own an ordered collection of seasons, and seasons own an ordered
collection of episodes. Editorial scores (IMDb-style base score and critic
meta score) live on every level of the hierarchy; the community-weighted
public score lives only on the content root.
*/
package catalog

import "time"

// ContentType discriminates the two catalogue entry kinds sharing the
// catalog.content table.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// Content is a single catalogue entry — a movie or a series.
//
// # Variant Fields
//
// Duration and DirectorID are populated for movies only; TotalSeasons for
// series only. The unused variant's fields are nil.
type Content struct {
	ID          int64       `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	ReleaseYear int         `json:"release_year"`
	ImageURL    string      `json:"image_url"`
	TrailerURL  string      `json:"trailer_url"`

	// BaseScore is the editorial anchor score (0–10, one decimal).
	BaseScore float64 `json:"base_score"`
	// PublicScore blends BaseScore with community ratings (0–10, one decimal).
	PublicScore float64 `json:"public_score"`
	// MetaScore is the critic-sourced score (0–10, one decimal).
	MetaScore float64 `json:"meta_score"`

	// Movie-only fields.
	Duration   *int   `json:"duration,omitempty"`
	DirectorID *int64 `json:"director_id,omitempty"`

	// Series-only fields.
	TotalSeasons *int `json:"total_seasons,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Season is one season of a series.
type Season struct {
	ID           int64     `json:"id"`
	SeriesID     int64     `json:"series_id"`
	SeasonNumber int       `json:"season_number"`
	Description  string    `json:"description"`
	ReleaseYear  int       `json:"release_year"`
	IMDBScore    float64   `json:"imdb_score"`
	MetaScore    float64   `json:"meta_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Episode is one episode of a season.
type Episode struct {
	ID            int64     `json:"id"`
	SeasonID      int64     `json:"season_id"`
	EpisodeNumber int       `json:"episode_number"`
	Title         string    `json:"title"`
	TrailerURL    string    `json:"trailer_url"`
	Duration      int       `json:"duration"`
	IMDBScore     float64   `json:"imdb_score"`
	MetaScore     float64   `json:"meta_score"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Filter holds the optional criteria for catalogue listing.
type Filter struct {
	// Type restricts results to movies or series when non-empty.
	Type ContentType
	// Search matches against the title (case-insensitive substring).
	Search string
}
