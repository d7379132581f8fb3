// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package schema

// CatalogEpisodeTable represents the 'catalog.episode' table.
type CatalogEpisodeTable struct {
	Table         string
	ID            string
	SeasonID      string
	EpisodeNumber string
	Title         string
	TrailerURL    string
	Duration      string
	IMDBScore     string
	MetaScore     string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogEpisode is the schema definition for catalog.episode.
var CatalogEpisode = CatalogEpisodeTable{
	Table:         "catalog.episode",
	ID:            "id",
	SeasonID:      "seasonid",
	EpisodeNumber: "episodenumber",
	Title:         "title",
	TrailerURL:    "trailerurl",
	Duration:      "duration",
	IMDBScore:     "imdbscore",
	MetaScore:     "metascore",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
