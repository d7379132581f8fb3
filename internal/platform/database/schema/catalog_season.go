// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package schema

// CatalogSeasonTable represents the 'catalog.season' table.
type CatalogSeasonTable struct {
	Table        string
	ID           string
	SeriesID     string
	SeasonNumber string
	Description  string
	ReleaseYear  string
	IMDBScore    string
	MetaScore    string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogSeason is the schema definition for catalog.season.
var CatalogSeason = CatalogSeasonTable{
	Table:        "catalog.season",
	ID:           "id",
	SeriesID:     "seriesid",
	SeasonNumber: "seasonnumber",
	Description:  "description",
	ReleaseYear:  "releaseyear",
	IMDBScore:    "imdbscore",
	MetaScore:    "metascore",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
