// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

// Package schema defines the physical table and column names used by the
// PostgreSQL repositories.
//
// Centralizing names here keeps SQL string building typo-safe and makes
// renames a one-file change.
package schema

// CatalogContentTable represents the 'catalog.content' table.
//
// Movies and series share one table, discriminated by the contenttype column
// (single-table layout for the Content sum type).
type CatalogContentTable struct {
	Table        string
	ID           string
	ContentType  string
	Title        string
	Slug         string
	Description  string
	ReleaseYear  string
	ImageURL     string
	TrailerURL   string
	BaseScore    string
	PublicScore  string
	MetaScore    string
	Duration     string
	DirectorID   string
	TotalSeasons string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// CatalogContent is the schema definition for catalog.content.
var CatalogContent = CatalogContentTable{
	Table:        "catalog.content",
	ID:           "id",
	ContentType:  "contenttype",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	ReleaseYear:  "releaseyear",
	ImageURL:     "imageurl",
	TrailerURL:   "trailerurl",
	BaseScore:    "basescore",
	PublicScore:  "publicscore",
	MetaScore:    "metascore",
	Duration:     "duration",
	DirectorID:   "directorid",
	TotalSeasons: "totalseasons",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}
