// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rateflix/rateflix/internal/platform/middleware"
	requestutil "github.com/rateflix/rateflix/internal/platform/request"
	"github.com/rateflix/rateflix/internal/platform/respond"
	"github.com/rateflix/rateflix/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue discovery and management.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Browsing, score lookups, and hierarchy reads.
//   - Management (Restricted): Ingestion and score repair require admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	// The {id} segment accepts a numeric ID or a slug for single lookups;
	// chi requires one parameter name per path level, so sub-resource
	// routes reuse it as a strictly numeric ID.
	router.Get("/", handler.listContents)
	router.Get("/{id}", handler.getContent)
	router.Get("/{id}/score", handler.getPublicScore)
	router.Get("/{id}/seasons", handler.listSeasons)
	router.Get("/{id}/seasons/{seasonID}/episodes", handler.listEpisodes)

	// ## Catalogue Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Post("/", handler.createContent)
		admin.Post("/{id}/seasons", handler.addSeason)
		admin.Post("/{id}/seasons/{seasonID}/episodes", handler.addEpisode)
		admin.Post("/{id}/recompute", handler.recomputeSeries)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/contents.

Description: Retrieves a paginated catalogue page. Supports filtering by
content type and case-insensitive title search.

Request:
  - type: string (movie, series)
  - q: string (Title search)
  - limit: int
  - page: int

Response:
  - 200: []Content: Paginated catalogue entries
*/
func (handler *Handler) listContents(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	queryParams := request.URL.Query()
	filter := Filter{
		Type:   ContentType(queryParams.Get("type")),
		Search: queryParams.Get("q"),
	}

	contents, total, err := handler.service.ListContents(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, contents, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/contents/{id}.

Description: Retrieves a single catalogue entry by numeric ID or slug.

Response:
  - 200: Content
  - 404: Content not found
*/
func (handler *Handler) getContent(writer http.ResponseWriter, request *http.Request) {
	reference := requestutil.Param(request, "id")

	content, err := handler.service.GetContent(request.Context(), reference)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, content)
}

/*
GET /api/v1/contents/{id}/score.

Description: Retrieves the blended public score of a content item,
cache-first.

Response:
  - 200: {content_id, public_score}
  - 404: Content not found
*/
func (handler *Handler) getPublicScore(writer http.ResponseWriter, request *http.Request) {
	contentID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	score, err := handler.service.GetPublicScore(request.Context(), contentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"content_id":   contentID,
		"public_score": score,
	})
}

/*
GET /api/v1/contents/{id}/seasons.

Description: Retrieves all seasons of a series, ordered by season number.

Response:
  - 200: []Season
  - 404: Series not found
  - 422: Content is not a series
*/
func (handler *Handler) listSeasons(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	seasons, err := handler.service.ListSeasons(request.Context(), seriesID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, seasons)
}

/*
GET /api/v1/contents/{id}/seasons/{seasonID}/episodes.

Description: Retrieves all episodes of a season, ordered by episode number.

Response:
  - 200: []Episode
  - 404: Series or season not found
*/
func (handler *Handler) listEpisodes(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	seasonID, err := requestutil.Int64Param(request, "seasonID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	episodes, err := handler.service.ListEpisodes(request.Context(), seriesID, seasonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, episodes)
}

// # Management Endpoints

/*
POST /api/v1/contents.

Description: Creates a new movie or series. The slug is derived from the
title and the public score starts at the editorial base score.

Request:
  - body: CreateContentInput

Response:
  - 201: Content: The persisted entry
  - 400: Validation failure
  - 409: Duplicate slug
*/
func (handler *Handler) createContent(writer http.ResponseWriter, request *http.Request) {
	var input CreateContentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := handler.service.CreateContent(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, content)
}

/*
POST /api/v1/contents/{id}/seasons.

Description: Adds a season to a series and rolls the series' editorial
scores up from the changed hierarchy.

Request:
  - body: CreateSeasonInput

Response:
  - 201: Season
  - 404: Series not found
  - 409: Duplicate season number
  - 422: Content is not a series
*/
func (handler *Handler) addSeason(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateSeasonInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	season, err := handler.service.AddSeason(request.Context(), seriesID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, season)
}

/*
POST /api/v1/contents/{id}/seasons/{seasonID}/episodes.

Description: Adds an episode to a season and rolls the series' editorial
scores up from the changed hierarchy.

Request:
  - body: CreateEpisodeInput

Response:
  - 201: Episode
  - 404: Series or season not found
  - 409: Duplicate episode number
*/
func (handler *Handler) addEpisode(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	seasonID, err := requestutil.Int64Param(request, "seasonID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateEpisodeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.AddEpisode(request.Context(), seriesID, seasonID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, episode)
}

/*
POST /api/v1/contents/{id}/recompute.

Description: Triggers a full editorial rollup of a series on demand, for
repairing scores after out-of-band data edits.

Response:
  - 204: Rollup completed
  - 404: Series not found
  - 422: Content is not a series
*/
func (handler *Handler) recomputeSeries(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RecomputeSeries(request.Context(), seriesID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
