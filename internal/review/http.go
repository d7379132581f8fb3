// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rateflix/rateflix/internal/platform/apperr"
	"github.com/rateflix/rateflix/internal/platform/constants"
	"github.com/rateflix/rateflix/internal/platform/middleware"
	requestutil "github.com/rateflix/rateflix/internal/platform/request"
	"github.com/rateflix/rateflix/internal/platform/respond"
	"github.com/rateflix/rateflix/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for review submission and moderation.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ContentRoutes returns the routes nested under /contents/{id}/reviews.
//
// Reading reviews is public; submitting requires authentication.
func (handler *Handler) ContentRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.With(middleware.RequireAuth).Post("/", handler.submitReview)

	return router
}

// Routes returns the top-level /reviews routes.
//
// Deletion is authenticated; the service enforces owner-or-admin on top.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getReview)
	router.With(middleware.RequireAuth).Delete("/{id}", handler.deleteReview)

	return router
}

// # Review Endpoints

/*
POST /api/v1/contents/{id}/reviews.

Description: Submits the caller's review of a content item. A repeat
submission amends the existing review; omitted fields keep their previous
values. The response carries the freshly recomputed public score.

Request:
  - body: SubmitReviewInput

Response:
  - 200: SubmitResult (amendment)
  - 201: SubmitResult (first submission)
  - 400: Validation failure
  - 401: Authentication required
  - 404: Content not found
*/
func (handler *Handler) submitReview(writer http.ResponseWriter, request *http.Request) {
	contentID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := authenticatedUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SubmitReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SubmitReview(request.Context(), contentID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Updated {
		respond.OK(writer, result)
		return
	}
	respond.Created(writer, result)
}

/*
GET /api/v1/contents/{id}/reviews.

Description: Retrieves a paginated page of a content item's reviews, newest
first.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Review: Paginated reviews
  - 404: Content not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	contentID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), contentID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/reviews/{id}.

Description: Retrieves a single review by ID.

Response:
  - 200: Review
  - 404: Review not found
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/reviews/{id}.

Description: Deletes a review. Allowed for the review's author and for
administrators. The response carries the recomputed public score — deleting
the last rated review resets it to the editorial base score.

Response:
  - 200: DeleteResult
  - 401: Authentication required
  - 403: Not the author and not an administrator
  - 404: Review not found
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := authenticatedUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := requestutil.Claims(request)
	isAdmin := claims != nil && claims.Role == constants.RoleAdmin

	result, err := handler.service.DeleteReview(request.Context(), reviewID, userID, isAdmin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// authenticatedUserID extracts the caller's user ID from the token claims.
// The subject is an opaque string minted by the identity service and is
// trusted as given.
func authenticatedUserID(request *http.Request) (string, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return "", err
	}

	if claims.UserID == "" {
		return "", apperr.Unauthorized("Invalid token subject")
	}

	return claims.UserID, nil
}
