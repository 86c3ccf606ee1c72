// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/authz"
	"github.com/nifoox/rateup/internal/platform/middleware"
	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/internal/platform/validate"
)

// ReviewLookup reports whether a review exists.
type ReviewLookup interface {
	Exists(ctx context.Context, reviewID int64) (bool, error)
}

// Handler exposes the vote ledger under /reviews/{reviewID}/votes.
type Handler struct {
	ledger  *Ledger
	reviews ReviewLookup
}

// NewHandler constructs a new [Handler].
func NewHandler(ledger *Ledger, reviews ReviewLookup) *Handler {
	return &Handler{ledger: ledger, reviews: reviews}
}

// RegisterRoutes mounts the vote endpoints on a router scoped to one review.
//
// # Endpoints
//   - GET    / : Tally, plus the caller's vote when authenticated.
//   - PUT    / : Cast or change the caller's vote.
//   - DELETE / : Retract the caller's vote.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.summary)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/", handler.cast)
		r.Delete("/", handler.retract)
	})
}

// # Request Payloads

type castRequest struct {
	Value *int `json:"value"`
}

// tallyResponse flattens the summary next to the review id and caller vote.
type tallyResponse struct {
	ReviewID int64 `json:"reviewId"`
	Summary
	UserVote *Value `json:"userVote,omitempty"`
}

/*
summary handles GET /api/v1/reviews/{reviewID}/votes.

Response:
  - 200: tallyResponse
  - 404: Review not found
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := handler.existingReview(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.ledger.Summarize(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := tallyResponse{ReviewID: reviewID, Summary: summary}

	if subject := requestutil.Subject(request); subject != nil {
		value, err := handler.ledger.UserVote(request.Context(), reviewID, subject.ID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		response.UserVote = &value
	}

	respond.OK(writer, response)
}

/*
cast handles PUT /api/v1/reviews/{reviewID}/votes.

Request:
  - Body: {"value": 1 | -1}

Response:
  - 200: tallyResponse with the caller's new vote
  - 400: Value missing or outside {-1, 1}
  - 401: Anonymous caller
  - 404: Review not found
*/
func (handler *Handler) cast(writer http.ResponseWriter, request *http.Request) {
	subject := requestutil.Subject(request)
	if err := authz.Check(subject, authz.Authenticated(authz.KindVoteCast)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input castRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("value", input.Value == nil || (*input.Value != 1 && *input.Value != -1), "Must be 1 or -1")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	value, err := ParseValue(*input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.ledger.Cast(request.Context(), reviewID, subject.ID, value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tallyResponse{ReviewID: reviewID, Summary: summary, UserVote: &value})
}

/*
retract handles DELETE /api/v1/reviews/{reviewID}/votes.

Response:
  - 200: tallyResponse with userVote 0
  - 401: Anonymous caller
  - 404: Review not found
*/
func (handler *Handler) retract(writer http.ResponseWriter, request *http.Request) {
	subject := requestutil.Subject(request)
	if err := authz.Check(subject, authz.Authenticated(authz.KindVoteRetract)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviewID, err := handler.existingReview(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.ledger.Retract(request.Context(), reviewID, subject.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	none := None
	respond.OK(writer, tallyResponse{ReviewID: reviewID, Summary: summary, UserVote: &none})
}

// existingReview parses the review id from the path and checks it exists.
func (handler *Handler) existingReview(request *http.Request) (int64, error) {
	reviewID, err := requestutil.ID(request, "reviewID")
	if err != nil {
		return 0, err
	}

	exists, err := handler.reviews.Exists(request.Context(), reviewID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperr.NotFound("Review")
	}

	return reviewID, nil
}
