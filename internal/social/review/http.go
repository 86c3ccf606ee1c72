// Copyright (c) 2026 RateUp. All rights reserved.

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/middleware"
	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/internal/platform/validate"
	"github.com/nifoox/rateup/internal/social/comment"
	"github.com/nifoox/rateup/internal/social/vote"
	"github.com/nifoox/rateup/pkg/pagination"
)

// Handler exposes reviews and mounts their vote and comment sub-resources.
type Handler struct {
	service  *Service
	votes    *vote.Handler
	comments *comment.Handler
}

// NewHandler constructs a review [Handler].
func NewHandler(service *Service, votes *vote.Handler, comments *comment.Handler) *Handler {
	return &Handler{service: service, votes: votes, comments: comments}
}

/*
RegisterRoutes mounts the review endpoints.

# Endpoints
  - GET    /                       : List reviews (gameId, userId, search, sort)
  - POST   /                       : Write a review
  - GET    /{reviewID}             : Review detail
  - GET    /{reviewID}/full        : Detail with votes and first comment page
  - PATCH  /{reviewID}             : Edit (author or admin)
  - DELETE /{reviewID}             : Delete (author or admin)
  - *      /{reviewID}/votes/...   : Vote ledger
  - *      /{reviewID}/comments/...: Comments
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.With(middleware.RequireAuth).Post("/", handler.create)

	router.Route("/{reviewID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Get("/full", handler.full)

		r.With(middleware.RequireAuth).Patch("/", handler.update)
		r.With(middleware.RequireAuth).Delete("/", handler.delete)

		r.Route("/votes", handler.votes.RegisterRoutes)
		r.Route("/comments", handler.comments.RegisterRoutes)
	})
}

// # Request Payloads

type createRequest struct {
	GameID  int64  `json:"gameId"`
	Content string `json:"content"`
	Score   int    `json:"score"`
}

type updateRequest struct {
	Content *string `json:"content"`
	Score   *int    `json:"score"`
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), filter, params.Limit(), params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) full(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Full(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), requestutil.Subject(request), CreateInput{
		GameID:  input.GameID,
		Content: input.Content,
		Score:   input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), requestutil.Subject(request), id, Patch{
		Content: input.Content,
		Score:   input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Subject(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func parseFilter(request *http.Request) (Filter, error) {
	gameID, err := requestutil.QueryID(request, "gameId")
	if err != nil {
		return Filter{}, err
	}
	userID, err := requestutil.QueryID(request, "userId")
	if err != nil {
		return Filter{}, err
	}

	sort := requestutil.Query(request, FieldSort)
	if sort != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldSort, sort, string(SortNew), string(SortTop))
		if err := validator.Err(); err != nil {
			return Filter{}, err
		}
	}

	return Filter{
		GameID: gameID,
		UserID: userID,
		Search: requestutil.Query(request, "search"),
		Sort:   Sort(sort),
	}, nil
}
