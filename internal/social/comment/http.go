// Copyright (c) 2026 RateUp. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/middleware"
	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/pkg/pagination"
)

// Handler exposes comments under /reviews/{reviewID}/comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints on a router scoped to one review.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{commentID}", handler.update)
		r.Delete("/{commentID}", handler.delete)
	})
}

type contentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), reviewID, params.Limit(), params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), requestutil.Subject(request), reviewID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), requestutil.Subject(request), reviewID, commentID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Subject(request), reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func pathIDs(request *http.Request) (int64, int64, error) {
	reviewID, err := requestutil.ID(request, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	commentID, err := requestutil.ID(request, "commentID")
	if err != nil {
		return 0, 0, err
	}
	return reviewID, commentID, nil
}
