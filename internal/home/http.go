// Copyright (c) 2026 RateUp. All rights reserved.

package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
)

// Handler exposes the home feeds.
type Handler struct {
	service *Service
}

// NewHandler constructs a home [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /top-games and GET /trending-reviews. Both are public.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/top-games", handler.topGames)
	router.Get("/trending-reviews", handler.trendingReviews)
}

func (handler *Handler) topGames(writer http.ResponseWriter, request *http.Request) {
	games, err := handler.service.TopGames(
		request.Context(),
		requestutil.QueryInt(request, FieldLimit, 0),
		requestutil.QueryInt(request, FieldMinReviews, 0),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, games)
}

func (handler *Handler) trendingReviews(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.TrendingReviews(
		request.Context(),
		requestutil.QueryInt(request, FieldDays, 0),
		requestutil.QueryInt(request, FieldLimit, 0),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}
