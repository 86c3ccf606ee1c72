// Copyright (c) 2026 RateUp. All rights reserved.

package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/middleware"
	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGames)
	router.Get("/{id}", handler.getGame)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createGame)
		adminRoute.Patch("/{id}", handler.updateGame)
		adminRoute.Delete("/{id}", handler.deleteGame)
	})
}

type createGameRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
}

func (handler *Handler) listGames(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: requestutil.Query(request, "search"),
		Genre:  requestutil.Query(request, "genre"),
	}

	games, total, err := handler.service.ListGames(request.Context(), filter, paginationParams.Limit(), paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, games, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetGame(request.Context(), gameID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) createGame(writer http.ResponseWriter, request *http.Request) {
	var input createGameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game := &Game{Name: input.Name, Description: input.Description, Genre: input.Genre}
	if err := handler.service.CreateGame(request.Context(), game); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, game)
}

func (handler *Handler) updateGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.UpdateGame(request.Context(), gameID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) deleteGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGame(request.Context(), gameID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
