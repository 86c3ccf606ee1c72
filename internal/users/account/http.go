// Copyright (c) 2026 RateUp. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/middleware"
	requestutil "github.com/nifoox/rateup/internal/platform/request"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/platform/validate"
	"github.com/nifoox/rateup/internal/users/auth"
	"github.com/nifoox/rateup/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the /users endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public profile discovery
	router.Get("/{id}/profile", handler.getPublicProfile)

	// Owner or admin; privilege changes are checked by the service
	router.With(middleware.RequireAuth).Patch("/{id}", handler.update)

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{id}", handler.get)
		r.Patch("/{id}/roles", handler.setRoles)
		r.Put("/{id}/roles", handler.setRoles)
		r.Delete("/{id}", handler.deactivate)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type updateRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
}

type rolesRequest struct {
	Roles []string `json:"roles"`
}

// # Administration Endpoints

/*
GET /api/v1/users.

Query:
  - search: matches username or email
  - page, pageSize

Response:
  - 200: Paginated list of profiles
  - 403: Caller is not ADMIN
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	profiles, total, err := handler.accountService.List(request.Context(), ListFilter{
		Search: requestutil.Query(request, "search"),
		Params: params,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profiles, pagination.NewMeta(params, total))
}

/*
POST /api/v1/users.

Request:
  - Body: createRequest (Username, Email, Password, Roles)

Response:
  - 201: Profile
  - 400: Validation failure
  - 409: Username or email already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := auth.ValidateCredentialInput(input.Username, input.Email, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := parseRoles(input.Roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.Create(request.Context(), auth.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}, roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

// GET /api/v1/users/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PATCH /api/v1/users/{id}.

Description: Owner or ADMIN. Only ADMIN may change roles or active.

Response:
  - 200: Profile
  - 400: Validation failure
  - 401: Anonymous caller
  - 403: Not the owner, or a privilege change by a non-admin
  - 404: Unknown account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.MinLen(auth.FieldUsername, *input.Username, auth.MinUsernameLength).
			MaxLen(auth.FieldUsername, *input.Username, auth.MaxUsernameLength).
			Username(auth.FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email)
	}
	if input.Password != nil {
		validator.MinLen(auth.FieldPassword, *input.Password, auth.MinPasswordLength).
			MaxLen(auth.FieldPassword, *input.Password, auth.MaxPasswordLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Active:   input.Active,
	}
	if input.Roles != nil {
		if update.Roles, err = parseRoles(input.Roles); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	profile, err := handler.accountService.Update(request.Context(), requestutil.Subject(request), id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// PATCH (or PUT) /api/v1/users/{id}/roles.
func (handler *Handler) setRoles(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rolesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := parseRoles(input.Roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.SetRoles(request.Context(), requestutil.Subject(request), id, roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// DELETE /api/v1/users/{id} soft-deletes the account.
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Deactivate(request.Context(), requestutil.Subject(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Public Profile

/*
GET /api/v1/users/{id}/profile.

Response:
  - 200: PublicProfile
  - 404: Unknown or deactivated account
*/
func (handler *Handler) getPublicProfile(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.PublicProfile(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// parseRoles rejects an empty or unknown role set as a validation error.
func parseRoles(raw []string) ([]sec.Role, error) {
	roles, ok := sec.ParseRoles(raw)
	if !ok || len(roles) == 0 {
		return nil, validate.RequiredError(auth.FieldRoles, "Must be a non-empty list of USER or ADMIN")
	}
	return roles, nil
}
