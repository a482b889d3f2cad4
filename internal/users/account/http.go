// Copyright (c) 2026 BoiBritto. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for account and profile management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AuthRoutes returns the router mounted under /auth.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Post("/sync", handler.Sync)
	return router
}

// Routes returns the router mounted under /users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.Me)
	router.Patch("/me", handler.UpdateMe)
	router.Get("/me/overview", handler.Overview)
	router.Get("/{username}", handler.PublicProfile)

	return router
}

// # Account Bootstrapping

/*
POST /api/v1/auth/sync.

Description: Upserts the requester's account from their verified token
claims. Returning members get their existing account; first sign-ins get a
fresh row. The body is optional and may seed username/display name/genres.

Response:
  - 200: User: Existing account
  - 201: User: Newly created account
  - 400: Validation: Invalid seed data
  - 409: Conflict: Username or email already taken
*/
func (handler *Handler) Sync(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The seed body is optional; an empty body is a plain sign-in.
	var input SyncInput
	if request.ContentLength > 0 {
		if err := requestutil.DecodeData(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	user, created, err := handler.service.Sync(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, "Account created", user)
		return
	}
	respond.OK(writer, "Account synced", user)
}

// # Profile Endpoints

/*
GET /api/v1/users/me.

Response:
  - 200: User: The requester's full account
  - 401: Unauthorized: Missing/invalid token or unregistered subject
*/
func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile fetched", user)
}

/*
PATCH /api/v1/users/me.

Description: Partial update of the mutable profile fields. Identity fields
(uid, email) are rejected implicitly by not being part of the input schema.

Response:
  - 200: User: The updated account
  - 400: Validation: Invalid profile data
  - 409: Conflict: Username already taken
*/
func (handler *Handler) UpdateMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeData(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile updated", user)
}

/*
GET /api/v1/users/me/overview.

Description: Aggregate profile view: account plus the requester's most
recent collections, reading entries, and blogs.

Response:
  - 200: Overview
*/
func (handler *Handler) Overview(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	overview, err := handler.service.Overview(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Overview fetched", overview)
}

/*
GET /api/v1/users/{username}.

Response:
  - 200: PublicProfile: Member-visible fields only
  - 404: NotFound: Unknown username
*/
func (handler *Handler) PublicProfile(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	profile, err := handler.service.PublicByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile fetched", profile)
}
