// Copyright (c) 2026 BoiBritto. All rights reserved.

package reading

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
	"github.com/boibritto/boibritto-api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the reading tracker.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reading tracker [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /reading.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.Get)
	router.Patch("/{id}", handler.Update)
	router.Delete("/{id}", handler.Delete)

	return router
}

// # Reading Tracker Endpoints

/*
GET /api/v1/reading.

Description: Paginated reading list scoped by `owner`, narrowed by
`status`.

Response:
  - 200: []Entry with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Scope:  content.ResolveScope(query.Get("owner"), requestutil.UserID(request)),
		Status: Status(query.Get("status")),
	}

	params := pagination.FromRequest(request)

	entries, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if entries == nil {
		entries = []*Entry{}
	}
	respond.Paginated(writer, "Reading entries fetched", entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/reading.

Response:
  - 201: Entry: The created entry
  - 409: Conflict: The volume is already tracked
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeData(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Reading entry created", created)
}

/*
GET /api/v1/reading/{id}.

Response:
  - 200: Entry
  - 403: Forbidden: Private entry, requester is not the owner
  - 404: NotFound: Unknown entry
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Reading entry fetched", entry)
}

/*
PATCH /api/v1/reading/{id}.

Response:
  - 200: Entry: The updated entry
  - 403: Forbidden: Requester is not the owner
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeData(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(),
		requestutil.ID(request, "id"), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Reading entry updated", updated)
}

/*
DELETE /api/v1/reading/{id}.

Response:
  - 204: Deleted
  - 403: Forbidden: Requester is not the owner
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"), accountID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
