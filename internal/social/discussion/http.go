// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

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

// Handler implements the HTTP layer for discussions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new discussion [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /discussions.
//
// Comment routes nested under /discussions/{id}/comments are registered
// separately by the comment handler.
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

// # Discussion Endpoints

/*
GET /api/v1/discussions.

Description: Paginated discussion list. `author` scopes ownership; `genre`
and `search` narrow the result.

Response:
  - 200: []Discussion with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Scope:  content.ResolveScope(query.Get("author"), requestutil.UserID(request)),
		Genre:  query.Get("genre"),
		Search: query.Get("search"),
	}

	params := pagination.FromRequest(request)

	discussions, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if discussions == nil {
		discussions = []*Discussion{}
	}
	respond.Paginated(writer, "Discussions fetched", discussions, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/discussions.

Response:
  - 201: Discussion: The created discussion
  - 400: Validation: Invalid discussion data
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

	respond.Created(writer, "Discussion created", created)
}

/*
GET /api/v1/discussions/{id}.

Response:
  - 200: Discussion
  - 403: Forbidden: Non-public discussion, requester is not the author
  - 404: NotFound: Unknown discussion
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	discussion, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Discussion fetched", discussion)
}

/*
PATCH /api/v1/discussions/{id}.

Response:
  - 200: Discussion: The updated discussion
  - 400: Validation: Invalid data
  - 403: Forbidden: Requester is not the author
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

	respond.OK(writer, "Discussion updated", updated)
}

/*
DELETE /api/v1/discussions/{id}.

Description: Removes the discussion and all of its comments atomically.

Response:
  - 200: {comments_deleted}: Cascade summary
  - 403: Forbidden: Requester is not the author
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Discussion deleted", map[string]int{"comments_deleted": deleted})
}
