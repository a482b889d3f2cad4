// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

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

// Handler implements the HTTP layer for blogs.
type Handler struct {
	service *Service
}

// NewHandler constructs a new blog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /blogs.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.Get)
	router.Patch("/{id}", handler.Update)
	router.Delete("/{id}", handler.Delete)
	router.Post("/{id}/like", handler.ToggleLike)

	return router
}

// # Blog Endpoints

/*
GET /api/v1/blogs.

Description: Paginated blog list scoped by `author`, narrowed by `genre`
and `search`.

Response:
  - 200: []Blog with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Scope:  content.ResolveScope(query.Get("author"), requestutil.UserID(request)),
		Genre:  query.Get("genre"),
		Search: query.Get("search"),
	}

	params := pagination.FromRequest(request)

	blogs, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if blogs == nil {
		blogs = []*Blog{}
	}
	respond.Paginated(writer, "Blogs fetched", blogs, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/blogs.

Response:
  - 201: Blog: The created blog
  - 400: Validation: Invalid blog data
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

	respond.Created(writer, "Blog created", created)
}

/*
GET /api/v1/blogs/{id}.

Response:
  - 200: Blog
  - 403: Forbidden: Private blog, requester is not the author
  - 404: NotFound: Unknown blog
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	blog, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog fetched", blog)
}

/*
PATCH /api/v1/blogs/{id}.

Response:
  - 200: Blog: The updated blog
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

	respond.OK(writer, "Blog updated", updated)
}

/*
DELETE /api/v1/blogs/{id}.

Response:
  - 204: Deleted
  - 403: Forbidden: Requester is not the author
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

/*
POST /api/v1/blogs/{id}/like.

Response:
  - 200: content.LikeResult: New liked state and like count
  - 403: Forbidden: Private blog or requester is the author
*/
func (handler *Handler) ToggleLike(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleLike(request.Context(), requestutil.ID(request, "id"), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Like toggled", result)
}
