// Copyright (c) 2026 BoiBritto. All rights reserved.

package book

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
	"github.com/boibritto/boibritto-api/pkg/pagination"
	queryparam "github.com/boibritto/boibritto-api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for user-authored books.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /books.
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

// # Book Endpoints

/*
GET /api/v1/books.

Description: Paginated book list. `author` scopes ownership ("" public,
"me" own, user id public-of-user); `search` matches titles; `genre`
filters by tag (comma-separated, any match); `completed` filters by
completion state.

Response:
  - 200: []Book with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Scope:  content.ResolveScope(query.Get("author"), requestutil.UserID(request)),
		Search: query.Get("search"),
		Genres: queryparam.StringSlice(query.Get("genre")),
	}
	if raw := query.Get("completed"); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			filter.Completed = &completed
		}
	}

	params := pagination.FromRequest(request)

	books, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if books == nil {
		books = []*Book{}
	}
	respond.Paginated(writer, "Books fetched", books, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/books.

Response:
  - 201: Book: The created book
  - 400: Validation: Invalid book data
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

	respond.Created(writer, "Book created", created)
}

/*
GET /api/v1/books/{id}.

Description: Book detail with embedded chapter summaries. The author sees
all chapters; other members see only public chapters.

Response:
  - 200: Detail
  - 403: Forbidden: Private book, requester is not the author
  - 404: NotFound: Unknown book
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book fetched", detail)
}

/*
PATCH /api/v1/books/{id}.

Response:
  - 200: Book: The updated book
  - 400: Validation: Invalid data or blocked cascade transition
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

	updated, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book updated", updated)
}

/*
DELETE /api/v1/books/{id}.

Description: Removes the book and all of its chapters atomically.

Response:
  - 200: {chapters_deleted}: Cascade summary
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

	respond.OK(writer, "Book deleted", map[string]int{"chapters_deleted": deleted})
}

/*
POST /api/v1/books/{id}/like.

Response:
  - 200: content.LikeResult: New liked state and like count
  - 403: Forbidden: Private book or requester is the author
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
