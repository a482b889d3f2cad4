// Copyright (c) 2026 BoiBritto. All rights reserved.

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the chapter endpoints onto the API router.
//
// Chapters span two URL families: book-nested routes for listing and
// creation, and flat routes for operations addressed by chapter id.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/books/{bookID}/chapters", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/", handler.ListForBook)
		router.Post("/", handler.Create)
	})

	api.Route("/chapters", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/{id}", handler.Get)
		router.Patch("/{id}", handler.Update)
		router.Delete("/{id}", handler.Delete)
		router.Post("/{id}/like", handler.ToggleLike)
	})
}

// # Chapter Endpoints

/*
GET /api/v1/books/{bookID}/chapters.

Description: Content-free chapter summaries ordered by chapter number.
Authors see all chapters of their book; other members see public ones.

Response:
  - 200: []content.ChapterSummary
  - 403: Forbidden: Private book, requester is not the author
  - 404: NotFound: Unknown book
*/
func (handler *Handler) ListForBook(writer http.ResponseWriter, request *http.Request) {
	summaries, err := handler.service.ListForBook(request.Context(),
		requestutil.ID(request, "bookID"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Chapters fetched", summaries)
}

/*
POST /api/v1/books/{bookID}/chapters.

Response:
  - 201: Chapter: The created chapter
  - 400: Validation: Invalid data or blocked cascade transition
  - 403: Forbidden: Requester is not the book's author
  - 409: Conflict: Chapter number already taken
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

	created, err := handler.service.Create(request.Context(),
		requestutil.ID(request, "bookID"), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Chapter created", created)
}

/*
GET /api/v1/chapters/{id}.

Description: Full chapter including its content.

Response:
  - 200: Chapter
  - 403: Forbidden: Private chapter, requester is not the author
  - 404: NotFound: Unknown chapter
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Chapter fetched", chapter)
}

/*
PATCH /api/v1/chapters/{id}.

Response:
  - 200: Chapter: The updated chapter
  - 400: Validation: Invalid data or blocked cascade transition
  - 403: Forbidden: Requester is not the author
  - 409: Conflict: Chapter number already taken
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

	respond.OK(writer, "Chapter updated", updated)
}

/*
DELETE /api/v1/chapters/{id}.

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
POST /api/v1/chapters/{id}/like.

Response:
  - 200: content.LikeResult: New liked state and like count
  - 403: Forbidden: Private chapter or requester is the author
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
