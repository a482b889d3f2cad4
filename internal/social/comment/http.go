// Copyright (c) 2026 BoiBritto. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the comment endpoints onto the API router.
//
// Reading and creating comments happens in the context of a discussion;
// updating and deleting address the comment directly.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/discussions/{discussionID}/comments", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/", handler.Tree)
		router.Post("/", handler.Create)
	})

	api.Route("/comments", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Patch("/{id}", handler.Update)
		router.Delete("/{id}", handler.Delete)
	})
}

// # Comment Endpoints

/*
GET /api/v1/discussions/{discussionID}/comments.

Description: The full two-tier comment tree of a discussion, both levels
sorted oldest-first.

Response:
  - 200: []Node
  - 403: Forbidden: Non-public discussion, requester is not the author
  - 404: NotFound: Unknown discussion
*/
func (handler *Handler) Tree(writer http.ResponseWriter, request *http.Request) {
	tree, err := handler.service.Tree(request.Context(),
		requestutil.ID(request, "discussionID"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comments fetched", tree)
}

/*
POST /api/v1/discussions/{discussionID}/comments.

Response:
  - 201: Comment: The created comment
  - 400: Validation: Empty content or reply to a reply
  - 404: NotFound: Unknown discussion or parent comment
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
		requestutil.ID(request, "discussionID"), accountID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Comment created", created)
}

/*
PATCH /api/v1/comments/{id}.

Response:
  - 200: Comment: The updated comment
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

	respond.OK(writer, "Comment updated", updated)
}

/*
DELETE /api/v1/comments/{id}.

Description: A top-level comment takes its replies with it; the response
reports the total removed.

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

	respond.OK(writer, "Comment deleted", map[string]int{"comments_deleted": deleted})
}
