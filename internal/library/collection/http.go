// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

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

// Handler implements the HTTP layer for collections.
type Handler struct {
	service *Service
}

// NewHandler constructs a new collection [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /collections.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{id}", handler.Get)
	router.Patch("/{id}", handler.Update)
	router.Delete("/{id}", handler.Delete)
	router.Post("/{id}/items", handler.AddVolume)
	router.Delete("/{id}/items/{volumeID}", handler.RemoveVolume)

	return router
}

// # Collection Endpoints

/*
GET /api/v1/collections.

Description: Paginated collection list scoped by `owner`, narrowed by
`genre`.

Response:
  - 200: []Collection with pagination meta
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Scope: content.ResolveScope(query.Get("owner"), requestutil.UserID(request)),
		Genre: query.Get("genre"),
	}

	params := pagination.FromRequest(request)

	collections, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if collections == nil {
		collections = []*Collection{}
	}
	respond.Paginated(writer, "Collections fetched", collections, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/collections.

Response:
  - 201: Collection: The created collection
  - 400: Validation: Invalid collection data
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

	respond.Created(writer, "Collection created", created)
}

/*
GET /api/v1/collections/{id}.

Response:
  - 200: Collection with volumes
  - 403: Forbidden: Private collection, requester is not the owner
  - 404: NotFound: Unknown collection
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	collection, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Collection fetched", collection)
}

/*
PATCH /api/v1/collections/{id}.

Response:
  - 200: Collection: The updated collection
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

	respond.OK(writer, "Collection updated", updated)
}

/*
DELETE /api/v1/collections/{id}.

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

// # Volume Endpoints

// addVolumeInput is the body of the add-volume request.
type addVolumeInput struct {
	VolumeID string `json:"volume_id"`
}

/*
POST /api/v1/collections/{id}/items.

Response:
  - 200: Collection: The collection after the addition
  - 403: Forbidden: Requester is not the owner
  - 409: Conflict: Volume already in the collection
*/
func (handler *Handler) AddVolume(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addVolumeInput
	if err := requestutil.DecodeData(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.AddVolume(request.Context(),
		requestutil.ID(request, "id"), accountID, input.VolumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Volume added", collection)
}

/*
DELETE /api/v1/collections/{id}/items/{volumeID}.

Response:
  - 200: Collection: The collection after the removal
  - 403: Forbidden: Requester is not the owner
  - 404: NotFound: Volume not in the collection
*/
func (handler *Handler) RemoveVolume(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.RemoveVolume(request.Context(),
		requestutil.ID(request, "id"), accountID, requestutil.Param(request, "volumeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Volume removed", collection)
}
