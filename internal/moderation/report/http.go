// Copyright (c) 2026 BoiBritto. All rights reserved.

package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	requestutil "github.com/boibritto/boibritto-api/internal/platform/request"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
	"github.com/boibritto/boibritto-api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for moderation reports.
type Handler struct {
	service *Service
}

// NewHandler constructs a new report [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /reports.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.Create)
	router.Get("/mine", handler.ListMine)

	return router
}

// # Report Endpoints

/*
POST /api/v1/reports.

Response:
  - 201: Report: The filed report, status pending
  - 404: NotFound: The reported target does not exist
  - 409: Conflict: The requester already reported this target
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

	respond.Created(writer, "Report submitted", created)
}

/*
GET /api/v1/reports/mine.

Description: Paginated list of the requester's own reports, narrowed by
`status` and `type`.

Response:
  - 200: []Report with pagination meta
*/
func (handler *Handler) ListMine(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	params := pagination.FromRequest(request)

	reports, total, err := handler.service.ListMine(request.Context(), accountID,
		query.Get("status"), query.Get("type"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if reports == nil {
		reports = []*Report{}
	}
	respond.Paginated(writer, "Reports fetched", reports, pagination.NewMeta(params.Page, params.Limit, total))
}
