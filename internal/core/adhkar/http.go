// Copyright (c) 2026 AtharHuda. All rights reserved.

package adhkar

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atharhuda/atharhuda/internal/platform/apperr"
	requestutil "github.com/atharhuda/atharhuda/internal/platform/request"
	"github.com/atharhuda/atharhuda/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes the dhikr counter over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new adhkar [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the counter endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGroups)
	router.Get("/stats", handler.getStats)
	router.Post("/categories/{categoryID}/reset", handler.resetCategory)
	router.Get("/{categoryID}/{dhikrID}", handler.getProgress)
	router.Post("/{categoryID}/{dhikrID}/increment", handler.increment)
	router.Post("/{categoryID}/{dhikrID}/reset", handler.resetDhikr)

	return router
}

/*
GET /api/v1/adhkar.

Description: Returns the full catalog hierarchy. Clients overlay the
per-dhikr progress endpoints on top of it.

Response:
  - 200: []Group
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Groups(request.Context()))
}

/*
GET /api/v1/adhkar/stats.

Response:
  - 200: TodayStats
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Stats(request.Context()))
}

/*
GET /api/v1/adhkar/{categoryID}/{dhikrID}.

Response:
  - 200: Progress
  - 404: Unknown catalog entry
*/
func (handler *Handler) getProgress(writer http.ResponseWriter, request *http.Request) {
	progress, ok := handler.service.DhikrProgress(request.Context(),
		requestutil.Param(request, "categoryID"),
		requestutil.IntParam(request, "dhikrID"),
	)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Dhikr"))
		return
	}
	respond.OK(writer, progress)
}

/*
POST /api/v1/adhkar/{categoryID}/{dhikrID}/increment.

Description: Counts one recitation. Taps past the target are absorbed; the
response always carries the current counter state.

Response:
  - 200: Progress
  - 404: Unknown catalog entry
*/
func (handler *Handler) increment(writer http.ResponseWriter, request *http.Request) {
	progress, ok := handler.service.Increment(request.Context(),
		requestutil.Param(request, "categoryID"),
		requestutil.IntParam(request, "dhikrID"),
	)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Dhikr"))
		return
	}
	respond.OK(writer, progress)
}

/*
POST /api/v1/adhkar/{categoryID}/{dhikrID}/reset.

Response:
  - 200: Progress (Cleared)
  - 404: Unknown catalog entry
*/
func (handler *Handler) resetDhikr(writer http.ResponseWriter, request *http.Request) {
	progress, ok := handler.service.Reset(request.Context(),
		requestutil.Param(request, "categoryID"),
		requestutil.IntParam(request, "dhikrID"),
	)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Dhikr"))
		return
	}
	respond.OK(writer, progress)
}

/*
POST /api/v1/adhkar/categories/{categoryID}/reset.

Response:
  - 204: All counters in the category cleared
  - 404: Unknown category
*/
func (handler *Handler) resetCategory(writer http.ResponseWriter, request *http.Request) {
	if !handler.service.ResetCategory(request.Context(), requestutil.Param(request, "categoryID")) {
		respond.Error(writer, request, apperr.NotFound("Category"))
		return
	}
	respond.NoContent(writer)
}
