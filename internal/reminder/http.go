// Copyright (c) 2026 AtharHuda. All rights reserved.

package reminder

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/atharhuda/atharhuda/internal/platform/request"
	"github.com/atharhuda/atharhuda/internal/platform/respond"
	"github.com/atharhuda/atharhuda/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the reminder settings over HTTP.
type Handler struct {
	scheduler *Scheduler
}

// NewHandler constructs a new reminder [Handler].
func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Routes returns a [chi.Router] with the reminder endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/settings", handler.getSettings)
	router.Put("/settings", handler.saveSettings)
	router.Post("/test", handler.sendTest)

	return router
}

// settingsResponse is the settings view plus the computed next run.
type settingsResponse struct {
	Settings
	NextRun *time.Time `json:"nextRun,omitempty"`
}

/*
GET /api/v1/reminder/settings.

Response:
  - 200: settingsResponse (Disabled default when nothing is stored)
*/
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	response := settingsResponse{Settings: handler.scheduler.Settings(request.Context())}
	if next, ok := handler.scheduler.NextRun(request.Context()); ok {
		response.NextRun = &next
	}
	respond.OK(writer, response)
}

/*
PUT /api/v1/reminder/settings.

Description: Saves the reminder configuration and rearms the timer. An
enabled reminder needs a person name and a valid 24h time; a disabled one
only needs a well-formed time.

Request:
  - personName: string
  - time: string ("HH:MM")
  - enabled: bool

Response:
  - 200: settingsResponse
  - 400: Validation failure
*/
func (handler *Handler) saveSettings(writer http.ResponseWriter, request *http.Request) {
	var body Settings
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	body.PersonName = strings.TrimSpace(body.PersonName)
	if body.Time == "" {
		body.Time = DefaultTime
	}

	validator := &validate.Validator{}
	validator.WallClock("time", body.Time)
	validator.MaxLen("personName", body.PersonName, 100)
	if body.Enabled {
		validator.Required("personName", body.PersonName)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.scheduler.Save(request.Context(), body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := settingsResponse{Settings: body}
	if next, ok := handler.scheduler.NextRun(request.Context()); ok {
		response.NextRun = &next
	}
	respond.OK(writer, response)
}

// testRequest is the JSON body for POST /reminder/test.
type testRequest struct {
	PersonName string `json:"personName"`
}

/*
POST /api/v1/reminder/test.

Description: Fires an immediate test delivery so the user can confirm
notifications reach them. Falls back to the stored person name when the
body omits one.

Response:
  - 204: Delivered
  - 400: No name available
*/
func (handler *Handler) sendTest(writer http.ResponseWriter, request *http.Request) {
	var body testRequest
	_ = requestutil.DecodeJSON(request, &body)

	name := strings.TrimSpace(body.PersonName)
	if name == "" {
		name = handler.scheduler.Settings(request.Context()).PersonName
	}

	validator := &validate.Validator{}
	validator.Required("personName", name)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.scheduler.SendTest(request.Context(), name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
