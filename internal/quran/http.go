// Copyright (c) 2026 AtharHuda. All rights reserved.

package quran

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atharhuda/atharhuda/internal/core/juz"
	requestutil "github.com/atharhuda/atharhuda/internal/platform/request"
	"github.com/atharhuda/atharhuda/internal/platform/respond"
	"github.com/atharhuda/atharhuda/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the juz reader endpoint.
type Handler struct {
	client *Client
}

// NewHandler constructs a new quran [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns a [chi.Router] with the reader endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/juz/{number}", handler.getJuz)
	return router
}

/*
GET /api/v1/quran/juz/{number}.

Description: Returns the verses of one juz (Arabic text, translation,
per-ayah audio URL). Served from cache when possible.

Request:
  - reciter: string (Optional audio edition id, e.g. ar.alafasy)

Response:
  - 200: JuzPage
  - 400: Out-of-range number
  - 503: Provider unavailable (retryable)
*/
func (handler *Handler) getJuz(writer http.ResponseWriter, request *http.Request) {
	number := requestutil.IntParam(request, "number")

	validator := &validate.Validator{}
	validator.Custom("number", !juz.Valid(number), "Juz number must be between 1 and 30")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.client.FetchJuz(request.Context(), number, request.URL.Query().Get("reciter"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}
