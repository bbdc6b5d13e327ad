// Copyright (c) 2026 AtharHuda. All rights reserved.

package khatma

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atharhuda/atharhuda/internal/core/juz"
	"github.com/atharhuda/atharhuda/internal/platform/apperr"
	requestutil "github.com/atharhuda/atharhuda/internal/platform/request"
	"github.com/atharhuda/atharhuda/internal/platform/respond"
	"github.com/atharhuda/atharhuda/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for the khatma board. It owns all
// validation of caller input; the [Service] trusts what it is handed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new khatma [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the khatma board's endpoints.
//
// # Routing Strategy
//
// Everything is public. The board has no accounts: participants identify
// themselves by typing a name, and mutations are accepted on trust. The
// aggregate views (stats, completion log, juz catalog) sit beside the
// /khatmas subtree because they span the whole board.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/khatmas", func(board chi.Router) {
		board.Get("/", handler.listKhatmas)
		board.Post("/", handler.createKhatma)
		board.Get("/{id}", handler.getKhatma)
		board.Get("/{id}/participants", handler.listParticipants)
		board.Put("/{id}/parts/{juz}", handler.updatePart)
	})

	router.Get("/completion-log", handler.listCompletionLog)
	router.Get("/stats", handler.getStats)
	router.Get("/juz/{number}", handler.getJuzInfo)

	return router
}

// # Board Endpoints

/*
GET /api/v1/khatmas.

Description: Lists all khatmas, newest first. With a q parameter the
listing is filtered by an Arabic-aware folded substring match over the
title, deceased name, and creator.

Request:
  - q: string (Optional search query)

Response:
  - 200: []Khatma
*/
func (handler *Handler) listKhatmas(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	if query != "" {
		respond.OK(writer, handler.service.Search(request.Context(), query))
		return
	}
	respond.OK(writer, handler.service.List(request.Context()))
}

// createKhatmaRequest is the JSON body for POST /khatmas.
type createKhatmaRequest struct {
	Title             string `json:"title"`
	CreatedBy         string `json:"createdBy"`
	DeceasedName      string `json:"deceasedName"`
	DeceasedDeathDate string `json:"deceasedDeathDate"`
	Description       string `json:"description"`
}

/*
POST /api/v1/khatmas.

Description: Creates a new khatma with 30 available parts. The deceased
fields are optional; when a death date is supplied it must parse as either
a full RFC 3339 timestamp or a bare calendar date.

Request:
  - title: string (Required)
  - createdBy: string (Required)
  - deceasedName: string
  - deceasedDeathDate: string (RFC 3339 or "2006-01-02")
  - description: string

Response:
  - 201: Khatma (Including the generated ID and derived fields)
  - 400: Validation failure
*/
func (handler *Handler) createKhatma(writer http.ResponseWriter, request *http.Request) {
	var body createKhatmaRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", body.Title).MaxLen("title", body.Title, 200)
	validator.Required("createdBy", body.CreatedBy).MaxLen("createdBy", body.CreatedBy, 100)
	validator.MaxLen("deceasedName", body.DeceasedName, 100)
	validator.MaxLen("description", body.Description, 1000)

	var deathDate *time.Time
	if body.DeceasedDeathDate != "" {
		parsed, err := parseDate(body.DeceasedDeathDate)
		validator.Custom("deceasedDeathDate", err != nil, "Must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		if err == nil {
			deathDate = &parsed
		}
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created := handler.service.Create(request.Context(), CreateInput{
		Title:             body.Title,
		CreatedBy:         body.CreatedBy,
		DeceasedName:      body.DeceasedName,
		DeceasedDeathDate: deathDate,
		Description:       body.Description,
	})

	respond.Created(writer, created)
}

/*
GET /api/v1/khatmas/{id}.

Response:
  - 200: Khatma
  - 404: Unknown ID
*/
func (handler *Handler) getKhatma(writer http.ResponseWriter, request *http.Request) {
	khatma, ok := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Khatma"))
		return
	}
	respond.OK(writer, khatma)
}

/*
GET /api/v1/khatmas/{id}/participants.

Description: Returns the distinct reserver/completer names of one khatma,
in first-seen part order.

Response:
  - 200: []string
  - 404: Unknown ID
*/
func (handler *Handler) listParticipants(writer http.ResponseWriter, request *http.Request) {
	names, ok := handler.service.Participants(request.Context(), requestutil.ID(request, "id"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Khatma"))
		return
	}
	respond.OK(writer, names)
}

// # Part Lifecycle

// updatePartRequest is the JSON body for PUT /khatmas/{id}/parts/{juz}.
type updatePartRequest struct {
	Status     string   `json:"status"`
	UserName   string   `json:"userName"`
	ReadSurahs []string `json:"readSurahs"`
}

/*
PUT /api/v1/khatmas/{id}/parts/{juz}.

Description: Moves one part to the requested lifecycle state. The user
name is optional on completion (the previous reserver, then an anonymous
placeholder, stand in), and readSurahs is stored as supplied — omitting it
leaves the part's surah list unset. The status itself must be one of the
three lifecycle values and the juz number must be in catalog range.

Request:
  - status: string (available, reserved, completed)
  - userName: string
  - readSurahs: []string (Optional; surahs actually read, kept on completion)

Response:
  - 200: Khatma (The updated aggregate, with refreshed derived fields)
  - 400: Bad status or juz number
  - 404: Unknown khatma
*/
func (handler *Handler) updatePart(writer http.ResponseWriter, request *http.Request) {
	var body updatePartRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	juzNumber := requestutil.IntParam(request, "juz")

	validator := &validate.Validator{}
	validator.Required("status", body.Status).OneOf("status", body.Status,
		string(PartAvailable),
		string(PartReserved),
		string(PartCompleted),
	)
	validator.Custom("juz", !juz.Valid(juzNumber), "Juz number must be between 1 and 30")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")
	if !handler.service.UpdatePartStatus(request.Context(), id, juzNumber, PartStatus(body.Status), body.UserName, body.ReadSurahs) {
		respond.Error(writer, request, apperr.NotFound("Khatma"))
		return
	}

	khatma, _ := handler.service.Get(request.Context(), id)
	respond.OK(writer, khatma)
}

// # Aggregates

/*
GET /api/v1/stats.

Response:
  - 200: Stats
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Stats(request.Context()))
}

/*
GET /api/v1/completion-log.

Description: Returns the append-only log of finished khatmas, newest first.

Response:
  - 200: []CompletionRecord
*/
func (handler *Handler) listCompletionLog(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.CompletionLog(request.Context()))
}

// juzInfoResponse is the catalog view of one juz.
type juzInfoResponse struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Surahs []string `json:"surahs"`
}

/*
GET /api/v1/juz/{number}.

Description: Returns the static catalog entry for one juz: its traditional
name and the surahs it spans.

Response:
  - 200: juzInfoResponse
  - 400: Out-of-range number
*/
func (handler *Handler) getJuzInfo(writer http.ResponseWriter, request *http.Request) {
	number := requestutil.IntParam(request, "number")

	validator := &validate.Validator{}
	validator.Custom("number", !juz.Valid(number), "Juz number must be between 1 and 30")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, juzInfoResponse{
		Number: number,
		Name:   juz.Name(number),
		Surahs: juz.Surahs(number),
	})
}

// parseDate accepts a full RFC 3339 timestamp or a bare calendar date.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
