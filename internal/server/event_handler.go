package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"iljeong/internal/calendar"
	"iljeong/internal/ics"
	"iljeong/internal/model"
	"iljeong/internal/repository"
)

// EventHandler handles HTTP requests related to events.
type EventHandler struct {
	repo repository.EventRepository
	loc  *time.Location
	log  *zerolog.Logger
}

// NewEventHandler creates a new EventHandler. loc is the timezone in which
// event date/time strings and view reference dates are interpreted.
func NewEventHandler(repo repository.EventRepository, loc *time.Location, log *zerolog.Logger) *EventHandler {
	return &EventHandler{
		repo: repo,
		loc:  loc,
		log:  log,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": message})
}

// ListEvents returns all events, optionally narrowed by calendar view and
// search term: ?view=week|month&date=YYYY-MM-DD&q=term. Without a valid
// view the full collection is returned.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events")
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	q := r.URL.Query()
	view := calendar.ViewMode(q.Get("view"))
	term := q.Get("q")

	if view == calendar.ViewWeek || view == calendar.ViewMonth || term != "" {
		reference := calendar.ParseDate(q.Get("date"), h.loc)
		if reference.IsZero() {
			// 기준 날짜가 없거나 잘못된 경우 오늘을 기준으로 한다.
			reference = time.Now().In(h.loc)
		}
		events = calendar.FilterEvents(events, term, reference, view)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"events": events,
	})
}

// CreateEvent creates a new event. Unless force=true, a candidate whose
// time range overlaps existing events is refused with 409 and the
// overlapping events are returned so the caller can warn and retry.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		h.log.Error().Err(err).Msg("Validation failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := req.Event(uuid.New().String())

	if r.URL.Query().Get("force") != "true" {
		overlapping, err := h.findOverlapping(r, event)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to check overlaps")
			return
		}
		if len(overlapping) > 0 {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":      "error",
				"message":     "Overlapping events detected",
				"overlapping": overlapping,
			})
			return
		}
	}

	if err := h.repo.Create(r.Context(), event); err != nil {
		h.log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to create event")
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"event":  event,
	})
}

// GetEvent retrieves an event by id.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	event, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Str("event_id", id).Msg("Failed to get event")
		writeError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"event":  event,
	})
}

// UpdateEvent replaces an existing event. The overlap check excludes the
// event itself and honors the same force=true escape as CreateEvent.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		h.log.Error().Err(err).Msg("Validation failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := req.Event(id)

	if r.URL.Query().Get("force") != "true" {
		overlapping, err := h.findOverlapping(r, event)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to check overlaps")
			return
		}
		if len(overlapping) > 0 {
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":      "error",
				"message":     "Overlapping events detected",
				"overlapping": overlapping,
			})
			return
		}
	}

	if err := h.repo.Update(r.Context(), event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		writeError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"event":  event,
	})
}

// DeleteEvent removes an event by id.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		writeError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// CheckOverlaps returns the stored events overlapping a candidate body
// without persisting anything. The candidate may carry an id to exclude
// itself (the edit case).
func (h *EventHandler) CheckOverlaps(w http.ResponseWriter, r *http.Request) {
	var candidate model.Event
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	overlapping, err := h.findOverlapping(r, &candidate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check overlaps")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"overlapping": overlapping,
	})
}

// ExportICS renders all stored events as an iCalendar document.
func (h *EventHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events for export")
		writeError(w, http.StatusInternalServerError, "Failed to export events")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="iljeong.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics.Export(events, h.loc)))
}

func (h *EventHandler) findOverlapping(r *http.Request, candidate *model.Event) ([]*model.Event, error) {
	events, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events for overlap check")
		return nil, err
	}
	return calendar.FindOverlapping(candidate, events, h.loc), nil
}
