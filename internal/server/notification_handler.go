package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"iljeong/internal/notify"
)

// NotificationHandler exposes the notification engine's query surface and
// positional dismissal over HTTP.
type NotificationHandler struct {
	engine *notify.Engine
	log    *zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(engine *notify.Engine, log *zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		engine: engine,
		log:    log,
	}
}

// ListNotifications returns the live notification list and the ids that
// have already fired.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"notifications":  h.engine.Notifications(),
		"notifiedEvents": h.engine.NotifiedEvents(),
	})
}

// RemoveNotification dismisses the notification at the given list position.
// Dismissal is by position, not id; the underlying event stays notified and
// will not fire again.
func (h *NotificationHandler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "Invalid notification index")
		return
	}

	h.engine.RemoveNotification(index)
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}
