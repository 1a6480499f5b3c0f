package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"iljeong/internal/config"
	"iljeong/internal/notify"
	"iljeong/internal/repository"
)

var validate = validator.New()

// Server exposes the calendar API over HTTP.
type Server struct {
	Server *http.Server
	log    *zerolog.Logger
	cfg    *config.Config

	events        *EventHandler
	notifications *NotificationHandler
}

// New assembles the router, handlers, and http.Server.
func New(cfg *config.Config, repo repository.EventRepository, engine *notify.Engine, log *zerolog.Logger) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:         cfg.Listen,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log:           log,
		cfg:           cfg,
		events:        NewEventHandler(repo, cfg.Location(), log),
		notifications: NewNotificationHandler(engine, log),
	}

	r := mux.NewRouter()
	s.setupRoutes(r)

	handler := http.Handler(r)
	if s.basicAuthEnabled() {
		log.Info().Str("listen", cfg.Listen).Msg("HTTP basic auth enabled")
		handler = s.basicAuthMiddleware(handler)
	}
	s.Server.Handler = handler

	return s
}

func (s *Server) setupRoutes(r *mux.Router) {
	r.Use(s.loggingMiddleware)

	// Health check endpoint
	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Events routes
	events := api.PathPrefix("/events").Subrouter()
	events.HandleFunc("", s.events.ListEvents).Methods("GET")
	events.HandleFunc("", s.events.CreateEvent).Methods("POST")
	events.HandleFunc("/overlaps", s.events.CheckOverlaps).Methods("POST")
	events.HandleFunc("/{id}", s.events.GetEvent).Methods("GET")
	events.HandleFunc("/{id}", s.events.UpdateEvent).Methods("PUT")
	events.HandleFunc("/{id}", s.events.DeleteEvent).Methods("DELETE")

	// Notifications routes
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.HandleFunc("", s.notifications.ListNotifications).Methods("GET")
	notifications.HandleFunc("/{index}", s.notifications.RemoveNotification).Methods("DELETE")

	// ICS export
	api.HandleFunc("/export.ics", s.events.ExportICS).Methods("GET")
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// 빈 사용자명 또는 비밀번호가 설정된 경우에는 비활성화로 취급한다.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health 는 항상 무인증으로 노출한다.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="iljeong", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// loggingMiddleware logs all incoming requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

// responseWriter captures the status code for the logging middleware.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}
