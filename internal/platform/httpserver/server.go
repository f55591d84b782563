package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	pollengine "livepoll/contexts/engagement/poll-engine"
	"livepoll/internal/platform/realtime"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "livepoll/internal/platform/httpserver/docs"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	polls          pollengine.Module
	hub            *realtime.Hub
	allowedOrigins []string
	secureCookies  bool
}

func New(
	polls pollengine.Module,
	hub *realtime.Hub,
	logger *slog.Logger,
	addr string,
	allowedOrigins []string,
	secureCookies bool,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		polls:          polls,
		hub:            hub,
		allowedOrigins: allowedOrigins,
		secureCookies:  secureCookies,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.corsHandler())
}

func (s *Server) corsHandler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/polls", s.handleCreatePoll)
	s.mux.HandleFunc("GET /api/polls/{poll_id}", s.handleGetPoll)
	s.mux.HandleFunc("POST /api/polls/{poll_id}/vote", s.handleCastVote)
	s.mux.HandleFunc("GET /api/polls/{poll_id}/live", s.handlePollLive)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop in the chain is the client.
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			forwarded = forwarded[:i]
		}
		return strings.TrimSpace(forwarded)
	}
	return r.RemoteAddr
}
