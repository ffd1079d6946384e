package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readmegen/internal/shared/observability"
	"readmegen/internal/shared/util"
)

const defaultMaxLength = 300

// Server exposes the text generation endpoint. Every request gets a
// well-formed JSON response: generation failures surface as a structured
// error payload, never as a dropped connection or a crashed process.
type Server struct {
	addr      string
	generator Generator
	limiter   *util.Limiter
	server    *http.Server
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxLength *int   `json:"max_length"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(addr string, generator Generator, limiter *util.Limiter) *Server {
	return &Server{
		addr:      addr,
		generator: generator,
		limiter:   limiter,
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/generate", s.recovered(s.handleGenerate))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("generation server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("generation server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	requestID := uuid.NewString()

	if s.limiter != nil && !s.limiter.Allow(1) {
		observability.GenerateRequestsTotal.WithLabelValues("throttled").Inc()
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.GenerateRequestsTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	maxLength := defaultMaxLength
	if req.MaxLength != nil {
		maxLength = *req.MaxLength
	}

	start := time.Now()
	text, err := s.generator.Generate(r.Context(), req.Prompt, maxLength)
	observability.GenerateDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		observability.GenerateRequestsTotal.WithLabelValues("error").Inc()
		slog.Error("generation failed", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	observability.GenerateRequestsTotal.WithLabelValues("success").Inc()
	slog.Debug("generation complete", "request_id", requestID, "chars", len(text))
	writeJSON(w, http.StatusOK, generateResponse{GeneratedText: text})
}

// recovered turns a handler panic into a structured error response.
func (s *Server) recovered(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
