// Package api exposes the prompt engine over HTTP JSON for host tools
// (editor plugins, scaffolding frontends). The engine itself knows nothing
// about this transport; handlers translate requests into engine calls and
// wrap results in a standard envelope.
//
// Endpoints:
//   - POST /api/v1/generate   render a guidance prompt
//   - POST /api/v1/analyze    infer project intent from a description
//   - POST /api/v1/feedback   record variant feedback
//   - GET  /api/v1/archetypes list the template catalog
//   - GET  /api/v1/preview/{archetype} preview a primary template body
//   - GET  /api/v1/health     liveness probe
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/appforge/appforge/internal/engine"
	"github.com/appforge/appforge/internal/errors"
	"github.com/appforge/appforge/internal/models"
)

// APIServer provides the HTTP API with middleware support
type APIServer struct {
	engine       *engine.Engine
	errorHandler *errors.HTTPErrorHandler
	port         int
	server       *http.Server
}

// NewAPIServer creates a new API server instance
func NewAPIServer(eng *engine.Engine, port int) *APIServer {
	return &APIServer{
		engine:       eng,
		errorHandler: errors.NewHTTPErrorHandler(true),
		port:         port,
	}
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/generate", s.withMiddleware(s.handleGenerate))
	mux.HandleFunc("/api/v1/analyze", s.withMiddleware(s.handleAnalyze))
	mux.HandleFunc("/api/v1/feedback", s.withMiddleware(s.handleFeedback))
	mux.HandleFunc("/api/v1/archetypes", s.withMiddleware(s.handleArchetypes))
	mux.HandleFunc("/api/v1/preview/", s.withMiddleware(s.handlePreview))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				s.errorHandler.WriteHTTPError(w, errors.InternalError("Internal server error"))
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

// GenerateRequest is the POST /api/v1/generate payload.
type GenerateRequest struct {
	Description string   `json:"description"`
	ProjectName string   `json:"project_name"`
	Archetype   string   `json:"archetype,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Phase       string   `json:"phase,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
}

// handleGenerate handles POST /api/v1/generate
func (s *APIServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("invalid request body"))
		return
	}
	if req.Description == "" && req.Archetype == "" {
		s.writeError(w, errors.ValidationError("description or archetype is required"))
		return
	}

	intent := s.engine.Analyze(req.Description)
	if req.Archetype != "" {
		intent.Archetype = strings.ToLower(req.Archetype)
	}
	if req.Experience == "" {
		req.Experience = models.AudienceIntermediate
	}
	if req.Phase == "" {
		req.Phase = models.PhaseDevelopment
	}
	if req.ProjectName == "" {
		req.ProjectName = "my-" + intent.Archetype + "-app"
	}

	ctx := s.engine.BuildContext(req.ProjectName, intent, req.TechStack)
	sel := &models.SelectionContext{
		Intent:           intent,
		UserExperience:   req.Experience,
		DevelopmentPhase: req.Phase,
	}

	result := s.engine.Generate(intent.Archetype, ctx, sel)
	if !result.Success {
		s.writeError(w, errors.NewAppError(errors.ErrCodeNotFound, result.Error))
		return
	}

	s.writeResponse(w, result, "", http.StatusOK)
}

// handleAnalyze handles POST /api/v1/analyze
func (s *APIServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Description == "" {
		s.writeError(w, errors.ValidationError("description is required"))
		return
	}

	s.writeResponse(w, s.engine.Analyze(req.Description), "", http.StatusOK)
}

// handleFeedback handles POST /api/v1/feedback
func (s *APIServer) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	var feedback []models.TemplateFeedback
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		s.writeError(w, errors.ValidationError("invalid feedback payload"))
		return
	}
	for _, item := range feedback {
		if item.Rating < 1 || item.Rating > 5 {
			s.writeError(w, errors.ValidationError("rating must be 1-5"))
			return
		}
	}

	s.engine.UpdateWeights(feedback)
	s.writeResponse(w, nil, "feedback recorded", http.StatusOK)
}

// handleArchetypes handles GET /api/v1/archetypes
func (s *APIServer) handleArchetypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	s.writeResponse(w, s.engine.Registry().ListAll(), "", http.StatusOK)
}

// handlePreview handles GET /api/v1/preview/{archetype}
func (s *APIServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
		return
	}

	archetype := strings.TrimPrefix(r.URL.Path, "/api/v1/preview/")
	if archetype == "" {
		s.writeError(w, errors.ValidationError("archetype is required"))
		return
	}

	text, ok := s.engine.Preview(archetype)
	if !ok {
		s.writeError(w, errors.NotFoundError("template for "+archetype))
		return
	}

	s.writeResponse(w, map[string]string{"archetype": strings.ToLower(archetype), "preview": text}, "", http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]string{
		"status":  "ok",
		"version": s.engine.Version(),
	}, "", http.StatusOK)
}
