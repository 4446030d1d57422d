package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/domain"
	logpkg "github.com/tamarack-health/matchd/internal/logger"
	healthuc "github.com/tamarack-health/matchd/internal/usecase/health"
	matchuc "github.com/tamarack-health/matchd/internal/usecase/match"
)

// Trigger sources accepted on the matches endpoint.
const (
	triggerChat = "CHAT"
	triggerForm = "FORM"
)

// MatchRunner runs one turn of the match pipeline.
type MatchRunner interface {
	Match(ctx context.Context, req *matchuc.Request) (*domain.MatchResult, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes the match pipeline over HTTP.
type Server struct {
	match  MatchRunner
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(match MatchRunner, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{match: match, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	r.Post("/v1/matches", s.CreateMatch)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type matchRequest struct {
	ChatID            string                       `json:"chatId"`
	Messages          []domain.ConversationMessage `json:"messages"`
	Embedding         []float32                    `json:"embedding"`
	CurrentFilters    domain.FilterState           `json:"currentFilters"`
	CurrentTherapists []displayedTherapist         `json:"currentTherapists"`
	TriggerSource     string                       `json:"triggerSource"`
}

// displayedTherapist is the wire shape for a candidate the user is viewing.
type displayedTherapist struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (d displayedTherapist) toDomain() domain.DisplayedCandidate {
	return domain.DisplayedCandidate{
		ID:   d.ID,
		Name: strings.TrimSpace(d.FirstName + " " + d.LastName),
	}
}

type matchResponse struct {
	Therapists []domain.CandidateRecord `json:"therapists"`
	Filters    domain.FilterState       `json:"filters"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateMatch handles POST /v1/matches.
func (s *Server) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	fromForm := false
	switch req.TriggerSource {
	case "", triggerChat:
	case triggerForm:
		fromForm = true
	default:
		writeError(w, http.StatusBadRequest, "triggerSource must be CHAT or FORM")
		return
	}

	displayed := make([]domain.DisplayedCandidate, 0, len(req.CurrentTherapists))
	for _, t := range req.CurrentTherapists {
		displayed = append(displayed, t.toDomain())
	}

	result, err := s.match.Match(r.Context(), &matchuc.Request{
		ChatID:    req.ChatID,
		Messages:  req.Messages,
		Filters:   req.CurrentFilters,
		Embedding: req.Embedding,
		Displayed: displayed,
		FromForm:  fromForm,
	})
	if err != nil {
		s.handlePipelineError(w, r, req.ChatID, err)
		return
	}

	therapists := result.Candidates
	if therapists == nil {
		// Clients iterate this field; always an array, never null.
		therapists = []domain.CandidateRecord{}
	}

	writeJSON(w, http.StatusOK, matchResponse{
		Therapists: therapists,
		Filters:    result.Filters,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handlePipelineError(w http.ResponseWriter, r *http.Request, chatID string, err error) {
	if errors.Is(err, domain.ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, safePipelineMessage(err))
		return
	}
	// The request-scoped logger carries the request_id from the wide-event
	// middleware.
	logpkg.FromContext(r.Context(), s.logger).Error("match pipeline error",
		zap.String("chat_id", chatID),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, safePipelineMessage(err))
}

// safePipelineMessage returns a sentinel error message for the client without
// exposing internals.
func safePipelineMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrClassification,
		domain.ErrExtraction,
		domain.ErrRetrieval,
		domain.ErrEmbeddingProviderError,
		domain.ErrNLPProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
