package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/domain"
	"github.com/tamarack-health/matchd/internal/metrics"
)

// Defaults applied when Params leaves a value unset.
const (
	DefaultThreshold = 0.1
	DefaultLimit     = 10
)

// Request is one conversational matching turn. The caller owns all state and
// resubmits it each turn; the service holds nothing between requests.
type Request struct {
	ChatID    string
	Messages  []domain.ConversationMessage
	Filters   domain.FilterState
	Embedding []float32                   // precomputed vector for the last user message; nil to embed server-side
	Displayed []domain.DisplayedCandidate // candidates currently shown to the user
	FromForm  bool                        // filters were just edited in the form UI
}

// Params tunes retrieval.
type Params struct {
	Threshold float64 // minimum similarity for a candidate to surface
	Limit     int     // maximum candidates returned
}

// Service runs the match pipeline: classify, extract, merge, retrieve.
type Service struct {
	classifier IntentClassifier
	extractor  FilterExtractor
	embedder   Embedder
	retriever  Retriever
	params     Params
	logger     *zap.Logger
}

// New creates a match service.
func New(
	classifier IntentClassifier,
	extractor FilterExtractor,
	embedder Embedder,
	retriever Retriever,
	params Params,
	logger *zap.Logger,
) *Service {
	if params.Threshold <= 0 {
		params.Threshold = DefaultThreshold
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	return &Service{
		classifier: classifier,
		extractor:  extractor,
		embedder:   embedder,
		retriever:  retriever,
		params:     params,
		logger:     logger,
	}
}

// Match executes one turn of the pipeline.
//
// A non-search message resets the filter state: the response carries no
// candidates and an all-null FilterState, so the caller's sidebar clears.
// Classifier and extractor failures are fatal for the request.
func (s *Service) Match(ctx context.Context, req *Request) (*domain.MatchResult, error) {
	last, ok := domain.LastUserMessage(req.Messages)
	if !ok || last.Content == "" {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("no user message to match on: %w", domain.ErrInvalidRequest)
	}
	userMessage := last.Content

	if err := req.Filters.Validate(); err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}

	firstMessage := domain.IsFirstMessage(req.Messages)

	decision, err := s.classifier.ClassifyIntent(ctx, userMessage, firstMessage, req.Displayed)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("classify intent: %v: %w", err, domain.ErrClassification)
	}

	s.logger.Debug("Intent classified",
		zap.String("chat_id", req.ChatID),
		zap.Bool("is_search", decision.IsSearchRequest),
		zap.Bool("first_message", firstMessage),
		zap.String("explanation", decision.Explanation),
	)

	if !decision.IsSearchRequest {
		metrics.MatchRequestsTotal.WithLabelValues("not_search").Inc()
		return &domain.MatchResult{Filters: domain.FilterState{}}, nil
	}

	update, err := s.extractor.ExtractFilters(ctx, userMessage, req.Filters, req.FromForm)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("extract filters: %v: %w", err, domain.ErrExtraction)
	}

	merged := domain.Merge(req.Filters, update)
	if req.FromForm {
		// Form edits win over whatever the extractor read into the message.
		merged = domain.Merge(merged, domain.UpdateFromState(req.Filters))
	}
	merged = merged.Normalize()

	vector := req.Embedding
	if len(vector) == 0 {
		result, err := s.embedder.Embed(ctx, userMessage)
		if err != nil {
			metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("embed message: %w", err)
		}
		vector = result.Embedding
	}

	candidates, err := s.retriever.SearchKNN(ctx, vector, merged, s.params.Limit)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("retrieve candidates (filters: %s): %v: %w",
			merged.Summary(), err, domain.ErrRetrieval)
	}

	candidates = s.rank(candidates)

	s.logger.Info("Match completed",
		zap.String("chat_id", req.ChatID),
		zap.Int("candidates", len(candidates)),
		zap.String("filters", merged.Summary()),
	)

	metrics.MatchRequestsTotal.WithLabelValues("matched").Inc()
	return &domain.MatchResult{Candidates: candidates, Filters: merged}, nil
}

// rank drops candidates below the similarity threshold and truncates to the
// limit. Store order is preserved; the service never re-sorts.
func (s *Service) rank(candidates []domain.CandidateRecord) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity < s.params.Threshold {
			continue
		}
		out = append(out, c)
		if len(out) == s.params.Limit {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
