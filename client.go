// Package matchd is the embedded client for the therapist matching pipeline.
// It wires the Redis store, the OpenAI collaborators and the match service
// into a single in-process entry point, for callers that want matching
// without running the HTTP server.
package matchd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/db"
	dbRedis "github.com/tamarack-health/matchd/internal/db/redis"
	"github.com/tamarack-health/matchd/internal/domain"
	"github.com/tamarack-health/matchd/internal/metrics"
	"github.com/tamarack-health/matchd/internal/repository/embcache"
	profilerepo "github.com/tamarack-health/matchd/internal/repository/profile"
	searchrepo "github.com/tamarack-health/matchd/internal/repository/search"
	openaiTransport "github.com/tamarack-health/matchd/internal/transport/openai"
	matchuc "github.com/tamarack-health/matchd/internal/usecase/match"
)

const defaultReadinessTimeout = 10 * time.Second

var errOpenAINotConfigured = errors.New("matchd: openai not configured (use WithOpenAI)")

// Client is the matchd embedded client entry point.
type Client struct {
	store    db.Store
	matchSvc *matchuc.Service
	profiles *ProfileService
}

// New creates a Client and connects to the database. The provided context is
// used for the initial readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		chatModel:           "gpt-4o-mini",
		embeddingModel:      "text-embedding-3-small",
		embeddingDimensions: domain.DefaultVectorDimensions,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("matchd: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("matchd: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchd: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	profileRepo := profilerepo.New(store)
	if err := profileRepo.EnsureIndex(ctx, profilerepo.IndexParams{
		Dimensions:      cfg.embeddingDimensions,
		HNSWM:           cfg.hnswM,
		HNSWEFConstruct: cfg.hnswEFConstruct,
	}); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchd: ensure profile index: %w", err)
	}
	searchRepo := searchrepo.New(store)

	// Without OpenAI credentials profile management still works; the
	// NLP-dependent paths fail on use.
	var embedder domain.Embedder = noopOpenAI{}
	var classifier matchuc.IntentClassifier = noopOpenAI{}
	var extractor matchuc.FilterExtractor = noopOpenAI{}
	if cfg.openAIKey != "" {
		base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.openAIKey,
			BaseURL:    cfg.openAIBaseURL,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.embeddingDimensions,
			Logger:     cfg.logger,
		})
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, cfg.logger)

		nlp := openaiTransport.NewNLPEngine(&openaiTransport.NLPConfig{
			APIKey:  cfg.openAIKey,
			BaseURL: cfg.openAIBaseURL,
			Model:   cfg.chatModel,
			Logger:  cfg.logger,
		})
		classifier = nlp
		extractor = nlp
	}

	matchSvc := matchuc.New(classifier, extractor, embedder, searchRepo, matchuc.Params{
		Threshold: cfg.threshold,
		Limit:     cfg.limit,
	}, cfg.logger)

	return &Client{
		store:    store,
		matchSvc: matchSvc,
		profiles: &ProfileService{repo: profileRepo, embedder: embedder},
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Match runs one turn of the match pipeline.
func (c *Client) Match(ctx context.Context, req *MatchRequest) (*MatchResult, error) {
	result, err := c.matchSvc.Match(ctx, &matchuc.Request{
		ChatID:    req.ChatID,
		Messages:  messagesToDomain(req.Messages),
		Filters:   filtersToDomain(req.Filters),
		Embedding: req.Embedding,
		Displayed: displayedToDomain(req.Displayed),
		FromForm:  req.FromForm,
	})
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	therapists := make([]Therapist, len(result.Candidates))
	for i := range result.Candidates {
		therapists[i] = therapistFromDomain(&result.Candidates[i])
	}

	return &MatchResult{
		Therapists: therapists,
		Filters:    filtersFromDomain(result.Filters),
	}, nil
}

// Profiles returns the therapist profile management service.
func (c *Client) Profiles() *ProfileService {
	return c.profiles
}

// noopOpenAI stands in for the OpenAI collaborators when no key is set.
type noopOpenAI struct{}

func (noopOpenAI) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errOpenAINotConfigured
}

func (noopOpenAI) BatchEmbed(_ context.Context, _ []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchEmbeddingResult{}, errOpenAINotConfigured
}

func (noopOpenAI) ClassifyIntent(
	_ context.Context, _ string, _ bool, _ []domain.DisplayedCandidate,
) (domain.IntentDecision, error) {
	return domain.IntentDecision{}, errOpenAINotConfigured
}

func (noopOpenAI) ExtractFilters(
	_ context.Context, _ string, _ domain.FilterState, _ bool,
) (domain.Update, error) {
	return domain.Update{}, errOpenAINotConfigured
}
