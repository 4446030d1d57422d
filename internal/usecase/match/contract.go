package match

import (
	"context"

	"github.com/tamarack-health/matchd/internal/domain"
)

// IntentClassifier decides whether a message is asking for therapists.
// displayed lists the candidates the user is currently viewing; questions
// referencing them by attribute count as search requests.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, userMessage string, firstMessage bool, displayed []domain.DisplayedCandidate) (domain.IntentDecision, error)
}

// FilterExtractor pulls preference assertions out of a message.
type FilterExtractor interface {
	ExtractFilters(ctx context.Context, userMessage string, current domain.FilterState, fromForm bool) (domain.Update, error)
}

// Embedder vectorizes text into an embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Retriever runs the filtered similarity search.
type Retriever interface {
	SearchKNN(ctx context.Context, vector []float32, filters domain.FilterState, topK int) ([]domain.CandidateRecord, error)
}
