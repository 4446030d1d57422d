package domain

import "context"

// KeyPrefix namespaces all matchd keys in the store.
const KeyPrefix = "matchd:"

// DefaultVectorDimensions is the embedding width when config leaves it unset.
const DefaultVectorDimensions = 1536

// EmbeddingResult carries the vector plus provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult carries vectors for a batch of texts plus provider token usage.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// HealthChecker is implemented by collaborators that can probe their backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
