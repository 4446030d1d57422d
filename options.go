package matchd

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	password string

	openAIKey           string
	openAIBaseURL       string
	chatModel           string
	embeddingModel      string
	embeddingDimensions int

	hnswM           int
	hnswEFConstruct int

	threshold float64
	limit     int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithOpenAI sets the OpenAI credentials used for both chat completions and
// embeddings. baseURL may be empty for the default endpoint. Without this
// option the client can manage profiles but Match returns an error.
func WithOpenAI(apiKey, baseURL string) Option {
	return func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIBaseURL = baseURL
	}
}

// WithChatModel overrides the completion model for classification and
// extraction. Default: gpt-4o-mini.
func WithChatModel(model string) Option {
	return func(c *clientConfig) {
		c.chatModel = model
	}
}

// WithEmbeddingModel overrides the embedding model and vector width.
// Defaults: text-embedding-3-small, 1536.
func WithEmbeddingModel(model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embeddingModel = model
		c.embeddingDimensions = dimensions
	}
}

// WithHNSW configures HNSW index parameters (M and EF construction) used when
// the profile index is created. Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	}
}

// WithSearchParams tunes retrieval: the minimum candidate similarity and the
// maximum number of candidates returned. Defaults: 0.1 and 10.
func WithSearchParams(threshold float64, limit int) Option {
	return func(c *clientConfig) {
		c.threshold = threshold
		c.limit = limit
	}
}

// WithLogger enables structured logging for client operations.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
