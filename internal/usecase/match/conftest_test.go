package match

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/domain"
)

type mockClassifier struct {
	fn    func(ctx context.Context, userMessage string, firstMessage bool, displayed []domain.DisplayedCandidate) (domain.IntentDecision, error)
	calls int
}

func (m *mockClassifier) ClassifyIntent(ctx context.Context, userMessage string, firstMessage bool, displayed []domain.DisplayedCandidate) (domain.IntentDecision, error) {
	m.calls++
	if m.fn != nil {
		return m.fn(ctx, userMessage, firstMessage, displayed)
	}
	return domain.IntentDecision{IsSearchRequest: true}, nil
}

type mockExtractor struct {
	fn    func(ctx context.Context, userMessage string, current domain.FilterState, fromForm bool) (domain.Update, error)
	calls int
}

func (m *mockExtractor) ExtractFilters(ctx context.Context, userMessage string, current domain.FilterState, fromForm bool) (domain.Update, error) {
	m.calls++
	if m.fn != nil {
		return m.fn(ctx, userMessage, current, fromForm)
	}
	return domain.Update{}, nil
}

type mockEmbedder struct {
	fn    func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.fn != nil {
		return m.fn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockRetriever struct {
	fn    func(ctx context.Context, vector []float32, filters domain.FilterState, topK int) ([]domain.CandidateRecord, error)
	calls int
}

func (m *mockRetriever) SearchKNN(ctx context.Context, vector []float32, filters domain.FilterState, topK int) ([]domain.CandidateRecord, error) {
	m.calls++
	if m.fn != nil {
		return m.fn(ctx, vector, filters, topK)
	}
	return nil, nil
}

type testMocks struct {
	classifier *mockClassifier
	extractor  *mockExtractor
	embedder   *mockEmbedder
	retriever  *mockRetriever
}

func newTestService(t *testing.T) (*Service, *testMocks) {
	t.Helper()
	m := &testMocks{
		classifier: &mockClassifier{},
		extractor:  &mockExtractor{},
		embedder:   &mockEmbedder{},
		retriever:  &mockRetriever{},
	}
	svc := New(m.classifier, m.extractor, m.embedder, m.retriever, Params{}, zap.NewNop())
	return svc, m
}

func userTurn(content string) []domain.ConversationMessage {
	return []domain.ConversationMessage{
		{ID: "m1", Role: domain.RoleUser, Content: content},
	}
}

func conversation(contents ...string) []domain.ConversationMessage {
	msgs := make([]domain.ConversationMessage, 0, len(contents))
	for i, c := range contents {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		msgs = append(msgs, domain.ConversationMessage{ID: "m", Role: role, Content: c})
	}
	return msgs
}

func candidate(id string, similarity float64) domain.CandidateRecord {
	return domain.CandidateRecord{ID: id, FirstName: "T", LastName: id, Similarity: similarity}
}

func genderPtr(g domain.Gender) *domain.Gender { return &g }

func pricePtr(p float64) *float64 { return &p }
