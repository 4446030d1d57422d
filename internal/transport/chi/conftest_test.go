package chi

import (
	"context"
	"net/http"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/domain"
	healthuc "github.com/tamarack-health/matchd/internal/usecase/health"
	matchuc "github.com/tamarack-health/matchd/internal/usecase/match"
)

type mockMatch struct {
	fn    func(ctx context.Context, req *matchuc.Request) (*domain.MatchResult, error)
	calls int
	last  *matchuc.Request
}

func (m *mockMatch) Match(ctx context.Context, req *matchuc.Request) (*domain.MatchResult, error) {
	m.calls++
	m.last = req
	if m.fn != nil {
		return m.fn(ctx, req)
	}
	return &domain.MatchResult{}, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

func healthyReport() healthuc.Report {
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{
			"database":  healthuc.CheckOK,
			"embedding": healthuc.CheckOK,
			"nlp":       healthuc.CheckOK,
		},
	}
}

func newTestRouter(t *testing.T, match MatchRunner, health HealthChecker) http.Handler {
	t.Helper()
	srv := NewServer(match, health, zap.NewNop())
	r := chirouter.NewRouter()
	r.Use(CORSMiddleware())
	srv.Register(r)
	return r
}
