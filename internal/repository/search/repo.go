package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/tamarack-health/matchd/internal/db"
	"github.com/tamarack-health/matchd/internal/domain"
	"github.com/tamarack-health/matchd/internal/repository/profile"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/match.Retriever over an FT vector index.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchKNN runs a filtered KNN search over profile hashes and returns
// candidates in store order (most similar first).
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, filters domain.FilterState, topK int,
) ([]domain.CandidateRecord, error) {
	returnFields := append([]string{"__vector_score"}, profile.SearchReturnFields...)

	q := &db.KNNQuery{
		IndexName:    profile.IndexName,
		Filter:       BuildFilter(filters),
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return parseResults(sr), nil
}

// parseResults converts db entries into candidate records, keeping store order.
func parseResults(sr *db.SearchResult) []domain.CandidateRecord {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := domain.KeyPrefix + "profile:"
	out := make([]domain.CandidateRecord, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		rec := profile.RecordFromFields(id, entry.Fields)
		rec.Similarity = entry.Score
		out = append(out, rec)
	}

	return out
}

// BuildFilter translates a filter state into an FT.SEARCH pre-filter string.
// An empty state yields "*" (vector search over the whole index).
//
// Availability widens: a therapist offering "both" satisfies a request for
// either online or in-person sessions.
func BuildFilter(f domain.FilterState) string {
	var parts []string

	if f.Gender != nil {
		parts = append(parts, tagFilter("gender", string(*f.Gender)))
	}
	if vals := domain.Strings(f.Sexuality); len(vals) > 0 {
		parts = append(parts, tagOrFilter("sexuality", vals))
	}
	if vals := domain.Strings(f.Ethnicity); len(vals) > 0 {
		parts = append(parts, tagOrFilter("ethnicity", vals))
	}
	if vals := domain.Strings(f.Faith); len(vals) > 0 {
		parts = append(parts, tagOrFilter("faith", vals))
	}
	if vals := domain.Strings(f.Format); len(vals) > 0 {
		parts = append(parts, tagOrFilter("format", vals))
	}
	if f.Availability != nil {
		parts = append(parts, availabilityFilter(*f.Availability))
	}
	if f.MaxPriceInitial != nil {
		parts = append(parts, maxPriceFilter("initial_price", *f.MaxPriceInitial))
	}
	if f.MaxPriceSubsequent != nil {
		parts = append(parts, maxPriceFilter("subsequent_price", *f.MaxPriceSubsequent))
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func tagFilter(field, value string) string {
	return fmt.Sprintf("@%s:{%s}", field, value)
}

func tagOrFilter(field string, values []string) string {
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(values, "|"))
}

func availabilityFilter(a domain.Availability) string {
	if a == domain.AvailabilityBoth {
		return tagFilter("availability", string(domain.AvailabilityBoth))
	}
	return tagOrFilter("availability", []string{string(a), string(domain.AvailabilityBoth)})
}

func maxPriceFilter(field string, limit float64) string {
	return fmt.Sprintf("@%s:[-inf %g]", field, limit)
}
