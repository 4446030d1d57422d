package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tamarack-health/matchd/internal/db"
	"github.com/tamarack-health/matchd/internal/domain"
)

func genderPtr(g domain.Gender) *domain.Gender { return &g }

func availPtr(a domain.Availability) *domain.Availability { return &a }

func pricePtr(p float64) *float64 { return &p }

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.FilterState
		expected string
	}{
		{
			name:     "empty state matches all",
			filters:  domain.FilterState{},
			expected: "*",
		},
		{
			name:     "gender only",
			filters:  domain.FilterState{Gender: genderPtr(domain.GenderFemale)},
			expected: "@gender:{female}",
		},
		{
			name: "multi-value set joins with OR",
			filters: domain.FilterState{
				Ethnicity: []domain.Ethnicity{domain.EthnicityAsian, domain.EthnicityBlack},
			},
			expected: "@ethnicity:{asian|black}",
		},
		{
			name:     "online widens to both",
			filters:  domain.FilterState{Availability: availPtr(domain.AvailabilityOnline)},
			expected: "@availability:{online|both}",
		},
		{
			name:     "in-person widens to both",
			filters:  domain.FilterState{Availability: availPtr(domain.AvailabilityInPerson)},
			expected: "@availability:{in_person|both}",
		},
		{
			name:     "both stays exact",
			filters:  domain.FilterState{Availability: availPtr(domain.AvailabilityBoth)},
			expected: "@availability:{both}",
		},
		{
			name:     "price cap is an upper bound",
			filters:  domain.FilterState{MaxPriceInitial: pricePtr(150)},
			expected: "@initial_price:[-inf 150]",
		},
		{
			name: "combined filters join with AND",
			filters: domain.FilterState{
				Gender:             genderPtr(domain.GenderFemale),
				Faith:              []domain.Faith{domain.FaithJewish},
				MaxPriceSubsequent: pricePtr(120.5),
			},
			expected: "@gender:{female} @faith:{jewish} @subsequent_price:[-inf 120.5]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildFilter(tc.filters); got != tc.expected {
				t.Errorf("BuildFilter() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestSearchKNN_BuildsQuery(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.KNNQuery
	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{}, nil
	}

	filters := domain.FilterState{Gender: genderPtr(domain.GenderMale)}
	_, err := repo.SearchKNN(context.Background(), testVector(), filters, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.IndexName != "matchd:profile:idx" {
		t.Errorf("index name = %s", gotQuery.IndexName)
	}
	if gotQuery.Filter != "@gender:{male}" {
		t.Errorf("filter = %q", gotQuery.Filter)
	}
	if gotQuery.K != 10 {
		t.Errorf("k = %d", gotQuery.K)
	}
	if gotQuery.ReturnFields[0] != "__vector_score" {
		t.Errorf("expected __vector_score in return fields, got %v", gotQuery.ReturnFields)
	}
}

func TestSearchKNN_ParsesEntries(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{
					Key:   "matchd:profile:t-1",
					Score: 0.92,
					Fields: map[string]string{
						"first_name":    "Maya",
						"last_name":     "Chen",
						"gender":        "female",
						"format":        "individual,couples",
						"initial_price": "180",
					},
				},
				{
					Key:   "matchd:profile:t-2",
					Score: 0.85,
					Fields: map[string]string{
						"first_name": "Sam",
						"last_name":  "Ortiz",
						"gender":     "non_binary",
					},
				},
			},
		}, nil
	}

	got, err := repo.SearchKNN(context.Background(), testVector(), domain.FilterState{}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "t-1" || got[1].ID != "t-2" {
		t.Errorf("ids = %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Similarity != 0.92 {
		t.Errorf("similarity = %f", got[0].Similarity)
	}
	if got[0].FirstName != "Maya" || got[0].InitialPrice != 180 {
		t.Errorf("unexpected first candidate: %+v", got[0])
	}
	if len(got[0].Format) != 2 {
		t.Errorf("format = %v", got[0].Format)
	}
}

func TestSearchKNN_EmptyResult(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	got, err := repo.SearchKNN(context.Background(), testVector(), domain.FilterState{}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty result, got %v", got)
	}
}

func TestSearchKNN_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("ft.search failed")
	}

	_, err := repo.SearchKNN(context.Background(), testVector(), domain.FilterState{}, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "search knn") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
