package matchd

import (
	"reflect"
	"testing"

	"github.com/tamarack-health/matchd/internal/domain"
)

func TestFiltersToDomain(t *testing.T) {
	f := Filters{
		Gender:          "female",
		Ethnicity:       []string{"asian", "black"},
		MaxPriceInitial: 150,
		Availability:    "online",
	}

	s := filtersToDomain(f)

	if s.Gender == nil || *s.Gender != domain.GenderFemale {
		t.Errorf("gender = %v", s.Gender)
	}
	if len(s.Ethnicity) != 2 || s.Ethnicity[0] != domain.EthnicityAsian {
		t.Errorf("ethnicity = %v", s.Ethnicity)
	}
	if s.MaxPriceInitial == nil || *s.MaxPriceInitial != 150 {
		t.Errorf("max_price_initial = %v", s.MaxPriceInitial)
	}
	if s.Availability == nil || *s.Availability != domain.AvailabilityOnline {
		t.Errorf("availability = %v", s.Availability)
	}
	if s.Sexuality != nil || s.Faith != nil || s.Format != nil || s.MaxPriceSubsequent != nil {
		t.Errorf("unset fields must stay nil: %+v", s)
	}
}

func TestFiltersToDomain_ZeroIsUnconstrained(t *testing.T) {
	s := filtersToDomain(Filters{})
	if !s.IsZero() {
		t.Errorf("zero Filters must map to zero FilterState, got %+v", s)
	}
}

func TestFiltersRoundTrip(t *testing.T) {
	f := Filters{
		Gender:             "non_binary",
		Sexuality:          []string{"queer"},
		Faith:              []string{"jewish", "spiritual"},
		Format:             []string{"couples"},
		MaxPriceInitial:    120,
		MaxPriceSubsequent: 90,
		Availability:       "both",
	}

	got := filtersFromDomain(filtersToDomain(f))
	if !reflect.DeepEqual(got, f) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, f)
	}
}

func TestTherapistRoundTrip(t *testing.T) {
	th := Therapist{
		ID:              "t-1",
		FirstName:       "Maya",
		LastName:        "Chen",
		Pronouns:        "she/her",
		Gender:          "female",
		Ethnicity:       []string{"asian"},
		Sexuality:       []string{"straight"},
		Faith:           []string{"buddhist"},
		Languages:       []string{"English", "Mandarin"},
		Availability:    "online",
		Format:          []string{"individual", "couples"},
		InitialPrice:    160,
		SubsequentPrice: 130,
		AreasOfFocus:    []string{"anxiety", "life transitions"},
		Approaches:      []string{"CBT"},
		Summary:         "Warm, direct therapist focused on anxiety.",
		Bio:             "15 years of practice.",
	}

	rec := therapistToDomain(&th)
	got := therapistFromDomain(&rec)

	if !reflect.DeepEqual(got, th) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, th)
	}
}

func TestTherapistFromDomain_KeepsSimilarity(t *testing.T) {
	rec := domain.CandidateRecord{ID: "t-2", Similarity: 0.73}
	got := therapistFromDomain(&rec)
	if got.Similarity != 0.73 {
		t.Errorf("similarity = %g, want 0.73", got.Similarity)
	}
}

func TestMessagesToDomain(t *testing.T) {
	msgs := messagesToDomain([]Message{
		{ID: "m1", Role: "user", Content: "hello"},
		{ID: "m2", Role: "assistant", Content: "hi"},
	})

	if len(msgs) != 2 {
		t.Fatalf("len = %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[1].Role != domain.RoleAssistant {
		t.Errorf("roles = %v, %v", msgs[0].Role, msgs[1].Role)
	}
	if msgs[0].Content != "hello" {
		t.Errorf("content = %q", msgs[0].Content)
	}
}
