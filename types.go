package matchd

import (
	"github.com/tamarack-health/matchd/internal/domain"
)

// Message is a single conversation turn. Role is "user" or "assistant".
type Message struct {
	ID      string
	Role    string
	Content string
}

// Filters is the per-session set of search constraints. Zero values mean
// "no constraint": an empty string, a nil slice or a zero price leave the
// corresponding dimension unconstrained.
type Filters struct {
	Gender             string
	Sexuality          []string
	Ethnicity          []string
	Faith              []string
	Format             []string
	MaxPriceInitial    float64
	MaxPriceSubsequent float64
	Availability       string
}

// Therapist is a directory profile. Similarity is set on search results only.
type Therapist struct {
	ID              string
	FirstName       string
	MiddleName      string
	LastName        string
	Pronouns        string
	Gender          string
	Ethnicity       []string
	Sexuality       []string
	Faith           []string
	Languages       []string
	Availability    string
	Format          []string
	InitialPrice    float64
	SubsequentPrice float64
	AreasOfFocus    []string
	Approaches      []string
	Summary         string
	Bio             string
	Similarity      float64
}

// DisplayedTherapist identifies a therapist currently shown to the user.
// Questions referencing displayed therapists by attribute are treated as
// search requests by the intent classifier.
type DisplayedTherapist struct {
	ID   string
	Name string
}

// MatchRequest is one conversational matching turn. The caller owns the
// conversation and the filter state and resubmits both every turn.
type MatchRequest struct {
	ChatID    string
	Messages  []Message
	Filters   Filters
	Embedding []float32            // precomputed vector for the last user message; nil to embed internally
	Displayed []DisplayedTherapist // therapists the user is currently viewing
	FromForm  bool                 // filters were just edited in a form rather than chat
}

// MatchResult is the pipeline output: ranked therapists plus the filters
// that were in effect for the retrieval.
type MatchResult struct {
	Therapists []Therapist
	Filters    Filters
}

func messagesToDomain(msgs []Message) []domain.ConversationMessage {
	out := make([]domain.ConversationMessage, len(msgs))
	for i, m := range msgs {
		out[i] = domain.ConversationMessage{
			ID:      m.ID,
			Role:    domain.Role(m.Role),
			Content: m.Content,
		}
	}
	return out
}

func displayedToDomain(ds []DisplayedTherapist) []domain.DisplayedCandidate {
	if len(ds) == 0 {
		return nil
	}
	out := make([]domain.DisplayedCandidate, len(ds))
	for i, d := range ds {
		out[i] = domain.DisplayedCandidate{ID: d.ID, Name: d.Name}
	}
	return out
}

func filtersToDomain(f Filters) domain.FilterState {
	s := domain.FilterState{}
	if f.Gender != "" {
		g := domain.Gender(f.Gender)
		s.Gender = &g
	}
	s.Sexuality = toEnumSlice[domain.Sexuality](f.Sexuality)
	s.Ethnicity = toEnumSlice[domain.Ethnicity](f.Ethnicity)
	s.Faith = toEnumSlice[domain.Faith](f.Faith)
	s.Format = toEnumSlice[domain.Format](f.Format)
	if f.MaxPriceInitial > 0 {
		p := f.MaxPriceInitial
		s.MaxPriceInitial = &p
	}
	if f.MaxPriceSubsequent > 0 {
		p := f.MaxPriceSubsequent
		s.MaxPriceSubsequent = &p
	}
	if f.Availability != "" {
		a := domain.Availability(f.Availability)
		s.Availability = &a
	}
	return s
}

func filtersFromDomain(s domain.FilterState) Filters {
	f := Filters{
		Sexuality: toStringSlice(s.Sexuality),
		Ethnicity: toStringSlice(s.Ethnicity),
		Faith:     toStringSlice(s.Faith),
		Format:    toStringSlice(s.Format),
	}
	if s.Gender != nil {
		f.Gender = string(*s.Gender)
	}
	if s.MaxPriceInitial != nil {
		f.MaxPriceInitial = *s.MaxPriceInitial
	}
	if s.MaxPriceSubsequent != nil {
		f.MaxPriceSubsequent = *s.MaxPriceSubsequent
	}
	if s.Availability != nil {
		f.Availability = string(*s.Availability)
	}
	return f
}

func therapistToDomain(t *Therapist) domain.CandidateRecord {
	return domain.CandidateRecord{
		ID:              t.ID,
		FirstName:       t.FirstName,
		MiddleName:      t.MiddleName,
		LastName:        t.LastName,
		Pronouns:        t.Pronouns,
		Gender:          domain.Gender(t.Gender),
		Ethnicity:       toEnumSlice[domain.Ethnicity](t.Ethnicity),
		Sexuality:       toEnumSlice[domain.Sexuality](t.Sexuality),
		Faith:           toEnumSlice[domain.Faith](t.Faith),
		Languages:       cloneStrings(t.Languages),
		Availability:    domain.Availability(t.Availability),
		Format:          toEnumSlice[domain.Format](t.Format),
		InitialPrice:    t.InitialPrice,
		SubsequentPrice: t.SubsequentPrice,
		AreasOfFocus:    cloneStrings(t.AreasOfFocus),
		Approaches:      cloneStrings(t.Approaches),
		Summary:         t.Summary,
		Bio:             t.Bio,
	}
}

func therapistFromDomain(rec *domain.CandidateRecord) Therapist {
	return Therapist{
		ID:              rec.ID,
		FirstName:       rec.FirstName,
		MiddleName:      rec.MiddleName,
		LastName:        rec.LastName,
		Pronouns:        rec.Pronouns,
		Gender:          string(rec.Gender),
		Ethnicity:       toStringSlice(rec.Ethnicity),
		Sexuality:       toStringSlice(rec.Sexuality),
		Faith:           toStringSlice(rec.Faith),
		Languages:       cloneStrings(rec.Languages),
		Availability:    string(rec.Availability),
		Format:          toStringSlice(rec.Format),
		InitialPrice:    rec.InitialPrice,
		SubsequentPrice: rec.SubsequentPrice,
		AreasOfFocus:    cloneStrings(rec.AreasOfFocus),
		Approaches:      cloneStrings(rec.Approaches),
		Summary:         rec.Summary,
		Bio:             rec.Bio,
		Similarity:      rec.Similarity,
	}
}

func toEnumSlice[T ~string](vals []string) []T {
	if len(vals) == 0 {
		return nil
	}
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

func toStringSlice[T ~string](vals []T) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
