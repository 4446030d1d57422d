package domain

// CandidateRecord is a ranked profile returned by the similarity search.
// Read-only to the pipeline; the search store is the ordering authority.
type CandidateRecord struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"first_name"`
	MiddleName      string       `json:"middle_name,omitempty"`
	LastName        string       `json:"last_name"`
	Pronouns        string       `json:"pronouns,omitempty"`
	Gender          Gender       `json:"gender"`
	Ethnicity       []Ethnicity  `json:"ethnicity"`
	Sexuality       []Sexuality  `json:"sexuality"`
	Faith           []Faith      `json:"faith"`
	Languages       []string     `json:"languages"`
	Availability    Availability `json:"availability"`
	Format          []Format     `json:"format"`
	InitialPrice    float64      `json:"initial_price"`
	SubsequentPrice float64      `json:"subsequent_price"`
	AreasOfFocus    []string     `json:"areas_of_focus"`
	Approaches      []string     `json:"approaches"`
	Summary         string       `json:"ai_summary,omitempty"`
	Bio             string       `json:"bio,omitempty"`
	Similarity      float64      `json:"similarity"`
}

// MatchResult is the composed pipeline output: ranked candidates plus the
// filters that were in effect for the retrieval.
type MatchResult struct {
	Candidates []CandidateRecord
	Filters    FilterState
}

// IntentDecision is the classifier verdict for the newest message. Ephemeral,
// produced and consumed within one request.
type IntentDecision struct {
	IsSearchRequest bool
	Explanation     string
}

// DisplayedCandidate identifies a candidate the user is currently viewing.
// Only the id and display name travel with the request; questions referencing
// these candidates by attribute count as search requests.
type DisplayedCandidate struct {
	ID   string
	Name string
}
