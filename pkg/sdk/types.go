package sdk

// Message is a single conversation turn. Role is "user" or "assistant".
type Message struct {
	ID      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Filters is the per-session set of search constraints. A nil field means
// "no constraint". The service returns the effective filters with every
// match response; resubmit them on the next turn.
type Filters struct {
	Gender             *string  `json:"gender,omitempty"`
	Sexuality          []string `json:"sexuality,omitempty"`
	Ethnicity          []string `json:"ethnicity,omitempty"`
	Faith              []string `json:"faith,omitempty"`
	Format             []string `json:"format,omitempty"`
	MaxPriceInitial    *float64 `json:"max_price_initial,omitempty"`
	MaxPriceSubsequent *float64 `json:"max_price_subsequent,omitempty"`
	Availability       *string  `json:"availability,omitempty"`
}

// Therapist is a ranked profile returned by the service.
type Therapist struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	MiddleName      string   `json:"middle_name,omitempty"`
	LastName        string   `json:"last_name"`
	Pronouns        string   `json:"pronouns,omitempty"`
	Gender          string   `json:"gender"`
	Ethnicity       []string `json:"ethnicity"`
	Sexuality       []string `json:"sexuality"`
	Faith           []string `json:"faith"`
	Languages       []string `json:"languages"`
	Availability    string   `json:"availability"`
	Format          []string `json:"format"`
	InitialPrice    float64  `json:"initial_price"`
	SubsequentPrice float64  `json:"subsequent_price"`
	AreasOfFocus    []string `json:"areas_of_focus"`
	Approaches      []string `json:"approaches"`
	Summary         string   `json:"ai_summary,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Similarity      float64  `json:"similarity"`
}

// Trigger sources for a match turn.
const (
	TriggerChat = "CHAT"
	TriggerForm = "FORM"
)

// DisplayedTherapist identifies a therapist currently shown to the user.
// Sending them lets the classifier treat questions about visible therapists
// as search requests.
type DisplayedTherapist struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MatchRequest is one conversational matching turn.
type MatchRequest struct {
	ChatID            string               `json:"chatId"`
	Messages          []Message            `json:"messages"`
	Embedding         []float32            `json:"embedding,omitempty"`
	CurrentFilters    Filters              `json:"currentFilters"`
	CurrentTherapists []DisplayedTherapist `json:"currentTherapists,omitempty"`
	TriggerSource     string               `json:"triggerSource,omitempty"`
}

// MatchResponse carries ranked therapists plus the filters in effect.
type MatchResponse struct {
	Therapists []Therapist `json:"therapists"`
	Filters    Filters     `json:"filters"`
}

// HealthStatus is the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
