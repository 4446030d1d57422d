package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/tamarack-health/matchd/internal/domain"
	"github.com/tamarack-health/matchd/internal/metrics"
)

// Metric step labels for the two completion calls.
const (
	stepIntent  = "intent"
	stepExtract = "extract"
)

// NLPEngine runs the intent classifier and the filter extractor against an
// OpenAI-compatible chat completions API with JSON-schema response formats.
type NLPEngine struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NLPConfig holds the chat completion provider settings.
type NLPConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewNLPEngine creates a chat completion provider.
func NewNLPEngine(cfg *NLPConfig) *NLPEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &NLPEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (n *NLPEngine) HealthCheck(ctx context.Context) error {
	if _, err := n.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// ClassifyIntent decides whether the message is asking for therapists. The
// displayed candidates are rendered into the prompt so questions about them
// classify as search requests.
func (n *NLPEngine) ClassifyIntent(
	ctx context.Context, userMessage string, firstMessage bool, displayed []domain.DisplayedCandidate,
) (domain.IntentDecision, error) {
	content, err := n.complete(ctx, stepIntent, classifierSystemPrompt(firstMessage, displayed), userMessage, intentSchema())
	if err != nil {
		return domain.IntentDecision{}, err
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.IntentDecision{}, fmt.Errorf(
			"parse intent response: %v: %w", err, domain.ErrNLPProviderError)
	}

	return domain.IntentDecision{
		IsSearchRequest: payload.IsTherapistRequest,
		Explanation:     payload.Explanation,
	}, nil
}

// ExtractFilters pulls preference assertions out of the message. Fields the
// model returns as null come back absent so they never clear prior state.
func (n *NLPEngine) ExtractFilters(
	ctx context.Context, userMessage string, current domain.FilterState, fromForm bool,
) (domain.Update, error) {
	content, err := n.complete(ctx, stepExtract, extractorSystemPrompt(current, fromForm), userMessage, filterSchema())
	if err != nil {
		return domain.Update{}, err
	}

	var payload filterPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.Update{}, fmt.Errorf(
			"parse filter response: %v: %w", err, domain.ErrNLPProviderError)
	}

	return payload.toUpdate(), nil
}

func (n *NLPEngine) complete(
	ctx context.Context, step, systemPrompt, userMessage string, schema *responseSchema,
) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schema.name,
				Schema: schema.definition,
			},
		},
	}

	start := time.Now()
	resp, err := n.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(step, n.model, "error").Inc()
		return "", parseAPIError(step, err, domain.ErrNLPProviderError)
	}

	metrics.LLMRequestsTotal.WithLabelValues(step, n.model, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(step, n.model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(step, n.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensTotal.WithLabelValues(step, n.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.LLMTokensTotal.WithLabelValues(step, n.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrNLPProviderError)
	}

	return resp.Choices[0].Message.Content, nil
}

// responseSchema pairs a schema name with its JSON-schema definition.
type responseSchema struct {
	name       string
	definition *jsonschema.Definition
}

type intentPayload struct {
	IsTherapistRequest bool   `json:"is_therapist_request"`
	Explanation        string `json:"explanation"`
}

// filterPayload is the extractor wire format. Pointers and nil slices keep
// null distinguishable from a value, so unmentioned fields stay absent.
type filterPayload struct {
	Gender             *string  `json:"gender"`
	Sexuality          []string `json:"sexuality"`
	Ethnicity          []string `json:"ethnicity"`
	Faith              []string `json:"faith"`
	Format             []string `json:"format"`
	MaxPriceInitial    *float64 `json:"max_price_initial"`
	MaxPriceSubsequent *float64 `json:"max_price_subsequent"`
	Availability       *string  `json:"availability"`
	Reasoning          string   `json:"reasoning"`
}

// toUpdate converts the wire payload into a domain Update. Unknown enum
// values and non-positive prices degrade to absent rather than failing.
func (p *filterPayload) toUpdate() domain.Update {
	u := domain.Update{Reasoning: p.Reasoning}

	if p.Gender != nil {
		if g, ok := domain.ParseGender(*p.Gender); ok {
			u.Gender = domain.SetOpt(g)
		}
	}
	if vals := domain.ParseSexualitySet(p.Sexuality); len(vals) > 0 {
		u.Sexuality = domain.SetOpt(vals)
	}
	if vals := domain.ParseEthnicitySet(p.Ethnicity); len(vals) > 0 {
		u.Ethnicity = domain.SetOpt(vals)
	}
	if vals := domain.ParseFaithSet(p.Faith); len(vals) > 0 {
		u.Faith = domain.SetOpt(vals)
	}
	if vals := domain.ParseFormatSet(p.Format); len(vals) > 0 {
		u.Format = domain.SetOpt(vals)
	}
	if p.MaxPriceInitial != nil && *p.MaxPriceInitial > 0 {
		u.MaxPriceInitial = domain.SetOpt(*p.MaxPriceInitial)
	}
	if p.MaxPriceSubsequent != nil && *p.MaxPriceSubsequent > 0 {
		u.MaxPriceSubsequent = domain.SetOpt(*p.MaxPriceSubsequent)
	}
	if p.Availability != nil {
		if a, ok := domain.ParseAvailability(*p.Availability); ok {
			u.Availability = domain.SetOpt(a)
		}
	}

	return u
}

func intentSchema() *responseSchema {
	return &responseSchema{
		name: "answer",
		definition: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"is_therapist_request": {Type: jsonschema.Boolean},
				"explanation":          {Type: jsonschema.String},
			},
			Required: []string{"is_therapist_request", "explanation"},
		},
	}
}

func filterSchema() *responseSchema {
	enumArray := func(vals []string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String, Enum: vals},
		}
	}

	return &responseSchema{
		name: "filters",
		definition: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"gender":               {Type: jsonschema.String, Enum: genderValues()},
				"sexuality":            enumArray(sexualityValues()),
				"ethnicity":            enumArray(ethnicityValues()),
				"faith":                enumArray(faithValues()),
				"format":               enumArray(formatValues()),
				"max_price_initial":    {Type: jsonschema.Number},
				"max_price_subsequent": {Type: jsonschema.Number},
				"availability":         {Type: jsonschema.String, Enum: availabilityValues()},
				"reasoning":            {Type: jsonschema.String},
			},
			Required: []string{"reasoning"},
		},
	}
}

func genderValues() []string {
	return []string{"female", "male", "non_binary"}
}

func sexualityValues() []string {
	return []string{
		"straight", "gay", "lesbian", "bisexual", "queer",
		"pansexual", "asexual", "questioning", "prefer_not_to_say",
	}
}

func ethnicityValues() []string {
	return []string{
		"asian", "black", "hispanic", "indigenous", "middle_eastern",
		"pacific_islander", "white", "multiracial", "prefer_not_to_say",
	}
}

func faithValues() []string {
	return []string{
		"christian", "jewish", "muslim", "hindu", "buddhist", "sikh",
		"atheist", "agnostic", "spiritual", "other", "prefer_not_to_say",
	}
}

func availabilityValues() []string {
	return []string{"online", "in_person", "both"}
}

func formatValues() []string {
	return []string{"individual", "couples", "family"}
}
