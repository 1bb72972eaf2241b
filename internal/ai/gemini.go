package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client         *genai.Client
	shortlistModel *genai.GenerativeModel
	analyzeModel   *genai.GenerativeModel
	logger         zerolog.Logger
}

// GeminiOptions configures the Gemini models.
type GeminiOptions struct {
	Model string
	// Temperature biases toward consistent, literal extraction over creative
	// variation. Keep it low.
	Temperature float32
	Logger      zerolog.Logger
}

// NewGeminiProvider initializes a new Gemini client with one model per call
// site, each forced to JSON output conforming to its response schema.
func NewGeminiProvider(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := opts.Model
	if name == "" {
		name = "gemini-2.0-flash"
	}

	shortlist := client.GenerativeModel(name)
	shortlist.ResponseMIMEType = "application/json"
	shortlist.SetTemperature(opts.Temperature)
	shortlist.ResponseSchema = shortlistSchema()

	analyze := client.GenerativeModel(name)
	analyze.ResponseMIMEType = "application/json"
	analyze.SetTemperature(opts.Temperature)
	analyze.ResponseSchema = analyzeSchema()

	return &GeminiProvider{
		client:         client,
		shortlistModel: shortlist,
		analyzeModel:   analyze,
		logger:         opts.Logger,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// SelectSuitable asks the model for the ids of group-dining-suitable venues.
func (p *GeminiProvider) SelectSuitable(ctx context.Context, criteria DiningContext, candidates []CandidateBrief) ([]string, error) {
	prompt := buildShortlistPrompt(criteria, candidates)

	raw, err := p.generate(ctx, p.shortlistModel, prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var result shortlistResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		// Malformed output counts as "no shortlist", not a hard failure.
		p.logger.Warn().Err(err).Str("raw", raw).Msg("unparseable shortlist response")
		return nil, nil
	}
	return result.PlaceIDs, nil
}

// SelectAndAnalyze asks the model to rank, pick, and analyse the shortlist.
func (p *GeminiProvider) SelectAndAnalyze(ctx context.Context, criteria DiningContext, candidates []CandidateDetail) ([]Pick, error) {
	prompt := buildAnalyzePrompt(criteria, candidates, 3)

	raw, err := p.generate(ctx, p.analyzeModel, prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var result analyzeResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		p.logger.Warn().Err(err).Str("raw", raw).Msg("unparseable analyze response")
		return nil, nil
	}
	return result.Picks, nil
}

// generate runs one prompt and returns the cleaned JSON text. An empty string
// with a nil error means the model produced no usable output.
func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return cleanJSONString(text.String()), nil
}

func shortlistSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"placeIds": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"placeIds"},
	}
}

func analyzeSchema() *genai.Schema {
	keyAspects := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"food":     {Type: genai.TypeString},
			"service":  {Type: genai.TypeString},
			"ambiance": {Type: genai.TypeString},
		},
		Required: []string{"food", "service", "ambiance"},
	}
	pick := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestion": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"restaurantName":          {Type: genai.TypeString},
					"recommendationRationale": {Type: genai.TypeString},
				},
				Required: []string{"restaurantName", "recommendationRationale"},
			},
			"analysis": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"overallSentiment":      {Type: genai.TypeString},
					"keyAspects":            keyAspects,
					"groupDiningExperience": {Type: genai.TypeString},
				},
				Required: []string{"overallSentiment", "keyAspects", "groupDiningExperience"},
			},
		},
		Required: []string{"suggestion", "analysis"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"picks": {Type: genai.TypeArray, Items: pick},
		},
		Required: []string{"picks"},
	}
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
