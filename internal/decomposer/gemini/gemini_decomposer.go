package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"recipekit/internal/config"
	"recipekit/internal/decomposer"
	"recipekit/internal/domain"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Decomposer implements port.IngredientDecomposer using Google's Gemini API.
type Decomposer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewDecomposer creates a Gemini-based decomposer.
func NewDecomposer(cfg *config.ProviderConfig) *Decomposer {
	return newDecomposer(cfg, "")
}

// NewDecomposerWithEndpoint creates a decomposer pointing at a custom API endpoint (for testing).
func NewDecomposerWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Decomposer {
	return newDecomposer(cfg, endpoint)
}

func newDecomposer(cfg *config.ProviderConfig, endpoint string) *Decomposer {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Decomposer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (d *Decomposer) Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": decomposer.BuildPrompt(lines)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  4096,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling gemini API")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := errors.Newf("gemini API error (status %d): %s", resp.StatusCode, decomposer.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, decomposer.NewRateLimitError("gemini", len(lines), baseErr, decomposer.RetryAfter(resp.Header, time.Now()))
		}
		return nil, baseErr
	}

	return parseResponse(respBody, len(lines))
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte, expected int) ([]domain.RawDecomposition, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "unmarshaling response")
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("empty response from API: no candidates")
	}

	if resp.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, errors.New("output truncated (finishReason: MAX_TOKENS)")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty response from API: no parts")
	}

	return decomposer.ParseIngredientsJSON(resp.Candidates[0].Content.Parts[0].Text, expected)
}
