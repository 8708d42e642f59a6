package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"recipekit/internal/config"
	"recipekit/internal/decomposer"
	"recipekit/internal/domain"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Decomposer implements port.IngredientDecomposer using the OpenAI Chat Completions API.
type Decomposer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewDecomposer creates an OpenAI-based decomposer from a provider config.
func NewDecomposer(cfg *config.ProviderConfig) *Decomposer {
	return newDecomposer(cfg, apiURL)
}

// NewDecomposerWithEndpoint creates a decomposer pointing at a custom API endpoint (for testing).
func NewDecomposerWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Decomposer {
	return newDecomposer(cfg, endpoint)
}

func newDecomposer(cfg *config.ProviderConfig, endpoint string) *Decomposer {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
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
		"model":                 d.model,
		"max_completion_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": decomposer.BuildPrompt(lines),
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
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
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling openai API")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := errors.Newf("openai API error (status %d): %s", resp.StatusCode, decomposer.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, decomposer.NewRateLimitError("openai", len(lines), baseErr, decomposer.RetryAfter(resp.Header, time.Now()))
		}
		return nil, baseErr
	}

	return parseResponse(respBody, len(lines))
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, expected int) ([]domain.RawDecomposition, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "unmarshaling response")
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, errors.New("output truncated (finish_reason: length): response exceeded output token limit")
	}

	return decomposer.ParseIngredientsJSON(resp.Choices[0].Message.Content, expected)
}
