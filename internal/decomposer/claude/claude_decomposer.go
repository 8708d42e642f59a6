package claude

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
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Decomposer implements port.IngredientDecomposer using the Anthropic Messages API.
type Decomposer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewDecomposer creates a Claude-based decomposer from a provider config.
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
		model = "claude-sonnet-4-20250514"
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
		"model":      d.model,
		"max_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": decomposer.BuildPrompt(lines),
			},
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
	req.Header.Set("x-api-key", d.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling anthropic API")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := errors.Newf("anthropic API error (status %d): %s", resp.StatusCode, decomposer.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, decomposer.NewRateLimitError("claude", len(lines), baseErr, decomposer.RetryAfter(resp.Header, time.Now()))
		}
		return nil, baseErr
	}

	return parseResponse(respBody, len(lines))
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, expected int) ([]domain.RawDecomposition, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "unmarshaling response")
	}

	if len(resp.Content) == 0 {
		return nil, errors.New("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return nil, errors.New("output truncated (stop_reason: max_tokens): response exceeded output token limit")
	}

	return decomposer.ParseIngredientsJSON(resp.Content[0].Text, expected)
}
