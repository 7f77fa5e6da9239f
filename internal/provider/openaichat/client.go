// Package openaichat implements the provider contract over any
// OpenAI-compatible chat completions API, including the official OpenAI
// service and self-hosted relays.
package openaichat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mealweek/mealweek-cli/internal/provider"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// systemContract pins the output shape for backends that lack schema
// constraints. The JSON structure named here must stay in sync with the
// weekly plan document types.
const systemContract = "You are a professional minimalist nutritionist. Respond with a single JSON object and nothing else: no markdown fences, no commentary. The object must have exactly these keys: dailyPlans (array of 7 objects with day, breakfast, lunch, dinner; each meal has name, calories, portion), shoppingList (array of objects with name, amount), seasonings (array of strings), recipes (array of objects with dishName, ingredients, steps). Every recipe must include its ingredients field."

// Client talks to a chat completions endpoint.
type Client struct {
	Label      string
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

// Options configures a chat client. Endpoint may be a bare host, a host
// with /v1, or a full /chat/completions URL; it is normalized either way.
type Options struct {
	Label    string
	APIKey   string
	Model    string
	Endpoint string
}

func New(opts Options) *Client {
	label := opts.Label
	if label == "" {
		label = "OpenAI"
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultOpenAIBaseURL
	}
	return &Client{
		Label:      label,
		APIKey:     opts.APIKey,
		Model:      opts.Model,
		Endpoint:   NormalizeEndpoint(endpoint),
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// NormalizeEndpoint completes a partial base URL into a full chat
// completions URL. URLs that already name the completions path pass
// through unchanged.
func NormalizeEndpoint(raw string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(raw), "/")
	if strings.Contains(endpoint, "/chat/completions") {
		return endpoint
	}
	if strings.Contains(endpoint, "/v1") {
		return endpoint + "/chat/completions"
	}
	return endpoint + "/v1/chat/completions"
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt in JSON mode and returns the assistant text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemContract},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    0.4,
		MaxTokens:      4096,
	})
}

// TestConnection issues a minimal completion to verify the key, model name
// and endpoint together.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.call(ctx, chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: "reply ok"}},
		Temperature: 0,
		MaxTokens:   8,
	})
	return err
}

func (c *Client) call(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", provider.ClassifyTransport(c.Label, c.Endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", provider.WrapError(provider.CategoryNetwork, err, "%s response read failed", c.Label)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", provider.ClassifyStatus(c.Label, resp.StatusCode, c.Endpoint, respBody)
	}

	var decoded chatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", provider.WrapError(provider.CategoryDecode, err, "%s returned a response that could not be decoded", c.Label)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return "", provider.NewError(provider.CategoryDecode, "%s returned no content", c.Label)
	}
	return decoded.Choices[0].Message.Content, nil
}
