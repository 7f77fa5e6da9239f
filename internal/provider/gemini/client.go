// Package gemini implements the provider contract over the Google
// generative language REST API using schema-constrained JSON output.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mealweek/mealweek-cli/internal/provider"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"

	label = "Gemini"
)

// Client talks to the generateContent endpoint.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		Model:      defaultModel,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt with the weekly-plan response schema attached
// and returns the model's raw JSON text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, prompt, &generationConfig{
		Temperature:      0.4,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		ResponseSchema:   weeklyPlanSchema,
	})
}

// TestConnection issues a tiny unconstrained request to verify the key and
// endpoint without spending meaningful tokens.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.call(ctx, "reply ok", nil)
	return err
}

func (c *Client) call(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	// The key travels in a header, never in the URL: the endpoint ends up
	// in classified error messages shown to the user.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", provider.ClassifyTransport(label, c.BaseURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", provider.WrapError(provider.CategoryNetwork, err, "%s response read failed", label)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", provider.ClassifyStatus(label, resp.StatusCode, endpoint, respBody)
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", provider.WrapError(provider.CategoryDecode, err, "%s returned a response that could not be decoded", label)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 ||
		decoded.Candidates[0].Content.Parts[0].Text == "" {
		return "", provider.NewError(provider.CategoryDecode, "%s returned no content", label)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
