package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mealweek/mealweek-cli/internal/provider"
	"github.com/mealweek/mealweek-cli/internal/provider/gemini"
)

func newClient(srv *httptest.Server) *gemini.Client {
	c := gemini.New("test-key")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + strconvQuote(text) + `}]}}]}`
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateSendsSchemaConstrainedRequest(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("x-goog-api-key header = %q, want test-key", r.Header.Get("x-goog-api-key"))
		}
		if r.URL.RawQuery != "" {
			t.Errorf("query string = %q, want the key kept out of the URL", r.URL.RawQuery)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, candidateResponse(`{"dailyPlans":[]}`))
	}))
	defer srv.Close()

	got, err := newClient(srv).Generate(context.Background(), "plan please")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != `{"dailyPlans":[]}` {
		t.Fatalf("Generate = %q, want candidate text", got)
	}

	cfg, ok := gotBody["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("request missing generationConfig: %v", gotBody)
	}
	if cfg["responseMimeType"] != "application/json" {
		t.Errorf("responseMimeType = %v, want application/json", cfg["responseMimeType"])
	}
	if cfg["temperature"] != 0.4 {
		t.Errorf("temperature = %v, want 0.4", cfg["temperature"])
	}
	if cfg["maxOutputTokens"] != float64(4096) {
		t.Errorf("maxOutputTokens = %v, want 4096", cfg["maxOutputTokens"])
	}
	schema, ok := cfg["responseSchema"].(map[string]any)
	if !ok {
		t.Fatalf("request missing responseSchema")
	}
	if schema["type"] != "OBJECT" {
		t.Errorf("schema type = %v, want OBJECT", schema["type"])
	}
	props, _ := schema["properties"].(map[string]any)
	for _, key := range []string{"dailyPlans", "shoppingList", "seasonings", "recipes"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}

func TestGenerateClassifiesInvalidKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"API key not valid. Please pass a valid API key."}}`)
	}))
	defer srv.Close()

	_, err := newClient(srv).Generate(context.Background(), "plan")
	if err == nil {
		t.Fatal("Generate succeeded, want error")
	}
	if got := provider.CategoryOf(err); got != provider.CategoryInvalidKey {
		t.Fatalf("category = %v, want invalid credential", got)
	}
	if provider.Retryable(err) {
		t.Fatal("invalid key must not be retryable")
	}
}

func TestGenerateClassifiesOverload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":{"message":"The model is overloaded. Please try again later."}}`)
	}))
	defer srv.Close()

	_, err := newClient(srv).Generate(context.Background(), "plan")
	if got := provider.CategoryOf(err); got != provider.CategoryUnavailable {
		t.Fatalf("category = %v, want service unavailable", got)
	}
	if !provider.Retryable(err) {
		t.Fatal("overload must be retryable")
	}
}

func TestErrorMessagesNeverContainAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := gemini.New("sk-secret-123")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()

	_, err := c.Generate(context.Background(), "plan")
	if err == nil {
		t.Fatal("Generate succeeded against a 404 endpoint")
	}
	if got := provider.CategoryOf(err); got != provider.CategoryBadEndpoint {
		t.Fatalf("category = %v, want malformed endpoint", got)
	}
	if strings.Contains(err.Error(), "sk-secret-123") {
		t.Fatalf("error message leaks the API key: %q", err.Error())
	}
	if !strings.Contains(err.Error(), srv.URL) {
		t.Fatalf("error message should still name the endpoint tried: %q", err.Error())
	}
}

func TestGenerateEmptyCandidatesIsDecodeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	_, err := newClient(srv).Generate(context.Background(), "plan")
	if got := provider.CategoryOf(err); got != provider.CategoryDecode {
		t.Fatalf("category = %v, want response decode failure", got)
	}
}

func TestTestConnectionOmitsSchema(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		if _, ok := body["generationConfig"]; ok {
			t.Error("connection test should not send generationConfig")
		}
		io.WriteString(w, candidateResponse("ok"))
	}))
	defer srv.Close()

	if err := newClient(srv).TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
}
