package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/radhe-ai/ravi/internal/config"
)

const maxErrorBody = 512

// NewGenerator builds the Generator for cfg.Provider.
// Returns (nil, nil) when apiKey is empty: the caller runs in demo mode.
func NewGenerator(cfg config.InsightConfig, apiKey string, httpClient *http.Client) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return &GeminiClient{BaseURL: cfg.BaseURL, Model: cfg.Model, APIKey: apiKey, HTTP: httpClient}, nil
	case "openai":
		return &OpenAIClient{BaseURL: cfg.BaseURL, Model: cfg.Model, APIKey: apiKey, HTTP: httpClient}, nil
	default:
		return nil, fmt.Errorf("unknown insight provider %q", cfg.Provider)
	}
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/models/" + url.PathEscape(c.Model) + ":generateContent"
	body, err := postJSON(ctx, c.HTTP, endpoint, map[string]string{"x-goog-api-key": c.APIKey}, reqBody)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &RequestError{Op: "unmarshal response", Err: err}
	}
	if resp.Error != nil {
		return "", &RequestError{Op: "gemini", Err: errors.New(resp.Error.Message)}
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

// OpenAIClient calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIClient struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	body, err := postJSON(ctx, c.HTTP, endpoint, map[string]string{"Authorization": "Bearer " + c.APIKey}, reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &RequestError{Op: "unmarshal response", Err: err}
	}
	if resp.Error != nil {
		return "", &RequestError{Op: "chat completions", Err: errors.New(resp.Error.Message)}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &RequestError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RequestError{Op: "http request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: "read response", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &RequestError{Op: "API error", StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	return respBody, nil
}
