package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/pokeframe/internal/vision"
)

const (
	DefaultEndpoint  = "https://api.openai.com/v1/chat/completions"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	defaultMaxTokens = 300
)

// dataURLMediaType labels the embedded image in the data URL. The endpoint
// sniffs the actual bytes, so the PNG upload is sent under this label.
const dataURLMediaType = "image/jpeg"

// request types mirror the chat completions API structure.
type request struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []message      `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type message struct {
	Role    string `json:"role"`
	Content []part `json:"content"`
}

type part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Option func(*OpenAIAnalyzer)

// WithEndpoint overrides the chat completions URL.
func WithEndpoint(url string) Option {
	return func(a *OpenAIAnalyzer) { a.endpoint = url }
}

// WithAPIKeyEnv names the environment variable holding the bearer token.
func WithAPIKeyEnv(name string) Option {
	return func(a *OpenAIAnalyzer) { a.apiKeyEnv = name }
}

func WithMaxTokens(n int) Option {
	return func(a *OpenAIAnalyzer) { a.maxTokens = n }
}

func WithHTTPClient(c *http.Client) Option {
	return func(a *OpenAIAnalyzer) { a.client = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *OpenAIAnalyzer) { a.logger = l }
}

type OpenAIAnalyzer struct {
	model     string
	endpoint  string
	apiKeyEnv string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger
}

func NewOpenAIAnalyzer(model string, opts ...Option) *OpenAIAnalyzer {
	a := &OpenAIAnalyzer{
		model:     model,
		endpoint:  DefaultEndpoint,
		apiKeyEnv: DefaultAPIKeyEnv,
		maxTokens: defaultMaxTokens,
		client:    &http.Client{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func buildRequest(model string, maxTokens int, img vision.Image) request {
	return request{
		Model:          model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []message{{
			Role: "user",
			Content: []part{
				{Type: "text", Text: vision.DescribePrompt},
				{
					Type:     "image_url",
					ImageURL: &imageURL{URL: "data:" + dataURLMediaType + ";base64," + img.Base64},
				},
			},
		}},
		MaxTokens: maxTokens,
	}
}

// Describe sends one chat completion request for img and returns the content
// of the first choice. The API key is read from the environment on every
// call; if it is missing no request is made.
func (a *OpenAIAnalyzer) Describe(ctx context.Context, img vision.Image) (*vision.Description, error) {
	apiKey, err := vision.LookupCredential(a.apiKeyEnv)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(buildRequest(a.model, a.maxTokens, img))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call openai: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Error("failed to close openai response body", "error", err)
		}
	}()

	a.logger.Info("openai responded", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(respBody.Choices) == 0 {
		return nil, fmt.Errorf("openai response has no choices")
	}

	content := respBody.Choices[0].Message.Content
	a.logger.Debug("openai content", "content", content)
	return &vision.Description{Raw: content}, nil
}
