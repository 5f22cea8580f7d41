package ollama

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

type OllamaAnalyzer struct {
	host      string
	model     string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger
}

func NewOllamaAnalyzer(host, model string, maxTokens int, logger *slog.Logger) *OllamaAnalyzer {
	return &OllamaAnalyzer{
		host:      host,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{},
		logger:    logger,
	}
}

func (a *OllamaAnalyzer) Describe(ctx context.Context, img vision.Image) (*vision.Description, error) {
	// Ollama takes raw base64 without a data URL prefix.
	reqBody := map[string]interface{}{
		"model":  a.model,
		"prompt": vision.DescribePrompt,
		"images": []string{img.Base64},
		"format": "json",
		"stream": false,
		"options": map[string]interface{}{
			"num_predict": a.maxTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Error("failed to close ollama response body", "error", err)
		}
	}()

	a.logger.Info("ollama responded", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"))

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody struct {
		Response string `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &vision.Description{Raw: respBody.Response}, nil
}
