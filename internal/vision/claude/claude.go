package claude

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/pokeframe/internal/vision"
)

const DefaultAPIKeyEnv = "CLAUDE_API_KEY"

type ClaudeAnalyzer struct {
	model     string
	maxTokens int
	apiKeyEnv string
	baseURL   string
	logger    *slog.Logger
}

func NewClaudeAnalyzer(model string, maxTokens int, logger *slog.Logger) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		model:     model,
		maxTokens: maxTokens,
		apiKeyEnv: DefaultAPIKeyEnv,
		logger:    logger,
	}
}

// newClient builds a client for one request so that the key is read from the
// environment at call time.
func (a *ClaudeAnalyzer) newClient(apiKey string) *anthropic.Client {
	var opts []anthropic.ClientOption
	if a.baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(a.baseURL))
	}
	return anthropic.NewClient(apiKey, opts...)
}

func (a *ClaudeAnalyzer) Describe(ctx context.Context, img vision.Image) (*vision.Description, error) {
	apiKey, err := vision.LookupCredential(a.apiKeyEnv)
	if err != nil {
		return nil, err
	}

	resp, err := a.newClient(apiKey).CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.Message{{
			Role: anthropic.RoleUser,
			Content: []anthropic.MessageContent{
				anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
					anthropic.MessagesContentSourceTypeBase64,
					normaliseMIME(img.MediaType),
					img.Base64,
				)),
				anthropic.NewTextMessageContent(vision.DescribePrompt),
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			a.logger.Info("claude responded", "model", a.model, "stop_reason", resp.StopReason)
			return &vision.Description{Raw: c.GetText()}, nil
		}
	}
	return nil, fmt.Errorf("claude response has no text content")
}

// normaliseMIME maps media types to the values the Anthropic API accepts.
// Unknown types are coerced to jpeg.
func normaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
