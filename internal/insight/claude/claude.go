package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/lookbook/internal/insight"
)

const DefaultModel = "claude-3-5-haiku-latest"

// maxTokens leaves room for two sentences in either language.
const maxTokens = 300

type ClaudeSummarizer struct {
	client *anthropic.Client
	model  string
}

// NewClaudeSummarizer creates a summarizer talking to the Anthropic API. An
// empty baseURL uses the public endpoint.
func NewClaudeSummarizer(apiKey, model, baseURL string) *ClaudeSummarizer {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}
	return &ClaudeSummarizer{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (s *ClaudeSummarizer) Summarize(ctx context.Context, p insight.Profile) (string, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(s.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(insight.Prompt(p)),
		},
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude returned %s: %s", apiErr.Type, apiErr.Message)
		}
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			if text := strings.TrimSpace(c.GetText()); text != "" {
				return text, nil
			}
		}
	}
	return "", errors.New("claude returned no text")
}
