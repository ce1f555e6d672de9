package transform

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/valpere/tarjim/internal/postprocess"
)

const defaultOpenAIModel = "gpt-4o-mini"

// chatCompleter is the slice of the OpenAI client the summarizer needs.
// *openai.Client implements it; tests inject a mock.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAISummarizer condenses over-long translations through the OpenAI chat
// completion API.
type OpenAISummarizer struct {
	client chatCompleter
	model  string
}

func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (s *OpenAISummarizer) Name() string {
	return "openai-summarize"
}

func (s *OpenAISummarizer) Transform(ctx context.Context, texts []string, opts Options) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: buildSummaryPrompt(text, opts)},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: text %d/%d: %w", s.Name(), i+1, len(texts), err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("%s: text %d/%d: empty response", s.Name(), i+1, len(texts))
		}
		out[i] = postprocess.Clean(resp.Choices[0].Message.Content)
	}
	return out, nil
}
