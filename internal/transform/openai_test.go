package transform

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type mockChatCompleter struct {
	completeFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	calls        int
}

func (m *mockChatCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.calls++
	return m.completeFunc(ctx, req)
}

func TestOpenAISummarizer_Transform(t *testing.T) {
	mock := &mockChatCompleter{
		completeFunc: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			if req.Model != "gpt-4o-mini" {
				t.Errorf("expected default model, got %s", req.Model)
			}
			if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "long review") {
				t.Error("prompt should embed the review text")
			}
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: `"a condensed review"`}},
				},
			}, nil
		},
	}
	s := &OpenAISummarizer{client: mock, model: defaultOpenAIModel}

	out, err := s.Transform(context.Background(), []string{"long review one", "long review two"}, Options{MaxWords: 300})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("expected 2 completion calls, got %d", mock.calls)
	}
	if out[0] != "a condensed review" {
		t.Errorf("expected quote wrapping stripped, got %q", out[0])
	}
}

func TestOpenAISummarizer_Transform_Error(t *testing.T) {
	mock := &mockChatCompleter{
		completeFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, errors.New("rate limited")
		},
	}
	s := &OpenAISummarizer{client: mock, model: defaultOpenAIModel}

	_, err := s.Transform(context.Background(), []string{"a"}, Options{})
	if err == nil {
		t.Fatal("expected whole-call failure")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should wrap the cause: %v", err)
	}
}

func TestOpenAISummarizer_Transform_EmptyChoices(t *testing.T) {
	mock := &mockChatCompleter{
		completeFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, nil
		},
	}
	s := &OpenAISummarizer{client: mock, model: defaultOpenAIModel}

	_, err := s.Transform(context.Background(), []string{"a"}, Options{})
	if err == nil {
		t.Fatal("expected error on empty choices")
	}
}
