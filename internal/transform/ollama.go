package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valpere/tarjim/internal/postprocess"
)

// DefaultOllamaURL is the local Ollama endpoint.
const DefaultOllamaURL = "http://localhost:11434"

type ollamaRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt,omitempty"`
	Stream    bool   `json:"stream"`
	KeepAlive *int   `json:"keep_alive,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// ollamaClient is the HTTP plumbing shared by the Ollama-backed translator
// and summarizer.
type ollamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func newOllamaClient(baseURL, model string) ollamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return ollamaClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *ollamaClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return postprocess.Clean(out.Response), nil
}

// ReleaseMemory asks Ollama to unload the model by issuing a generation
// request with keep_alive set to zero. Supported since Ollama 0.1.23; on
// older servers the call fails harmlessly.
func (c *ollamaClient) ReleaseMemory(ctx context.Context) error {
	zero := 0
	reqBody := ollamaRequest{
		Model:     c.model,
		Stream:    false,
		KeepAlive: &zero,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal unload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create unload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unload request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

// OllamaTranslator translates review texts through a local Ollama model, one
// generation per text.
type OllamaTranslator struct {
	ollamaClient
	sourceLang string
	targetLang string
}

func NewOllamaTranslator(baseURL, model, sourceLang, targetLang string) *OllamaTranslator {
	return &OllamaTranslator{
		ollamaClient: newOllamaClient(baseURL, model),
		sourceLang:   sourceLang,
		targetLang:   targetLang,
	}
}

func (t *OllamaTranslator) Name() string {
	return "ollama-translate"
}

func (t *OllamaTranslator) Transform(ctx context.Context, texts []string, _ Options) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		translated, err := t.generate(ctx, buildTranslationPrompt(t.sourceLang, t.targetLang, text))
		if err != nil {
			return nil, fmt.Errorf("%s: text %d/%d: %w", t.Name(), i+1, len(texts), err)
		}
		out[i] = translated
	}
	return out, nil
}

func buildTranslationPrompt(sourceLang, targetLang, text string) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.
Only respond with the translation, nothing else.

Text: "%s"

Translation:`, sourceLang, targetLang, text)
}

// OllamaSummarizer condenses over-long translations through a local Ollama
// model.
type OllamaSummarizer struct {
	ollamaClient
}

func NewOllamaSummarizer(baseURL, model string) *OllamaSummarizer {
	return &OllamaSummarizer{ollamaClient: newOllamaClient(baseURL, model)}
}

func (s *OllamaSummarizer) Name() string {
	return "ollama-summarize"
}

func (s *OllamaSummarizer) Transform(ctx context.Context, texts []string, opts Options) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		summary, err := s.generate(ctx, buildSummaryPrompt(text, opts))
		if err != nil {
			return nil, fmt.Errorf("%s: text %d/%d: %w", s.Name(), i+1, len(texts), err)
		}
		out[i] = summary
	}
	return out, nil
}

func buildSummaryPrompt(text string, opts Options) string {
	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = 300
	}
	minWords := opts.MinWords
	if minWords <= 0 {
		minWords = 5
	}
	// Aim under the limit so model overshoot usually still lands inside it.
	targetWords := maxWords * 8 / 10

	return fmt.Sprintf(`You are an editor condensing a game review.

Rewrite the review below in about %d words (never more than %d, at least %d).
Keep the reviewer's opinions, judgments, and tone. Drop repetition and
plot retelling. Do not add opinions of your own.

Review:
%s

Output only the condensed review, nothing else.`, targetWords, maxWords, minWords, text)
}
