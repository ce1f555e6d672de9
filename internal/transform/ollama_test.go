package transform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaTranslator_Transform(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "llama3.2" {
			t.Errorf("expected model llama3.2, got %s", req.Model)
		}
		prompts = append(prompts, req.Prompt)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "translated text"})
	}))
	defer server.Close()

	tr := NewOllamaTranslator(server.URL, "llama3.2", "ar", "en")

	out, err := tr.Transform(context.Background(), []string{"نص أول", "نص ثان"}, Options{})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(out))
	}
	for i, got := range out {
		if got != "translated text" {
			t.Errorf("output %d = %q, want %q", i, got, "translated text")
		}
	}
	if len(prompts) != 2 {
		t.Fatalf("expected 2 generation calls, got %d", len(prompts))
	}
	if !strings.Contains(prompts[0], "نص أول") {
		t.Error("first prompt should contain the first text")
	}
	if !strings.Contains(prompts[0], "from ar to en") {
		t.Error("prompt should name the language pair")
	}
}

func TestOllamaTranslator_Transform_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tr := NewOllamaTranslator(server.URL, "llama3.2", "ar", "en")

	_, err := tr.Transform(context.Background(), []string{"a", "b"}, Options{})
	if err == nil {
		t.Fatal("expected whole-call failure on server error")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestOllamaSummarizer_Transform_PromptBounds(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		prompt = req.Prompt
		json.NewEncoder(w).Encode(ollamaResponse{Response: "Here is a condensed version: short opinion"})
	}))
	defer server.Close()

	s := NewOllamaSummarizer(server.URL, "llama3.2")

	out, err := s.Transform(context.Background(), []string{"a very long review"}, Options{MinWords: 5, MaxWords: 300})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// 80% of the max is the requested target.
	if !strings.Contains(prompt, "about 240 words") {
		t.Errorf("prompt should target 240 words: %q", prompt)
	}
	if !strings.Contains(prompt, "never more than 300") {
		t.Errorf("prompt should carry the hard limit: %q", prompt)
	}

	// Echo prefix must be stripped before the result is measured.
	if out[0] != "short opinion" {
		t.Errorf("expected cleaned output, got %q", out[0])
	}
}

func TestOllamaClient_ReleaseMemory(t *testing.T) {
	var gotKeepAlive *int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		gotKeepAlive = req.KeepAlive
		json.NewEncoder(w).Encode(ollamaResponse{})
	}))
	defer server.Close()

	s := NewOllamaSummarizer(server.URL, "llama3.2")

	if err := s.ReleaseMemory(context.Background()); err != nil {
		t.Fatalf("ReleaseMemory failed: %v", err)
	}
	if gotKeepAlive == nil || *gotKeepAlive != 0 {
		t.Errorf("expected keep_alive 0, got %v", gotKeepAlive)
	}
}
