package transform

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleTranslator translates a whole batch in a single Google Cloud
// Translation call.
type GoogleTranslator struct {
	credentials string
	source      language.Tag
	target      language.Tag
}

func NewGoogleTranslator(credentialsFile, sourceLang, targetLang string) (*GoogleTranslator, error) {
	source, err := language.Parse(sourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language: %w", err)
	}
	target, err := language.Parse(targetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language: %w", err)
	}
	return &GoogleTranslator{
		credentials: credentialsFile,
		source:      source,
		target:      target,
	}, nil
}

func (t *GoogleTranslator) Name() string {
	return "google"
}

func (t *GoogleTranslator) Transform(ctx context.Context, texts []string, _ Options) ([]string, error) {
	opts := []option.ClientOption{}
	if t.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(t.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, texts, t.target, &translate.Options{
		Source: t.source,
	})
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) != len(texts) {
		return nil, fmt.Errorf("google returned %d translations for %d texts", len(translations), len(texts))
	}

	out := make([]string, len(translations))
	for i, tr := range translations {
		out[i] = tr.Text
	}
	return out, nil
}
