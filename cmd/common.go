/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/valpere/tarjim/internal/pipeline"
	"github.com/valpere/tarjim/internal/transform"
)

const (
	defaultTranslationModel   = "aya:35b"
	defaultSummarizationModel = "gemma2:27b"
)

// buildTranslator constructs the translation provider from CLI parameters.
func buildTranslator(provider, model, baseURL, googleCredentials, sourceLang, targetLang string) (transform.Transformer, error) {
	switch provider {
	case "ollama":
		return transform.NewOllamaTranslator(baseURL, model, sourceLang, targetLang), nil
	case "google":
		return transform.NewGoogleTranslator(googleCredentials, sourceLang, targetLang)
	default:
		return nil, fmt.Errorf("unknown translator: %s (supported: ollama, google)", provider)
	}
}

// buildSummarizer constructs the summarization provider from CLI parameters.
func buildSummarizer(provider, model, baseURL, openaiKey string) (transform.Transformer, error) {
	switch provider {
	case "ollama":
		return transform.NewOllamaSummarizer(baseURL, model), nil
	case "openai":
		if openaiKey == "" {
			openaiKey = os.Getenv("OPENAI_API_KEY")
		}
		if openaiKey == "" {
			return nil, fmt.Errorf("openai summarizer requires an API key")
		}
		return transform.NewOpenAISummarizer(openaiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown summarizer: %s (supported: ollama, openai)", provider)
	}
}

// printSummary writes the run statistics to stdout in the audit format.
func printSummary(sum *pipeline.Summary) {
	fmt.Println()
	fmt.Println("=== Processing Summary ===")
	fmt.Printf("Total records:     %d\n", sum.Total)
	fmt.Printf("Succeeded:         %d\n", sum.OK)
	fmt.Printf("Failed:            %d\n", sum.Failed)
	if sum.Failed > 0 {
		fmt.Printf("Failed indices:    %v\n", sum.SortedFailedIndices())
	}
	if sum.OK > 0 {
		fmt.Println()
		fmt.Println("Word counts (succeeded records):")
		fmt.Printf("  Average:         %.1f\n", sum.AvgWordCount())
		fmt.Printf("  Min:             %d\n", sum.MinWordCount)
		fmt.Printf("  Max:             %d\n", sum.MaxWordCount)
		fmt.Printf("  Below %d words:   %d\n", sum.MinWords, sum.Below)
		fmt.Printf("  Within range:    %d (%.1f%%)\n", sum.Within, sum.WithinPct())
		fmt.Printf("  Above %d words: %d\n", sum.MaxWords, sum.Above)
	}
}
