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
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/tarjim/internal"
	"github.com/valpere/tarjim/internal/checkpoint"
	"github.com/valpere/tarjim/internal/dataset"
	"github.com/valpere/tarjim/internal/pipeline"
	"github.com/valpere/tarjim/internal/store"
	"github.com/valpere/tarjim/internal/transform"
	"github.com/valpere/tarjim/internal/validator"
)

var (
	processInput      string
	processOutput     string
	processColumn     string
	processLogPath    string
	processResume     bool
	processConfigFile string

	processTranslator         string
	processSummarizer         string
	processTranslationModel   string
	processSummarizationModel string
	processSourceLang         string
	processTargetLang         string
	processDevice             string

	processBatchSize    int
	processMinWords     int
	processMaxWords     int
	processReclaimEvery int

	processOllamaURL         string
	processOpenAIKey         string
	processGoogleCredentials string

	processDBPath   string
	processNoCache  bool
	processValidate bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Translate and condense a CSV dataset of text records",
	Long: `Process a CSV dataset through the two-stage pipeline: translate the chosen
column, then summarize any translation longer than the maximum word count.
Short translations pass through verbatim.

Every finished record is appended to the checkpoint log before the next batch
starts. If the run is interrupted, rerun with --resume to skip records whose
indices already appear in the log.

All flags can also be set via TARJIM_* environment variables or a config file,
for example TARJIM_BATCH_SIZE=16 or TARJIM_OPENAI_KEY=sk-...

Example:
  tarjim process -i reviews.csv -c review_text --log checkpoint.jsonl
  tarjim process -i reviews.csv -c review_text --log checkpoint.jsonl --resume
  tarjim process -i reviews.csv -o out.csv -c review_text --summarizer openai`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		v.SetEnvPrefix("TARJIM")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
		if processConfigFile != "" {
			v.SetConfigFile(processConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}

		input := v.GetString("input")
		output := v.GetString("output")
		column := v.GetString("column")
		logPath := v.GetString("log")

		if input == "" {
			return fmt.Errorf("input file is required")
		}
		if input == output {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		cfg := pipeline.Config{
			TranslationModel:   v.GetString("translation-model"),
			SummarizationModel: v.GetString("summarization-model"),
			Device:             v.GetString("device"),
			BatchSize:          v.GetInt("batch-size"),
			MinWords:           v.GetInt("min-words"),
			MaxWords:           v.GetInt("max-words"),
			ReclaimEvery:       v.GetInt("reclaim-every"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		records, nonEmpty, err := dataset.Load(input, column)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Loaded %d records (%d non-empty) from %s\n", len(records), nonEmpty, input)

		// Refuse to mix two unrelated runs in one log. Appending to an old
		// log without --resume would double up indices on replay.
		if !processResume {
			if info, statErr := os.Stat(logPath); statErr == nil && info.Size() > 0 {
				return fmt.Errorf("checkpoint log %s already has entries; rerun with --resume or remove it", logPath)
			}
		}

		log, err := checkpoint.Open(logPath)
		if err != nil {
			return err
		}
		defer log.Close()

		translator, err := buildTranslator(
			v.GetString("translator"), cfg.TranslationModel,
			v.GetString("ollama-url"), v.GetString("google-credentials"),
			v.GetString("source-lang"), v.GetString("target-lang"))
		if err != nil {
			return err
		}
		summarizer, err := buildSummarizer(
			v.GetString("summarizer"), cfg.SummarizationModel,
			v.GetString("ollama-url"), v.GetString("openai-key"))
		if err != nil {
			return err
		}

		scheduler := pipeline.NewScheduler(cfg, translator, summarizer)

		if !v.GetBool("no-cache") && v.GetString("db") != "" {
			db, dbErr := store.New(v.GetString("db"))
			if dbErr != nil {
				return fmt.Errorf("failed to open database: %w", dbErr)
			}
			defer db.Close()
			scheduler.WithCache(db)
		}
		if v.GetBool("validate") {
			scheduler.WithValidator(validator.New(v.GetString("target-lang")))
		}

		orch := pipeline.NewOrchestrator(cfg, scheduler, log)

		sum, err := orch.ProcessDataset(ctx, records, processResume)
		if err != nil {
			return err
		}
		printSummary(sum)

		if output != "" {
			var results []internal.FinalResult
			if err := log.Replay(func(res internal.FinalResult) error {
				results = append(results, res)
				return nil
			}); err != nil {
				return err
			}
			if err := dataset.Assemble(input, output, column, results); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "Input CSV file (required)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output CSV file with final opinions substituted")
	processCmd.Flags().StringVarP(&processColumn, "column", "c", "review_text", "CSV column to process")
	processCmd.Flags().StringVar(&processLogPath, "log", "checkpoint.jsonl", "Checkpoint log path")
	processCmd.Flags().BoolVar(&processResume, "resume", false, "Skip records already in the checkpoint log")
	processCmd.Flags().StringVar(&processConfigFile, "config", "", "Config file path")

	processCmd.Flags().StringVar(&processTranslator, "translator", "ollama", "Translation provider (ollama, google)")
	processCmd.Flags().StringVar(&processSummarizer, "summarizer", "ollama", "Summarization provider (ollama, openai)")
	processCmd.Flags().StringVar(&processTranslationModel, "translation-model", defaultTranslationModel, "Translation model name")
	processCmd.Flags().StringVar(&processSummarizationModel, "summarization-model", defaultSummarizationModel, "Summarization model name")
	processCmd.Flags().StringVarP(&processSourceLang, "source-lang", "s", "ar", "Source language code")
	processCmd.Flags().StringVarP(&processTargetLang, "target-lang", "t", "en", "Target language code")
	processCmd.Flags().StringVar(&processDevice, "device", "", "Advisory compute device hint passed to providers")

	processCmd.Flags().IntVarP(&processBatchSize, "batch-size", "b", 8, "Records per translation batch")
	processCmd.Flags().IntVar(&processMinWords, "min-words", 5, "Minimum words before a text is worth summarizing")
	processCmd.Flags().IntVar(&processMaxWords, "max-words", 300, "Maximum words before a translation is summarized")
	processCmd.Flags().IntVar(&processReclaimEvery, "reclaim-every", 10, "Batches between provider memory-release hints")

	processCmd.Flags().StringVar(&processOllamaURL, "ollama-url", transform.DefaultOllamaURL, "Ollama API base URL")
	processCmd.Flags().StringVar(&processOpenAIKey, "openai-key", "", "OpenAI API key (or OPENAI_API_KEY)")
	processCmd.Flags().StringVar(&processGoogleCredentials, "google-credentials", "", "Google Cloud credentials JSON file")

	processCmd.Flags().StringVar(&processDBPath, "db", "./data/tarjim.db", "Translation memory database path")
	processCmd.Flags().BoolVar(&processNoCache, "no-cache", false, "Disable the translation memory cache")
	processCmd.Flags().BoolVar(&processValidate, "validate", false, "Warn when a translation does not look like the target language")

	_ = processCmd.MarkFlagRequired("input")
}
