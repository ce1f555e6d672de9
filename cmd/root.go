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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "tarjim",
	Short: "Batch translation and summarization pipeline",
	Long: `A batch pipeline that translates Arabic text records, condenses over-long
translations to a bounded word count, and checkpoints every finished record
to an append-only log so interrupted runs can resume without repeating work.

Supported translators: Ollama (LLM), Google Cloud Translation
Supported summarizers: Ollama (LLM), OpenAI

Use "tarjim process --help" for pipeline options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
