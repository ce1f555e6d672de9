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

	"github.com/spf13/cobra"

	"github.com/valpere/tarjim/internal/checkpoint"
	"github.com/valpere/tarjim/internal/pipeline"
)

var (
	statsLogPath  string
	statsMinWords int
	statsMaxWords int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a checkpoint log",
	Long: `Replay a checkpoint log and print the run statistics: success and failure
counts, failed record indices, and the word-count distribution of the final
opinions. Works on logs of finished and interrupted runs alike.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := pipeline.NewSummary(statsMinWords, statsMaxWords)
		skipped, err := checkpoint.Replay(statsLogPath, sum.Add)
		if err != nil {
			return err
		}
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed log entries\n", skipped)
		}
		printSummary(sum)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsLogPath, "log", "checkpoint.jsonl", "Checkpoint log path")
	statsCmd.Flags().IntVar(&statsMinWords, "min-words", 5, "Lower bound of the target word range")
	statsCmd.Flags().IntVar(&statsMaxWords, "max-words", 300, "Upper bound of the target word range")
}
