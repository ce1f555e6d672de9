// Package dataset loads review records from a CSV column and assembles the
// final dataset from checkpointed results.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/valpere/tarjim/internal"
)

// Load reads the CSV at path and returns one Record per data row, indexed by
// row order (0-based, header excluded). Empty cells still produce records so
// indices always line up with rows. The second return value counts non-empty
// texts.
func Load(path, column string) ([]internal.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("CSV file is empty")
	}

	col, err := findColumn(rows[0], column, path)
	if err != nil {
		return nil, 0, err
	}

	records := make([]internal.Record, 0, len(rows)-1)
	nonEmpty := 0
	for i, row := range rows[1:] {
		text := ""
		if col < len(row) {
			text = row[col]
		}
		records = append(records, internal.Record{
			Index:        i,
			SourceText:   text,
			OriginalText: text,
		})
		if strings.TrimSpace(text) != "" {
			nonEmpty++
		}
	}
	return records, nonEmpty, nil
}

// Assemble writes a copy of the input CSV with the review column replaced by
// each record's final opinion, the original text preserved in a
// "<column>_original" backup column, and a word_count column appended.
// Results may arrive in any order; they are matched to rows by index. Rows
// whose result failed (or is absent) keep their original text.
func Assemble(inputPath, outputPath, column string, results []internal.FinalResult) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input CSV: %w", err)
	}
	defer in.Close()

	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("CSV file is empty")
	}

	col, err := findColumn(rows[0], column, inputPath)
	if err != nil {
		return err
	}

	byIndex := make(map[int]internal.FinalResult, len(results))
	for _, res := range results {
		byIndex[res.Index] = res
	}

	out := make([][]string, 0, len(rows))
	out = append(out, append(append([]string{}, rows[0]...), column+"_original", "word_count"))

	for i, row := range rows[1:] {
		original := ""
		if col < len(row) {
			original = row[col]
		}

		newRow := make([]string, len(rows[0]))
		copy(newRow, row)

		wordCount := 0
		if res, ok := byIndex[i]; ok && res.OK() {
			newRow[col] = res.FinalOpinion
			wordCount = res.WordCount
		}
		newRow = append(newRow, original, strconv.Itoa(wordCount))
		out = append(out, newRow)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output CSV: %w", err)
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	if err := writer.WriteAll(out); err != nil {
		return fmt.Errorf("failed to write output CSV: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output CSV: %w", err)
	}
	return nil
}

func findColumn(header []string, column, path string) (int, error) {
	for i, name := range header {
		if name == column {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in %s", column, path)
}
