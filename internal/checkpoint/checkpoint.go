// Package checkpoint persists pipeline results to an append-only JSONL log
// and replays that log for resume and reporting.
//
// One JSON object per line. A result is durable once Append returns; a
// process killed mid-write leaves at most one malformed trailing line, which
// readers drop instead of failing the whole load.
package checkpoint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valpere/tarjim/internal"
)

// maxLineBytes bounds a single log line during replay. Source reviews are a
// few hundred words; 4 MiB leaves generous headroom.
const maxLineBytes = 4 << 20

// Log is an append-only JSONL checkpoint file.
type Log struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// Open opens the log at path for appending, creating it if needed. Prior
// entries are never rewritten.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint log: %w", err)
	}
	return &Log{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Path returns the file path the log was opened with.
func (l *Log) Path() string {
	return l.path
}

// Append durably persists one result before returning. The line is flushed
// and fsynced so a crash at any later point cannot lose it.
func (l *Log) Append(res internal.FinalResult) error {
	line, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result %d: %w", res.Index, err)
	}
	line = append(line, '\n')
	if _, err := l.w.Write(line); err != nil {
		return fmt.Errorf("failed to append result %d: %w", res.Index, err)
	}
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush result %d: %w", res.Index, err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync checkpoint log: %w", err)
	}
	return nil
}

// Replay streams every well-formed entry of this log in file order. Any
// pending writes are flushed first. Malformed lines are skipped with a
// warning.
func (l *Log) Replay(fn func(internal.FinalResult) error) error {
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush checkpoint log: %w", err)
	}
	skipped, err := Replay(l.path, fn)
	if skipped > 0 {
		slog.Warn("dropped malformed checkpoint entries", "path", l.path, "count", skipped)
	}
	return err
}

// Close flushes buffered data and closes the file.
func (l *Log) Close() error {
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush checkpoint log: %w", err)
	}
	return l.f.Close()
}

// Replay streams every well-formed entry of the log at path in file order and
// returns the number of malformed lines skipped. An interrupted append leaves
// at most one such line, at the tail; it is dropped rather than failing the
// load. An error from fn stops the replay.
func Replay(path string, fn func(internal.FinalResult) error) (skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var res internal.FinalResult
		if err := json.Unmarshal(line, &res); err != nil {
			skipped++
			continue
		}
		if err := fn(res); err != nil {
			return skipped, err
		}
	}
	if err := sc.Err(); err != nil {
		return skipped, fmt.Errorf("failed to read checkpoint log: %w", err)
	}
	return skipped, nil
}

// CompletedIndices scans an existing log and returns every index already
// present, for resume. A missing file is a fresh start, not an error.
func CompletedIndices(path string) (map[int]struct{}, error) {
	done := make(map[int]struct{})
	skipped, err := Replay(path, func(res internal.FinalResult) error {
		done[res.Index] = struct{}{}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return done, nil
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		slog.Warn("dropped malformed checkpoint entries", "path", path, "count", skipped)
	}
	return done, nil
}

// Filter returns the records whose indices are not in done, preserving input
// order.
func Filter(records []internal.Record, done map[int]struct{}) []internal.Record {
	if len(done) == 0 {
		return records
	}
	remaining := make([]internal.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := done[rec.Index]; ok {
			continue
		}
		remaining = append(remaining, rec)
	}
	return remaining
}
