package pipeline

import (
	"sort"

	"github.com/valpere/tarjim/internal"
)

// Summary is the aggregate view of a run. It is always derived by replaying
// the checkpoint log rather than from in-memory state, so a resumed run
// reports the entire logical dataset. Word-count distribution covers ok
// records only; failed records are counted and listed separately.
type Summary struct {
	MinWords int
	MaxWords int

	Total  int
	OK     int
	Failed int

	FailedIndices []int

	TotalWords   int
	MinWordCount int
	MaxWordCount int

	Below  int
	Within int
	Above  int
}

func NewSummary(minWords, maxWords int) *Summary {
	return &Summary{MinWords: minWords, MaxWords: maxWords}
}

// Add folds one result into the summary. The signature matches the checkpoint
// replay callback.
func (s *Summary) Add(res internal.FinalResult) error {
	s.Total++
	if !res.OK() {
		s.Failed++
		s.FailedIndices = append(s.FailedIndices, res.Index)
		return nil
	}

	s.OK++
	wc := res.WordCount
	s.TotalWords += wc
	if s.OK == 1 || wc < s.MinWordCount {
		s.MinWordCount = wc
	}
	if wc > s.MaxWordCount {
		s.MaxWordCount = wc
	}
	switch {
	case wc < s.MinWords:
		s.Below++
	case wc > s.MaxWords:
		s.Above++
	default:
		s.Within++
	}
	return nil
}

// AvgWordCount is the mean word count over ok records.
func (s *Summary) AvgWordCount() float64 {
	if s.OK == 0 {
		return 0
	}
	return float64(s.TotalWords) / float64(s.OK)
}

// WithinPct is the share of ok records inside [MinWords, MaxWords], in
// percent.
func (s *Summary) WithinPct() float64 {
	if s.OK == 0 {
		return 0
	}
	return float64(s.Within) / float64(s.OK) * 100
}

// SortedFailedIndices returns the failed indices in ascending order, for
// audit output and deliberate reprocessing.
func (s *Summary) SortedFailedIndices() []int {
	out := make([]int, len(s.FailedIndices))
	copy(out, s.FailedIndices)
	sort.Ints(out)
	return out
}
