package internal

// Status marks whether a record made it through both stages.
type Status string

const (
	// StatusOK is the zero value; successful entries carry no status field
	// in the checkpoint log.
	StatusOK Status = ""
	// StatusFailed marks a record whose translation or summarization call
	// failed. Failed records are still checkpointed so they can be audited
	// and reprocessed.
	StatusFailed Status = "failed"
)

// Record is one input unit of text with a stable, dataset-unique index.
// Records are created at dataset load time and never mutated.
type Record struct {
	Index        int
	SourceText   string
	OriginalText string
}

// FinalResult is the terminal, persisted representation of one record.
// JSON field names are the checkpoint log wire format; consumers stream-read
// the log one line at a time.
type FinalResult struct {
	Index        int    `json:"index"`
	Original     string `json:"original"`
	Translated   string `json:"translated"`
	FinalOpinion string `json:"final_opinion"`
	WordCount    int    `json:"word_count"`
	Status       Status `json:"status,omitempty"`
	ErrorDetail  string `json:"error_detail,omitempty"`
}

// OK reports whether the record completed both stages.
func (r FinalResult) OK() bool {
	return r.Status != StatusFailed
}
