package ir

// CountRecord is a durably cached arrangement count for one record after
// unfolding. Digest is RecordDigest(Symbols, Groups).
type CountRecord struct {
	Digest  string `json:"digest"`
	Symbols string `json:"symbols"`
	Groups  []int  `json:"groups"`
	Count   uint64 `json:"count"`
}

// RunRecord is one completed solve run as stored in history.
// Seq is assigned by the store on write and is the only ordering key.
type RunRecord struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	InputDigest string    `json:"input_digest"`
	Unfold      int       `json:"unfold"`
	Workers     int       `json:"workers"`
	Total       uint64    `json:"total"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Lines       []RunLine `json:"lines,omitempty"`
}

// RunLine is the result for one input line of a run.
type RunLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Digest string `json:"digest"`
	Count  uint64 `json:"count"`
}
