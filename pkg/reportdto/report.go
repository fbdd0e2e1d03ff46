// Package reportdto defines the result types produced by a download run.
// They are plain data, safe to serialize and hand to any frontend.
package reportdto

import "time"

// Failure records one pairing that produced no PGN files.
type Failure struct {
	Index  int    `json:"index"` // 1-based position in the pairing text
	White  string `json:"white"`
	Black  string `json:"black"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Report summarizes a whole batch run.
type Report struct {
	RunID      string    `json:"run_id"`
	Class      string    `json:"class"`
	Round      string    `json:"round"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
	Dir        string    `json:"dir"` // batch folder the games were written to
}
