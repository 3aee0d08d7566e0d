package engine

import (
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// Status is the final state of one entry's pass through the pipeline
type Status int

const (
	// StatusApplied means the target's text was rewritten (or would be,
	// had a format fallback not degraded the value)
	StatusApplied Status = iota
	// StatusSkipped means nothing was written, by request (dry-run)
	StatusSkipped
	// StatusFailed means the entry could not be fetched, validated or
	// located; the reason explains which
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result is the materialized final state of one entry
type Result struct {
	ID           string
	Status       Status
	Reason       string
	PreviousText string
	NewText      string
}

// Report accumulates results in input order. It is the run's single
// consolidated artifact: every entry appears exactly once.
type Report struct {
	DryRun  bool
	Results []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Applied counts entries whose text was (or would be) rewritten
func (r *Report) Applied() int { return r.count(StatusApplied) }

// Skipped counts entries held back by dry-run
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed counts entries that could not be processed
func (r *Report) Failed() int { return r.count(StatusFailed) }

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Print writes the consolidated summary through the logger
func (r *Report) Print() {
	suffix := ""
	if r.DryRun {
		suffix = " (dry-run)"
	}
	log.InfoH2("Update complete%s: %d applied, %d skipped, %d failed",
		suffix, r.Applied(), r.Skipped(), r.Failed())

	for _, res := range r.Results {
		switch res.Status {
		case StatusFailed:
			log.ErrorH2("%s: %s", res.ID, res.Reason)
		case StatusSkipped:
			log.InfoH3("%s: %q -> %q", res.ID, res.PreviousText, res.NewText)
		}
	}
}
