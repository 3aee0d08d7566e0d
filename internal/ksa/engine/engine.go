// Package engine drives the per-entry update pipeline: resolve the
// fetched value, locate the target, format, then write or diff.
package engine

import (
	"fmt"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/format"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/mapping"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/sheets"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// Document is the slice of the deck API the engine needs. *deck.Deck
// satisfies it; tests substitute an in-memory fake.
type Document interface {
	SlideCount() int
	FindShape(slide int, name string) (*deck.Target, error)
	FindTableCell(slide int, name string, row, col int) (*deck.Target, error)
	ReadText(t *deck.Target) string
	WriteText(t *deck.Target, s string)
}

// Options configures one engine run
type Options struct {
	DryRun     bool
	EmptyValue string // render for blank cells
	ErrorValue string // render for fetch/format failures
}

// Run processes every entry strictly in input order and returns the
// consolidated report. Validation failures from loading appear first,
// then one result per entry. A single entry's failure never aborts the
// run; entries writing to the same target resolve last-write-wins.
func Run(entries []mapping.Entry, rowErrs []mapping.RowError, values map[string]sheets.RawValue, doc Document, opts Options) *Report {
	report := &Report{DryRun: opts.DryRun}

	for _, re := range rowErrs {
		id := re.ID
		if id == "" {
			id = fmt.Sprintf("row %d", re.Row)
		}
		report.add(Result{
			ID:     id,
			Status: StatusFailed,
			Reason: "validation: " + re.Reason,
		})
	}

	for _, entry := range entries {
		report.add(process(entry, values, doc, opts))
	}
	return report
}

func process(entry mapping.Entry, values map[string]sheets.RawValue, doc Document, opts Options) Result {
	res := Result{ID: entry.ID}

	raw, ok := values[entry.SheetRange]
	if !ok {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("range %q not fetched", entry.SheetRange)
		return res
	}
	if raw.IsError() {
		res.Status = StatusFailed
		res.Reason = "fetch: " + raw.Err
		return res
	}

	target, err := locate(entry, doc)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = err.Error()
		return res
	}

	res.PreviousText = doc.ReadText(target)
	res.NewText = format.Value(raw, format.Spec{
		Format:     entry.Format,
		Prefix:     entry.Prefix,
		Suffix:     entry.Suffix,
		EmptyValue: opts.EmptyValue,
		ErrorValue: opts.ErrorValue,
	})

	if opts.DryRun {
		log.InfoH2("[dry-run] would update %q on slide %d: %q -> %q",
			entry.ObjectName, entry.SlideIndex, res.PreviousText, res.NewText)
		res.Status = StatusSkipped
		res.Reason = "dry-run"
		return res
	}

	doc.WriteText(target, res.NewText)
	log.DebugH2("updated %q on slide %d: %q -> %q",
		entry.ObjectName, entry.SlideIndex, res.PreviousText, res.NewText)
	res.Status = StatusApplied
	return res
}

func locate(entry mapping.Entry, doc Document) (*deck.Target, error) {
	if entry.TargetType == mapping.TargetTableCell {
		return doc.FindTableCell(entry.SlideIndex, entry.ObjectName, entry.Row, entry.Col)
	}
	return doc.FindShape(entry.SlideIndex, entry.ObjectName)
}
