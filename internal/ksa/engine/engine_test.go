package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/deck"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/mapping"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/sheets"
)

// fakeDoc is an in-memory Document. Targets are addressed by a
// slide/name/row/col key; texts holds the current content per key.
type fakeDoc struct {
	slides  int
	texts   map[string]string
	targets map[*deck.Target]string // resolved target -> key
	writes  int
}

func newFakeDoc(slides int, texts map[string]string) *fakeDoc {
	return &fakeDoc{
		slides:  slides,
		texts:   texts,
		targets: make(map[*deck.Target]string),
	}
}

func shapeKey(slide int, name string) string {
	return fmt.Sprintf("%d/%s", slide, name)
}

func cellKey(slide int, name string, row, col int) string {
	return fmt.Sprintf("%d/%s/%d/%d", slide, name, row, col)
}

func (f *fakeDoc) SlideCount() int { return f.slides }

func (f *fakeDoc) resolve(slide int, key, name string) (*deck.Target, error) {
	if slide < 1 || slide > f.slides {
		return nil, errors.Wrapf(errors.ErrSlideOutOfRange, "slide %d of %d", slide, f.slides)
	}
	if _, ok := f.texts[key]; !ok {
		return nil, errors.Wrapf(errors.ErrTargetNotFound, "%q on slide %d", name, slide)
	}
	t := &deck.Target{Slide: slide, Name: name}
	f.targets[t] = key
	return t, nil
}

func (f *fakeDoc) FindShape(slide int, name string) (*deck.Target, error) {
	return f.resolve(slide, shapeKey(slide, name), name)
}

func (f *fakeDoc) FindTableCell(slide int, name string, row, col int) (*deck.Target, error) {
	return f.resolve(slide, cellKey(slide, name, row, col), name)
}

func (f *fakeDoc) ReadText(t *deck.Target) string {
	return f.texts[f.targets[t]]
}

func (f *fakeDoc) WriteText(t *deck.Target, s string) {
	f.texts[f.targets[t]] = s
	f.writes++
}

func entry(id, rng string, slide int, name, fmtName string) mapping.Entry {
	return mapping.Entry{
		ID: id, SheetRange: rng, SlideIndex: slide,
		TargetType: mapping.TargetShape, ObjectName: name, Format: fmtName,
	}
}

func TestRun_Applied(t *testing.T) {
	doc := newFakeDoc(3, map[string]string{
		shapeKey(2, "RevenueBox"):   "old revenue",
		cellKey(3, "Metrics", 2, 4): "old headcount",
	})
	entries := []mapping.Entry{
		entry("rev", "Data!B12", 2, "RevenueBox", "currency0"),
		{ID: "hc", SheetRange: "Data!C3", SlideIndex: 3, TargetType: mapping.TargetTableCell,
			ObjectName: "Metrics", Row: 2, Col: 4, Format: "integer"},
	}
	values := map[string]sheets.RawValue{
		"Data!B12": sheets.Numeric(5000),
		"Data!C3":  sheets.Numeric(142),
	}

	report := Run(entries, nil, values, doc, Options{ErrorValue: "N/A"})

	if report.Applied() != 2 || report.Failed() != 0 || report.Skipped() != 0 {
		t.Fatalf("counts = %d/%d/%d applied/skipped/failed",
			report.Applied(), report.Skipped(), report.Failed())
	}
	if got := doc.texts[shapeKey(2, "RevenueBox")]; got != "$5,000" {
		t.Errorf("shape text = %q, want $5,000", got)
	}
	if got := doc.texts[cellKey(3, "Metrics", 2, 4)]; got != "142" {
		t.Errorf("cell text = %q, want 142", got)
	}

	want := []Result{
		{ID: "rev", Status: StatusApplied, PreviousText: "old revenue", NewText: "$5,000"},
		{ID: "hc", Status: StatusApplied, PreviousText: "old headcount", NewText: "142"},
	}
	if diff := cmp.Diff(want, report.Results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DryRunParity(t *testing.T) {
	values := map[string]sheets.RawValue{"Data!A1": sheets.Numeric(0.133)}
	entries := []mapping.Entry{entry("pct", "Data!A1", 1, "Box", "percent0")}

	dry := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	dryReport := Run(entries, nil, values, dry, Options{DryRun: true})

	if dry.writes != 0 {
		t.Fatalf("dry-run performed %d writes, want 0", dry.writes)
	}
	if dry.texts[shapeKey(1, "Box")] != "old" {
		t.Fatalf("dry-run mutated the document")
	}
	if dryReport.Skipped() != 1 || dryReport.Applied() != 0 {
		t.Fatalf("dry-run counts = %d applied, %d skipped",
			dryReport.Applied(), dryReport.Skipped())
	}

	// The previewed value must be exactly what a real run writes.
	real := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	realReport := Run(entries, nil, values, real, Options{})

	if dryReport.Results[0].NewText != realReport.Results[0].NewText {
		t.Errorf("dry-run previewed %q, real run wrote %q",
			dryReport.Results[0].NewText, realReport.Results[0].NewText)
	}
	if got := real.texts[shapeKey(1, "Box")]; got != "13%" {
		t.Errorf("real run wrote %q, want 13%%", got)
	}
}

func TestRun_FetchErrorUsesErrorDefault(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	entries := []mapping.Entry{entry("x", "Data!A1", 1, "Box", "text")}
	values := map[string]sheets.RawValue{"Data!A1": sheets.FetchError("range missing")}

	report := Run(entries, nil, values, doc, Options{ErrorValue: "N/A"})

	if report.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed())
	}
	res := report.Results[0]
	if !strings.Contains(res.Reason, "fetch") {
		t.Errorf("reason = %q, want fetch failure", res.Reason)
	}
	if doc.texts[shapeKey(1, "Box")] != "old" {
		t.Errorf("failed entry mutated the document")
	}
}

func TestRun_MissingRange(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	entries := []mapping.Entry{entry("x", "Data!A1", 1, "Box", "text")}

	report := Run(entries, nil, nil, doc, Options{})

	if report.Failed() != 1 || !strings.Contains(report.Results[0].Reason, "not fetched") {
		t.Errorf("results = %+v, want one not-fetched failure", report.Results)
	}
}

func TestRun_TargetNotFound(t *testing.T) {
	doc := newFakeDoc(2, map[string]string{})
	entries := []mapping.Entry{entry("x", "Data!A1", 2, "Ghost", "text")}
	values := map[string]sheets.RawValue{"Data!A1": sheets.Textual("hi")}

	report := Run(entries, nil, values, doc, Options{})

	if report.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed())
	}
	if !strings.Contains(report.Results[0].Reason, "Ghost") {
		t.Errorf("reason = %q, want target name", report.Results[0].Reason)
	}
}

func TestRun_ValidationFailuresInReport(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	rowErrs := []mapping.RowError{
		{Row: 4, ID: "bad", Reason: "slide must be a positive integer"},
		{Row: 7, Reason: "missing id"},
	}
	entries := []mapping.Entry{entry("ok", "Data!A1", 1, "Box", "text")}
	values := map[string]sheets.RawValue{"Data!A1": sheets.Textual("hi")}

	report := Run(entries, rowErrs, values, doc, Options{})

	if len(report.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(report.Results))
	}
	if report.Results[0].ID != "bad" || !strings.HasPrefix(report.Results[0].Reason, "validation:") {
		t.Errorf("first result = %+v, want validation failure for bad", report.Results[0])
	}
	if report.Results[1].ID != "row 7" {
		t.Errorf("anonymous row reported as %q, want \"row 7\"", report.Results[1].ID)
	}
	if report.Results[2].Status != StatusApplied {
		t.Errorf("valid entry status = %v, want applied", report.Results[2].Status)
	}
}

func TestRun_FormatFallbackStillApplies(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	entries := []mapping.Entry{entry("x", "Data!A1", 1, "Box", "currency0")}
	values := map[string]sheets.RawValue{"Data!A1": sheets.Textual("not a number")}

	report := Run(entries, nil, values, doc, Options{ErrorValue: "N/A"})

	// Unformattable values degrade to the error default but still write.
	if report.Applied() != 1 {
		t.Fatalf("applied = %d, want 1", report.Applied())
	}
	if got := doc.texts[shapeKey(1, "Box")]; got != "N/A" {
		t.Errorf("text = %q, want N/A", got)
	}
}

func TestRun_BlankUsesEmptyDefault(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "stale"})
	entries := []mapping.Entry{entry("x", "Data!A1", 1, "Box", "currency0")}
	values := map[string]sheets.RawValue{"Data!A1": sheets.Blank()}

	report := Run(entries, nil, values, doc, Options{EmptyValue: "TBD"})

	if report.Applied() != 1 {
		t.Fatalf("applied = %d, want 1", report.Applied())
	}
	if got := doc.texts[shapeKey(1, "Box")]; got != "TBD" {
		t.Errorf("text = %q, want TBD", got)
	}
}

func TestRun_LastWriteWins(t *testing.T) {
	doc := newFakeDoc(1, map[string]string{shapeKey(1, "Box"): "old"})
	entries := []mapping.Entry{
		entry("first", "Data!A1", 1, "Box", "text"),
		entry("second", "Data!A2", 1, "Box", "text"),
	}
	values := map[string]sheets.RawValue{
		"Data!A1": sheets.Textual("one"),
		"Data!A2": sheets.Textual("two"),
	}

	report := Run(entries, nil, values, doc, Options{})

	if report.Applied() != 2 {
		t.Fatalf("applied = %d, want 2", report.Applied())
	}
	if got := doc.texts[shapeKey(1, "Box")]; got != "two" {
		t.Errorf("text = %q, want the later entry's value", got)
	}
	// The second entry observed the first entry's write.
	if report.Results[1].PreviousText != "one" {
		t.Errorf("second entry previous = %q, want one", report.Results[1].PreviousText)
	}
}

func TestReportCounts(t *testing.T) {
	r := &Report{}
	r.add(Result{Status: StatusApplied})
	r.add(Result{Status: StatusApplied})
	r.add(Result{Status: StatusSkipped})
	r.add(Result{Status: StatusFailed})

	if r.Applied() != 2 || r.Skipped() != 1 || r.Failed() != 1 {
		t.Errorf("counts = %d/%d/%d", r.Applied(), r.Skipped(), r.Failed())
	}
}

func TestStatusString(t *testing.T) {
	if StatusApplied.String() != "applied" ||
		StatusSkipped.String() != "skipped" ||
		StatusFailed.String() != "failed" {
		t.Error("Status.String() labels wrong")
	}
}
