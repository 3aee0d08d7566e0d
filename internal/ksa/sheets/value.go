package sheets

import (
	"strconv"
	"strings"
)

// Kind tags the shape of a value returned by the data source
type Kind int

const (
	// KindBlank marks an empty cell
	KindBlank Kind = iota
	// KindText marks a textual cell value
	KindText
	// KindNumber marks a numeric cell value
	KindNumber
	// KindError marks a range whose value could not be resolved
	KindError
)

// RawValue is the value fetched for one range. It is a plain value type:
// entries sharing a range receive independent copies on map lookup.
type RawValue struct {
	Kind   Kind
	Text   string // original textual form for Text and Number kinds
	Number float64
	Err    string // reason, set only for KindError
}

// Blank returns the empty-cell value
func Blank() RawValue {
	return RawValue{Kind: KindBlank}
}

// Textual returns a text value
func Textual(s string) RawValue {
	return RawValue{Kind: KindText, Text: s}
}

// Numeric returns a number value
func Numeric(f float64) RawValue {
	return RawValue{Kind: KindNumber, Number: f, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// FetchError returns a per-range failure value
func FetchError(reason string) RawValue {
	return RawValue{Kind: KindError, Err: reason}
}

// IsBlank reports whether the value is an empty cell
func (v RawValue) IsBlank() bool { return v.Kind == KindBlank }

// IsError reports whether the value is a per-range fetch failure
func (v RawValue) IsError() bool { return v.Kind == KindError }

// String renders the value verbatim, the way the cell displayed it
func (v RawValue) String() string {
	switch v.Kind {
	case KindNumber, KindText:
		return v.Text
	default:
		return ""
	}
}

// Classify converts a decoded JSON cell into a RawValue. The Sheets API
// returns cells as strings, numbers, or booleans depending on the sheet's
// value rendering; blanks arrive as nil or empty strings.
func Classify(cell interface{}) RawValue {
	switch c := cell.(type) {
	case nil:
		return Blank()
	case string:
		if strings.TrimSpace(c) == "" {
			return Blank()
		}
		return Textual(c)
	case float64:
		return Numeric(c)
	case bool:
		if c {
			return Textual("TRUE")
		}
		return Textual("FALSE")
	default:
		return FetchError("unsupported cell type")
	}
}
