// Package format converts raw spreadsheet values into display strings
// under a fixed set of format rules. Formatting is pure: the same value
// and spec always produce the same string.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/sheets"
)

// sheetsEpoch is the day zero of Google Sheets date serial numbers
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are the textual date forms accepted before falling back to
// serial-number interpretation
var dateLayouts = []string{"2006-01-02", "1/2/2006", "2/1/2006", "January 2, 2006"}

// numberWords maps small counts to their English word form
var numberWords = [...]string{
	1: "One", 2: "Two", 3: "Three", 4: "Four", 5: "Five",
	6: "Six", 7: "Seven", 8: "Eight", 9: "Nine", 10: "Ten",
	11: "Eleven", 12: "Twelve", 13: "Thirteen", 14: "Fourteen",
	15: "Fifteen", 16: "Sixteen", 17: "Seventeen", 18: "Eighteen",
	19: "Nineteen", 20: "Twenty",
}

// Spec carries the per-entry format instructions plus the run-wide
// defaults for blank and unformattable values.
type Spec struct {
	Format     string
	Prefix     string
	Suffix     string
	EmptyValue string
	ErrorValue string
}

// Known reports whether name is one of the supported format types
func Known(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "currency0", "currency1", "currency2",
		"percent0", "percent1", "percent2", "integer",
		"decimal1", "decimal2", "date_mdy", "date_short", "text_number":
		return true
	}
	return false
}

// Value renders raw under spec. Blank values render as the empty default
// and fetch errors or unformattable values as the error default, both
// without prefix/suffix; only successfully formatted values are wrapped.
func Value(raw sheets.RawValue, spec Spec) string {
	if raw.IsBlank() {
		return spec.EmptyValue
	}
	if raw.IsError() {
		return spec.ErrorValue
	}

	core, ok := formatCore(raw, strings.ToLower(strings.TrimSpace(spec.Format)))
	if !ok {
		return spec.ErrorValue
	}
	return spec.Prefix + core + spec.Suffix
}

func formatCore(raw sheets.RawValue, fmtName string) (string, bool) {
	switch fmtName {
	case "currency0", "currency1", "currency2":
		return numeric(raw, func(n float64) string {
			return currency(n, int(fmtName[len(fmtName)-1]-'0'))
		})
	case "percent0", "percent1", "percent2":
		return numeric(raw, func(n float64) string {
			return percent(n, int(fmtName[len(fmtName)-1]-'0'))
		})
	case "integer":
		return numeric(raw, func(n float64) string {
			return groupThousands(strconv.FormatFloat(math.Round(n), 'f', 0, 64))
		})
	case "decimal1":
		return numeric(raw, func(n float64) string { return strconv.FormatFloat(n, 'f', 1, 64) })
	case "decimal2":
		return numeric(raw, func(n float64) string { return strconv.FormatFloat(n, 'f', 2, 64) })
	case "date_mdy":
		return date(raw, func(d time.Time) string {
			return fmt.Sprintf("%s %d, %d", d.Month(), d.Day(), d.Year())
		})
	case "date_short":
		return date(raw, func(d time.Time) string {
			return fmt.Sprintf("%d/%d", int(d.Month()), d.Year())
		})
	case "text_number":
		return textNumber(raw)
	default:
		// "text" and anything unrecognized render verbatim
		return raw.String(), true
	}
}

// numeric applies render to the parsed number, failing on non-numeric input
func numeric(raw sheets.RawValue, render func(float64) string) (string, bool) {
	n, ok := number(raw)
	if !ok {
		return "", false
	}
	return render(n), true
}

// number extracts a float from the raw value, parsing textual forms
func number(raw sheets.RawValue) (float64, bool) {
	if raw.Kind == sheets.KindNumber {
		return raw.Number, true
	}
	return ParseNumber(raw.Text)
}

// ParseNumber parses a display-formatted number. Thousands separators,
// currency symbols, percent signs and inner spaces are stripped, and
// accountant-style parentheses read as a negative sign.
func ParseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	for _, cut := range []string{",", "$", "%", " "} {
		cleaned = strings.ReplaceAll(cleaned, cut, "")
	}
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	return f, err == nil
}

// currency renders n with a leading $ and thousands separators; negative
// values carry the minus sign before the symbol.
func currency(n float64, decimals int) string {
	body := "$" + groupThousands(strconv.FormatFloat(math.Abs(n), 'f', decimals, 64))
	if n < 0 {
		return "-" + body
	}
	return body
}

// percent renders n as a percentage. Values with 0 < |n| <= 1 are read as
// fractions and scaled by 100; anything larger is taken as already scaled.
// Exactly 1.0 therefore means 100%, per the documented threshold rule.
func percent(n float64, decimals int) string {
	if abs := math.Abs(n); abs > 0 && abs <= 1 {
		n *= 100
	}
	return strconv.FormatFloat(n, 'f', decimals, 64) + "%"
}

// date resolves the raw value to a calendar date: textual layouts first,
// then Sheets serial-number interpretation for numeric values.
func date(raw sheets.RawValue, render func(time.Time) string) (string, bool) {
	if raw.Kind == sheets.KindText {
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, strings.TrimSpace(raw.Text)); err == nil {
				return render(d), true
			}
		}
	}
	n, ok := number(raw)
	if !ok {
		return "", false
	}
	return render(sheetsEpoch.AddDate(0, 0, int(n))), true
}

// textNumber renders whole numbers from 1 to 20 as English words and other
// whole numbers as plain digits; non-integers are unformattable.
func textNumber(raw sheets.RawValue) (string, bool) {
	n, ok := number(raw)
	if !ok || n != math.Trunc(n) {
		return "", false
	}
	i := int(n)
	if i >= 1 && i <= 20 {
		return numberWords[i], true
	}
	return strconv.Itoa(i), true
}

// groupThousands inserts commas into the integer part of a plain decimal
// string produced by strconv.FormatFloat.
func groupThousands(s string) string {
	intPart, rest := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, rest = s[:dot], s[dot:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	out := sb.String() + rest
	if neg {
		return "-" + out
	}
	return out
}
