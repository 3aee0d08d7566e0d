package sheets

import (
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// StaticSource serves values and mapping rows straight from configuration,
// for offline runs and rehearsals without spreadsheet access.
type StaticSource struct {
	Values map[string]string
	Rows   [][]string
}

// BatchGet resolves every range from the static value table. Ranges not
// present in the table read as blank cells.
func (s *StaticSource) BatchGet(ranges []string) (map[string]RawValue, error) {
	values := make(map[string]RawValue, len(ranges))
	for _, rg := range dedupe(ranges) {
		cell, ok := s.Values[rg]
		if !ok || cell == "" {
			values[rg] = Blank()
			continue
		}
		values[rg] = Textual(cell)
	}
	log.Info("[offline] Resolved %d value(s) from config", len(values))
	return values, nil
}

// MappingRows returns the mapping rows embedded in configuration
func (s *StaticSource) MappingRows() ([][]string, error) {
	log.Info("[offline] Using %d mapping row(s) from config", len(s.Rows))
	return s.Rows, nil
}
