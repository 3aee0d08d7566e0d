package deck

// Discovery helpers for operator tooling: read-only listings of what a
// slide contains, used when writing the mapping table.

// ShapeInfo describes one object on a slide
type ShapeInfo struct {
	Name        string
	Kind        string // "shape", "table", "picture" or "connector"
	HasText     bool
	TextPreview string
	Rows, Cols  int // set for tables
}

// TableInfo describes one table on a slide
type TableInfo struct {
	Name       string
	Rows, Cols int
}

const previewLen = 50

// ListShapes enumerates the objects on the 1-based slide in document order
func (d *Deck) ListShapes(slide int) ([]ShapeInfo, error) {
	tree, err := d.spTree(slide)
	if err != nil {
		return nil, err
	}

	var infos []ShapeInfo
	for _, sp := range shapesInTree(tree) {
		info := ShapeInfo{Name: shapeName(sp), Kind: "shape"}
		if sp.TxBody != nil {
			info.HasText = true
			info.TextPreview = preview(bodyText(sp.TxBody))
		}
		infos = append(infos, info)
	}
	for _, frame := range framesInTree(tree) {
		info := ShapeInfo{Name: frameName(frame), Kind: "graphic frame"}
		if tbl := frameTable(frame); tbl != nil {
			info.Kind = "table"
			info.Rows, info.Cols = tableSize(tbl)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ListTables enumerates the tables on the 1-based slide in document order
func (d *Deck) ListTables(slide int) ([]TableInfo, error) {
	tree, err := d.spTree(slide)
	if err != nil {
		return nil, err
	}

	var infos []TableInfo
	for _, frame := range framesInTree(tree) {
		tbl := frameTable(frame)
		if tbl == nil {
			continue
		}
		rows, cols := tableSize(tbl)
		infos = append(infos, TableInfo{Name: frameName(frame), Rows: rows, Cols: cols})
	}
	return infos, nil
}

func preview(s string) string {
	if len(s) > previewLen {
		return s[:previewLen] + "..."
	}
	return s
}
