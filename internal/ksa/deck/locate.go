package deck

import (
	"bytes"
	"encoding/xml"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/pml"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
)

// Target is one writable text container in the deck, resolved from a
// mapping entry's slide/name/row/col address.
type Target struct {
	Slide int
	Name  string
	body  *dml.CT_TextBody
}

// FindShape resolves the named text shape on the 1-based slide. When
// several shapes share the name, the first in document order wins; that
// tie-break is deliberate and stable across runs.
func (d *Deck) FindShape(slide int, name string) (*Target, error) {
	tree, err := d.spTree(slide)
	if err != nil {
		return nil, err
	}
	return findShape(tree, slide, name)
}

func findShape(tree *pml.CT_GroupShape, slide int, name string) (*Target, error) {
	for _, sp := range shapesInTree(tree) {
		if shapeName(sp) != name {
			continue
		}
		if sp.TxBody == nil {
			return nil, errors.Wrapf(errors.ErrNoTextFrame, "shape %q on slide %d", name, slide)
		}
		return &Target{Slide: slide, Name: name, body: sp.TxBody}, nil
	}
	return nil, errors.Wrapf(errors.ErrTargetNotFound, "shape %q on slide %d", name, slide)
}

// FindTableCell resolves one cell of the named table on the 1-based slide.
// Row and col are 1-based and must fall inside the table's bounds.
func (d *Deck) FindTableCell(slide int, name string, row, col int) (*Target, error) {
	tree, err := d.spTree(slide)
	if err != nil {
		return nil, err
	}
	return findTableCell(tree, slide, name, row, col)
}

func findTableCell(tree *pml.CT_GroupShape, slide int, name string, row, col int) (*Target, error) {
	for _, frame := range framesInTree(tree) {
		if frameName(frame) != name {
			continue
		}
		tbl := frameTable(frame)
		if tbl == nil {
			return nil, errors.Wrapf(errors.ErrNotATable, "%q on slide %d", name, slide)
		}
		if row < 1 || row > len(tbl.Tr) {
			return nil, errors.Wrapf(errors.ErrTargetNotFound,
				"table %q row %d out of range (1..%d)", name, row, len(tbl.Tr))
		}
		tr := tbl.Tr[row-1]
		if col < 1 || col > len(tr.Tc) {
			return nil, errors.Wrapf(errors.ErrTargetNotFound,
				"table %q col %d out of range (1..%d)", name, col, len(tr.Tc))
		}
		tc := tr.Tc[col-1]
		if tc.TxBody == nil {
			tc.TxBody = dml.NewCT_TextBody()
		}
		return &Target{Slide: slide, Name: name, body: tc.TxBody}, nil
	}
	return nil, errors.Wrapf(errors.ErrTargetNotFound, "table %q on slide %d", name, slide)
}

// shapesInTree collects text shapes in document order, descending into
// group shapes so grouped text boxes stay addressable by name.
func shapesInTree(tree *pml.CT_GroupShape) []*pml.CT_Shape {
	var shapes []*pml.CT_Shape
	for _, choice := range tree.Choice {
		shapes = append(shapes, choice.Sp...)
		for _, grp := range choice.GrpSp {
			shapes = append(shapes, shapesInTree(grp)...)
		}
	}
	return shapes
}

// framesInTree collects graphic frames (tables, charts) in document order
func framesInTree(tree *pml.CT_GroupShape) []*pml.CT_GraphicalObjectFrame {
	var frames []*pml.CT_GraphicalObjectFrame
	for _, choice := range tree.Choice {
		frames = append(frames, choice.GraphicFrame...)
		for _, grp := range choice.GrpSp {
			frames = append(frames, framesInTree(grp)...)
		}
	}
	return frames
}

func shapeName(sp *pml.CT_Shape) string {
	if sp.NvSpPr == nil || sp.NvSpPr.CNvPr == nil {
		return ""
	}
	return sp.NvSpPr.CNvPr.NameAttr
}

func frameName(f *pml.CT_GraphicalObjectFrame) string {
	if f.NvGraphicFramePr == nil || f.NvGraphicFramePr.CNvPr == nil {
		return ""
	}
	return f.NvGraphicFramePr.CNvPr.NameAttr
}

// frameTable extracts the DrawingML table held by a graphic frame, or nil
// when the frame carries some other graphic (a chart, a diagram).
//
// Tables that the parser surfaced as raw XSDAny nodes are decoded into a
// typed table once and swapped back into the frame, so later writes to the
// table are marshaled on save.
func frameTable(f *pml.CT_GraphicalObjectFrame) *dml.CT_Table {
	if f.Graphic == nil || f.Graphic.GraphicData == nil {
		return nil
	}
	gd := f.Graphic.GraphicData
	for i, any := range gd.Any {
		switch el := any.(type) {
		case *dml.CT_Table:
			return el
		case *tableAny:
			return el.tbl
		case *unioffice.XSDAny:
			if el.XMLName.Local != "tbl" {
				continue
			}
			tbl, err := decodeTable(el)
			if err != nil {
				continue
			}
			gd.Any[i] = &tableAny{tbl: tbl}
			return tbl
		}
	}
	return nil
}

// tableAny adapts a typed table back into the frame's untyped element
// list, keeping the a:tbl element name on marshal.
type tableAny struct {
	tbl *dml.CT_Table
}

func (t *tableAny) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" {
		start.Name.Local = "a:tbl"
	}
	return t.tbl.MarshalXML(e, start)
}

func (t *tableAny) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	t.tbl = dml.NewCT_Table()
	return t.tbl.UnmarshalXML(d, start)
}

// decodeTable round-trips an XSDAny subtree into a typed table
func decodeTable(raw *unioffice.XSDAny) (*dml.CT_Table, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := raw.MarshalXML(enc, xml.StartElement{Name: raw.XMLName}); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	tbl := dml.NewCT_Table()
	if err := xml.Unmarshal(buf.Bytes(), tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

// tableSize returns rows and columns of a table. Column count prefers the
// grid definition and falls back to the widest row.
func tableSize(tbl *dml.CT_Table) (rows, cols int) {
	rows = len(tbl.Tr)
	if tbl.TblGrid != nil {
		cols = len(tbl.TblGrid.GridCol)
	}
	for _, tr := range tbl.Tr {
		if len(tr.Tc) > cols {
			cols = len(tr.Tc)
		}
	}
	return rows, cols
}
