// Package deck reads and mutates PowerPoint presentations through
// unioffice, locating named shapes and table cells and rewriting their
// text without disturbing run-level formatting.
package deck

import (
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/pml"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/utils"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// Deck is an open presentation. It is not safe for concurrent use; the
// pipeline has exactly one writer and no concurrent readers.
type Deck struct {
	path string
	ppt  *presentation.Presentation
}

// Open loads the presentation at path
func Open(path string) (*Deck, error) {
	if !utils.FileExists(path) {
		return nil, errors.Wrap(errors.ErrDeckNotFound, path)
	}
	ppt, err := presentation.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	log.Debug("Opened presentation %s (%d slides)", path, len(ppt.Slides()))
	return &Deck{path: path, ppt: ppt}, nil
}

// Path returns the file the deck was opened from
func (d *Deck) Path() string { return d.path }

// SlideCount returns the number of slides in the deck
func (d *Deck) SlideCount() int {
	return len(d.ppt.Slides())
}

// spTree returns the shape tree of the 1-based slide index
func (d *Deck) spTree(slide int) (*pml.CT_GroupShape, error) {
	slides := d.ppt.Slides()
	if slide < 1 || slide > len(slides) {
		return nil, errors.Wrapf(errors.ErrSlideOutOfRange, "slide %d (deck has %d)", slide, len(slides))
	}
	csld := slides[slide-1].X().CSld
	if csld == nil || csld.SpTree == nil {
		return nil, errors.Wrapf(errors.ErrSlideOutOfRange, "slide %d has no shape tree", slide)
	}
	return csld.SpTree, nil
}

// SaveTo persists the deck to path. The file is written to a temporary
// sibling first and renamed into place only after a complete save, so a
// failed save leaves any existing file at path untouched.
func (d *Deck) SaveTo(path string) error {
	err := utils.ReplaceFile(path, func(tmpPath string) error {
		return d.ppt.SaveToFile(tmpPath)
	})
	if err != nil {
		return errors.Wrapf(errors.ErrSaveFailed, "%s: %v", path, err)
	}
	log.Debug("Saved presentation to %s", path)
	return nil
}
