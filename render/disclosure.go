package render

import (
	"fmt"

	"cblocks/collection"
)

// Disclosure is expanded/collapsed state of collection entries. It is keyed
// by entry id so reordering never detaches state from its entry.
type Disclosure struct {
	open   map[string]bool
	seeded bool
}

func NewDisclosure() *Disclosure {
	return &Disclosure{open: make(map[string]bool)}
}

// Sync seeds default state (first entry expanded, others collapsed) the first
// time collection is seen non empty and forgets entries which are gone.
// Repeated calls with the same collection change nothing.
func (d *Disclosure) Sync(c collection.Collection) {
	if !d.seeded && len(c) > 0 {
		d.open[c[0].ID] = true
		d.seeded = true
	}
	for id := range d.open {
		if c.Index(id) < 0 {
			delete(d.open, id)
		}
	}
}

func (d *Disclosure) Expanded(id string) bool {
	return d.open[id]
}

func (d *Disclosure) Toggle(id string) {
	d.open[id] = !d.open[id]
}

// EditorState is derived display state of one block instance in the editor.
// It is never persisted.
type EditorState struct {
	disclosures map[string]*Disclosure
	selected    map[string]string
}

func NewEditorState() *EditorState {
	return &EditorState{
		disclosures: make(map[string]*Disclosure),
		selected:    make(map[string]string),
	}
}

// Disclosure returns disclosure state of collection list synced with c.
func (s *EditorState) Disclosure(list string, c collection.Collection) *Disclosure {
	d, ok := s.disclosures[list]
	if !ok {
		d = NewDisclosure()
		s.disclosures[list] = d
	}
	d.Sync(c)
	return d
}

// Select marks entry of list as selected, empty id clears selection.
func (s *EditorState) Select(list, id string) {
	if id == "" {
		delete(s.selected, list)
		return
	}
	s.selected[list] = id
}

// Selected returns index of selected entry of c or -1.
func (s *EditorState) Selected(list string, c collection.Collection) int {
	id, ok := s.selected[list]
	if !ok {
		return -1
	}
	return c.Index(id)
}

// SelectedID returns id of selected entry of list, empty when nothing is
// selected.
func (s *EditorState) SelectedID(list string) string {
	return s.selected[list]
}

// SelectAt selects entry i of c. Invalid index leaves selection alone.
func (s *EditorState) SelectAt(list string, c collection.Collection, i int) error {
	if !c.Valid(i) {
		return fmt.Errorf("select %d of %d: %w", i, len(c), collection.ErrOutOfRange)
	}
	s.Select(list, c[i].ID)
	return nil
}

// ToggleAt flips expanded state of entry i of c.
func (s *EditorState) ToggleAt(list string, c collection.Collection, i int) error {
	if !c.Valid(i) {
		return fmt.Errorf("toggle %d of %d: %w", i, len(c), collection.ErrOutOfRange)
	}
	s.Disclosure(list, c).Toggle(c[i].ID)
	return nil
}
