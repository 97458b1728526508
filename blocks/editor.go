package blocks

import (
	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/render"
)

// Displayer is implemented by blocks which keep editor display state, such
// as selected or expanded entries, next to their attributes.
type Displayer interface {
	// Display performs operation which changes display state only. It
	// returns false for operations addressed to attributes.
	Display(state *render.EditorState, attrs collection.Fields, op Op) (bool, error)
	// Follow brings display state in line with successfully applied
	// attribute operation.
	Follow(state *render.EditorState, before, after collection.Fields, op Op)
}

// Selection is how selected entry of list follows attribute changes. Added
// entry becomes selected. Selection stays with its entry when entries move.
type Selection struct {
	List string
	// Clamp selects entry taking place of the removed selected one (or the
	// last entry), otherwise removal clears selection.
	Clamp bool
}

func (sel Selection) Follow(state *render.EditorState, before, after collection.Fields) {
	prev, next := before.List(sel.List), after.List(sel.List)
	if id := added(prev, next); id != "" {
		state.Select(sel.List, id)
		return
	}

	id := state.SelectedID(sel.List)
	if id == "" || next.Index(id) >= 0 {
		return
	}
	if !sel.Clamp || len(next) == 0 {
		state.Select(sel.List, "")
		return
	}
	i := min(max(prev.Index(id), 0), len(next)-1)
	state.Select(sel.List, next[i].ID)
}

// added returns id of the last entry of next missing from prev.
func added(prev, next collection.Collection) string {
	for i := len(next) - 1; i >= 0; i-- {
		if prev.Index(next[i].ID) < 0 {
			return next[i].ID
		}
	}
	return ""
}

// Session is single block instance open in the editor: attributes come and
// go with every operation, display state lives as long as the session.
type Session struct {
	block Block
	state *render.EditorState
	env   *Env
}

func NewSession(b Block, env *Env) *Session {
	return &Session{block: b, state: render.NewEditorState(), env: env}
}

func (s *Session) State() *render.EditorState {
	return s.state
}

// Display performs display only operation. It returns false when operation
// has to go to Apply.
func (s *Session) Display(attrs collection.Fields, op Op) (bool, error) {
	d, ok := s.block.(Displayer)
	if !ok {
		return false, nil
	}
	return d.Display(s.state, attrs, op)
}

// Apply applies attribute operation and updates display state after it.
func (s *Session) Apply(attrs collection.Fields, op Op) (collection.Fields, error) {
	next, err := s.block.Apply(attrs, op, s.env)
	if err != nil {
		return next, err
	}
	if d, ok := s.block.(Displayer); ok {
		d.Follow(s.state, attrs, next, op)
	}
	return next, nil
}

// Perform is Display falling back to Apply.
func (s *Session) Perform(attrs collection.Fields, op Op) (collection.Fields, error) {
	if handled, err := s.Display(attrs, op); handled || err != nil {
		return attrs, err
	}
	return s.Apply(attrs, op)
}

// Edit renders editor view with session display state.
func (s *Session) Edit(attrs collection.Fields, ctx *render.Context) *etree.Element {
	return s.block.Edit(attrs, s.state, ctx)
}
