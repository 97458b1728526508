package collection

import (
	"fmt"
)

// Linked is a primary collection together with lanes - collections which must
// stay index aligned with it: same length, lane[k][i] belongs to primary[i].
type Linked struct {
	Primary Collection
	Lanes   []Collection
}

// Aligned reports whether every lane has the length of the primary.
func (l Linked) Aligned() bool {
	for _, lane := range l.Lanes {
		if len(lane) != len(l.Primary) {
			return false
		}
	}
	return true
}

// Add appends entry built from template to primary and entry built from
// defaults[k] to lane k, all in one mutation.
func (l Linked) Add(template Fields, defaults []Fields, max int) (Linked, error) {
	if len(defaults) != len(l.Lanes) {
		return l, fmt.Errorf("%d defaults for %d lanes: %w", len(defaults), len(l.Lanes), ErrOutOfRange)
	}
	primary, err := Add(l.Primary, template, max)
	if err != nil {
		return l, err
	}
	lanes := make([]Collection, len(l.Lanes))
	for k, lane := range l.Lanes {
		// lanes are never capacity limited on their own
		lanes[k], _ = Add(lane, defaults[k], 0)
	}
	return Linked{Primary: primary, Lanes: lanes}, nil
}

// Remove excises index i from primary and every lane. When i is not valid for
// any of them nothing is removed.
func (l Linked) Remove(i int) (Linked, error) {
	if err := l.check(i); err != nil {
		return l, err
	}
	lanes := make([]Collection, len(l.Lanes))
	for k, lane := range l.Lanes {
		lanes[k] = Excise(lane, i)
	}
	return Linked{Primary: Excise(l.Primary, i), Lanes: lanes}, nil
}

// Move transposes index i with its neighbour in primary and every lane.
func (l Linked) Move(i int, dir Direction) (Linked, error) {
	j, err := target(len(l.Primary), i, dir)
	if err != nil {
		return l, err
	}
	if err := l.check(i); err != nil {
		return l, err
	}
	if err := l.check(j); err != nil {
		return l, err
	}
	lanes := make([]Collection, len(l.Lanes))
	for k, lane := range l.Lanes {
		lanes[k] = Transpose(lane, i, j)
	}
	return Linked{Primary: Transpose(l.Primary, i, j), Lanes: lanes}, nil
}

func (l Linked) check(i int) error {
	if !l.Primary.Valid(i) {
		return fmt.Errorf("linked index %d of %d: %w", i, len(l.Primary), ErrOutOfRange)
	}
	for k, lane := range l.Lanes {
		if !lane.Valid(i) {
			return fmt.Errorf("linked index %d of %d in lane %d: %w", i, len(lane), k, ErrOutOfRange)
		}
	}
	return nil
}

// Repeat returns n copies of the same template, convenient for lanes sharing
// one default.
func Repeat(template Fields, n int) []Fields {
	out := make([]Fields, n)
	for i := range out {
		out[i] = template
	}
	return out
}

// Lanes projects sub-collection stored under field of every owner entry.
func Lanes(owner Collection, field string) []Collection {
	lanes := make([]Collection, len(owner))
	for i, e := range owner {
		lanes[i] = e.Fields.List(field)
	}
	return lanes
}

// SetLanes stores lanes back into owner entries. Owner entries whose lane did
// not change are shared.
func SetLanes(owner Collection, field string, lanes []Collection) Collection {
	out := make(Collection, len(owner))
	for i, e := range owner {
		if i >= len(lanes) || same(e.Fields.List(field), lanes[i]) {
			out[i] = e
			continue
		}
		out[i] = e.with(e.Fields.With(field, lanes[i]))
	}
	return out
}

// Align pads lane with entries built from template or truncates it so it has
// exactly n entries. Lane is returned as is when it is already aligned.
func Align(lane Collection, n int, template Fields) Collection {
	switch {
	case len(lane) == n:
		return lane
	case len(lane) > n:
		return append(Collection{}, lane[:n]...)
	}
	out := make(Collection, len(lane), n)
	copy(out, lane)
	for len(out) < n {
		out = append(out, New(template))
	}
	return out
}

// same reports whether two collections hold identical entries.
func same(a, b Collection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
