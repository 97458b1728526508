package collection

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Rejections. Operations returning one of these always return their input
// unchanged, callers may treat them as no-ops.
var (
	ErrOutOfRange       = errors.New("index out of range")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrNotCollection is not a rejection, it means broken document.
	ErrNotCollection = errors.New("not a collection")
)

// Direction of adjacent move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = +1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return strconv.Itoa(int(d))
}

// MarshalText implements the text marshaller method.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts "up", "down" and numeric offsets, scripts tend to use
// either.
func (d *Direction) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(strings.TrimSpace(string(text))); s {
	case "up":
		*d = Up
	case "down":
		*d = Down
	default:
		n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
		if err != nil {
			return fmt.Errorf("bad move direction %q", s)
		}
		*d = Direction(n)
	}
	return nil
}

// Add appends entry built from template. When max is positive and collection
// already holds max entries nothing is added.
func Add(c Collection, template Fields, max int) (Collection, error) {
	if max > 0 && len(c) >= max {
		return c, fmt.Errorf("add to collection of %d (max %d): %w", len(c), max, ErrCapacityExceeded)
	}
	return append(slices.Clip(c), New(template)), nil
}

// Remove excises entry at index i preserving order of the rest.
func Remove(c Collection, i int) (Collection, error) {
	if !c.Valid(i) {
		return c, fmt.Errorf("remove %d of %d: %w", i, len(c), ErrOutOfRange)
	}
	return Excise(c, i), nil
}

// RemoveAtLeast is Remove which refuses to shrink collection below min
// entries.
func RemoveAtLeast(c Collection, i, min int) (Collection, error) {
	if !c.Valid(i) {
		return c, fmt.Errorf("remove %d of %d: %w", i, len(c), ErrOutOfRange)
	}
	if len(c) <= min {
		return c, fmt.Errorf("remove from collection of %d (min %d): %w", len(c), min, ErrCapacityExceeded)
	}
	return Excise(c, i), nil
}

// UpdateField sets single field of entry at index i. Field names are not
// validated.
func UpdateField(c Collection, i int, name string, value any) (Collection, error) {
	if !c.Valid(i) {
		return c, fmt.Errorf("update %q at %d of %d: %w", name, i, len(c), ErrOutOfRange)
	}
	return replaceAt(c, i, c[i].with(c[i].Fields.With(name, value))), nil
}

// Update merges several fields into entry at index i in one mutation.
func Update(c Collection, i int, updates Fields) (Collection, error) {
	if !c.Valid(i) {
		return c, fmt.Errorf("update at %d of %d: %w", i, len(c), ErrOutOfRange)
	}
	return replaceAt(c, i, c[i].with(c[i].Fields.Merge(updates))), nil
}

// UpdateNested replaces sub-collection stored under field of entry at index i
// with result of fn. Errors from fn are returned with collection unchanged.
func UpdateNested(c Collection, i int, field string, fn func(Collection) (Collection, error)) (Collection, error) {
	if !c.Valid(i) {
		return c, fmt.Errorf("update %q at %d of %d: %w", field, i, len(c), ErrOutOfRange)
	}
	sub, err := c[i].Fields.Collection(field)
	if err != nil {
		return c, fmt.Errorf("update %q at %d: %w", field, i, err)
	}
	if sub, err = fn(sub); err != nil {
		return c, err
	}
	return replaceAt(c, i, c[i].with(c[i].Fields.With(field, sub))), nil
}

// Move swaps entry at index i with its neighbour in direction dir.
func Move(c Collection, i int, dir Direction) (Collection, error) {
	j, err := target(len(c), i, dir)
	if err != nil {
		return c, err
	}
	return Transpose(c, i, j), nil
}

// MoveAligned moves entry in c and performs the same transposition on
// parallel metadata sequence meta. Neither is changed on rejection.
func MoveAligned[T any](c Collection, meta []T, i int, dir Direction) (Collection, []T, error) {
	j, err := target(len(c), i, dir)
	if err != nil {
		return c, meta, err
	}
	if len(meta) != len(c) {
		return c, meta, fmt.Errorf("metadata of %d for collection of %d: %w", len(meta), len(c), ErrOutOfRange)
	}
	return Transpose(c, i, j), Transpose(meta, i, j), nil
}

// Map returns collection where each entry gets fields returned by fn, keeping
// its id. Entries for which fn returns nil are shared.
func Map(c Collection, fn func(*Entry) Fields) Collection {
	out := make(Collection, len(c))
	for i, e := range c {
		if f := fn(e); f != nil {
			out[i] = e.with(f)
			continue
		}
		out[i] = e
	}
	return out
}

// Transpose returns copy of s with elements i and j swapped.
func Transpose[S ~[]E, E any](s S, i, j int) S {
	out := slices.Clone(s)
	out[i], out[j] = out[j], out[i]
	return out
}

// Excise returns copy of s without element i.
func Excise[S ~[]E, E any](s S, i int) S {
	out := make(S, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func replaceAt(c Collection, i int, e *Entry) Collection {
	out := slices.Clone(c)
	out[i] = e
	return out
}

func target(n, i int, dir Direction) (int, error) {
	if dir != Up && dir != Down {
		return 0, fmt.Errorf("move %d by %d: %w", i, dir, ErrOutOfRange)
	}
	j := i + int(dir)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("move %d to %d of %d: %w", i, j, n, ErrOutOfRange)
	}
	return j, nil
}
