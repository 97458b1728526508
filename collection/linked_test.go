package collection

import (
	"errors"
	"testing"
)

func rowsAndCells() Linked {
	return Linked{
		Primary: Collection{
			{ID: "r0", Fields: Fields{"name": "row 0"}},
			{ID: "r1", Fields: Fields{"name": "row 1"}},
		},
		Lanes: []Collection{{
			{ID: "c0", Fields: Fields{"value": false}},
			{ID: "c1", Fields: Fields{"value": true}},
		}},
	}
}

func TestLinked_Remove(t *testing.T) {
	l := rowsAndCells()

	got, err := l.Remove(0)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if ids := got.Primary.IDs(); len(ids) != 1 || ids[0] != "r1" {
		t.Errorf("rows = %v, want [r1]", ids)
	}
	if ids := got.Lanes[0].IDs(); len(ids) != 1 || ids[0] != "c1" {
		t.Errorf("cells = %v, want [c1]", ids)
	}
	if !got.Aligned() {
		t.Error("Remove() broke alignment")
	}
}

func TestLinked_RemoveAllOrNothing(t *testing.T) {
	l := rowsAndCells()
	l.Lanes = append(l.Lanes, Collection{{ID: "short", Fields: Fields{}}})

	got, err := l.Remove(1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Remove() error = %v, want ErrOutOfRange", err)
	}
	sameEntries(t, got.Primary, l.Primary)
	for k := range l.Lanes {
		sameEntries(t, got.Lanes[k], l.Lanes[k])
	}
}

func TestLinked_Add(t *testing.T) {
	l := rowsAndCells()

	got, err := l.Add(Fields{"name": "row 2"}, Repeat(Fields{"value": false}, 1), 3)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(got.Primary) != 3 || !got.Aligned() {
		t.Fatalf("Add() lengths = %d/%d", len(got.Primary), len(got.Lanes[0]))
	}
	if got.Lanes[0][2].Bool("value") {
		t.Error("Add() lane entry was not built from default")
	}

	again, err := got.Add(Fields{}, Repeat(Fields{}, 1), 3)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Add() at capacity error = %v", err)
	}
	sameEntries(t, again.Primary, got.Primary)
	sameEntries(t, again.Lanes[0], got.Lanes[0])

	_, err = l.Add(Fields{}, nil, 0)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Add() with missing defaults error = %v", err)
	}
}

func TestLinked_Move(t *testing.T) {
	l := rowsAndCells()

	got, err := l.Move(1, Up)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if got.Primary[0].ID != "r1" || got.Lanes[0][0].ID != "c1" {
		t.Errorf("Move() rows = %v, cells = %v", got.Primary.IDs(), got.Lanes[0].IDs())
	}

	if _, err := l.Move(1, Down); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Move() last down error = %v", err)
	}
}

func TestLinked_AlignmentUnderSequence(t *testing.T) {
	l := Linked{Lanes: []Collection{{}, {}}}
	defaults := Repeat(Fields{"type": "cross"}, 2)

	steps := []func(Linked) (Linked, error){
		func(l Linked) (Linked, error) { return l.Add(Fields{}, defaults, 5) },
		func(l Linked) (Linked, error) { return l.Add(Fields{}, defaults, 5) },
		func(l Linked) (Linked, error) { return l.Remove(5) },
		func(l Linked) (Linked, error) { return l.Add(Fields{}, defaults, 5) },
		func(l Linked) (Linked, error) { return l.Remove(0) },
		func(l Linked) (Linked, error) { return l.Move(0, Down) },
		func(l Linked) (Linked, error) { return l.Remove(1) },
		func(l Linked) (Linked, error) { return l.Remove(0) },
		func(l Linked) (Linked, error) { return l.Remove(0) },
	}
	for i, step := range steps {
		l, _ = step(l)
		if !l.Aligned() {
			t.Fatalf("step %d: lengths %d/%d/%d", i, len(l.Primary), len(l.Lanes[0]), len(l.Lanes[1]))
		}
	}
	if len(l.Primary) != 0 {
		t.Errorf("final length = %d, want 0", len(l.Primary))
	}
}

func TestLanes_SetLanes(t *testing.T) {
	owner := Collection{
		{ID: "f0", Fields: Fields{"values": Collection{{ID: "v00", Fields: Fields{}}}}},
		{ID: "f1", Fields: Fields{"values": Collection{{ID: "v10", Fields: Fields{}}}}},
	}
	lanes := Lanes(owner, "values")
	lanes[1], _ = Add(lanes[1], Fields{}, 0)

	got := SetLanes(owner, "values", lanes)
	if got[0] != owner[0] {
		t.Error("SetLanes() did not share unchanged owner entry")
	}
	if got[1] == owner[1] || got[1].ID != "f1" {
		t.Error("SetLanes() did not replace changed owner entry")
	}
	if n := len(got[1].Fields.List("values")); n != 2 {
		t.Errorf("SetLanes() lane length = %d, want 2", n)
	}
}

func TestAlign(t *testing.T) {
	lane := abc()
	if got := Align(lane, 3, Fields{}); &got[0] != &lane[0] {
		t.Error("Align() copied aligned lane")
	}
	if got := Align(lane, 1, Fields{}); len(got) != 1 || got[0] != lane[0] {
		t.Errorf("Align() truncate = %v", got.IDs())
	}
	got := Align(lane, 5, Fields{"type": "cross"})
	if len(got) != 5 || got[4].String("type", "") != "cross" {
		t.Errorf("Align() pad = %v", got.IDs())
	}
}
