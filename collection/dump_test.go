package collection

import (
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	f := Fields{
		"title":  "Hub",
		"item10": 1,
		"item2":  true,
		"cards": Collection{
			{ID: "c1", Fields: Fields{"title": "Card"}},
		},
	}
	got := Dump(f)
	want := strings.Join([]string{
		"cards: [1]",
		"  #0 id=c1",
		"    title: \"Card\"",
		"item2: true",
		"item10: 1",
		"title: \"Hub\"",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Dump():\ngot:\n%s\nwant:\n%s", got, want)
	}
	if Dump(f) != got {
		t.Error("Dump() is not stable")
	}
}
