package render

import (
	"fmt"

	"github.com/beevik/etree"
)

// UnitRef identifies visual unit produced for collection entry.
type UnitRef struct {
	List string
	ID   string
}

func (u UnitRef) String() string {
	return fmt.Sprintf("%s/%s", u.List, u.ID)
}

// Units returns units of rendered tree in document order. Editor and static
// renderings of the same attributes must produce identical sequences.
func Units(root *etree.Element) []UnitRef {
	var units []UnitRef
	walk(root, func(el *etree.Element) {
		if list := el.SelectAttrValue(AttrUnit, ""); list != "" {
			units = append(units, UnitRef{List: list, ID: el.SelectAttrValue(AttrEntryID, "")})
		}
	})
	return units
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	fn(el)
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}

// Serialize produces markup of rendered tree, indent of 0 produces compact
// output. Tree is not modified.
func Serialize(root *etree.Element, indent int) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.SetRoot(root.Copy())
	if indent > 0 {
		doc.Indent(indent)
	}
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to serialize markup: %w", err)
	}
	return out, nil
}
