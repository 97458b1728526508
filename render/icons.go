package render

import (
	"github.com/beevik/etree"
)

// Comparison value types and their default colors.
var IconColors = map[string]string{
	"check":       "#10b981",
	"check-empty": "#d1d5db",
	"cross":       "#ef4444",
	"dash":        "#9ca3af",
	"text":        "#374151",
}

var iconPaths = map[string]string{
	"check":       "M20 6L9 17l-5-5",
	"check-empty": "M20 6L9 17l-5-5",
	"cross":       "M18 6L6 18M6 6l12 12",
	"dash":        "M5 12h14",
}

// Icon appends inline svg icon for value type. Unknown types produce nothing
// and false is returned.
func Icon(parent *etree.Element, kind string) bool {
	d, ok := iconPaths[kind]
	if !ok {
		return false
	}
	svg := parent.CreateElement("svg")
	svg.CreateAttr("class", "icon icon-"+kind)
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("viewBox", "0 0 24 24")
	svg.CreateAttr("width", "20")
	svg.CreateAttr("height", "20")
	svg.CreateAttr("fill", "none")
	svg.CreateAttr("stroke", IconColors[kind])
	svg.CreateAttr("stroke-width", "2")
	svg.CreateAttr("stroke-linecap", "round")
	svg.CreateAttr("stroke-linejoin", "round")
	svg.CreateAttr("aria-hidden", "true")
	path := svg.CreateElement("path")
	path.CreateAttr("d", d)
	return true
}
