package collection

import (
	"sort"

	"github.com/maruel/natural"

	"cblocks/utils/debug"
)

// Dump returns indented human readable representation of fields, keys are
// sorted naturally so dumps of the same state are identical. Long texts are
// shortened.
func Dump(f Fields) string {
	tw := debug.NewTreeWriter()
	tw.Limit = dumpTextLimit
	dumpFields(tw, 0, f)
	return tw.String()
}

const dumpTextLimit = 200

func dumpFields(tw *debug.TreeWriter, depth int, f Fields) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	for _, k := range keys {
		switch v := f[k].(type) {
		case Collection:
			tw.Line(depth, "%s: [%d]", k, len(v))
			for i, e := range v {
				tw.Entry(depth+1, i, e.ID)
				dumpFields(tw, depth+2, e.Fields)
			}
		case Fields:
			tw.Line(depth, "%s:", k)
			dumpFields(tw, depth+1, v)
		case map[string]any:
			tw.Line(depth, "%s:", k)
			dumpFields(tw, depth+1, Fields(v))
		default:
			tw.Value(depth, k, v)
		}
	}
}
