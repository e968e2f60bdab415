// Package resolve extracts named quantities from heterogeneous,
// partially-populated balance-sheet records.
package resolve

import (
	"math"
	"strings"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Resolve tries each candidate field name in order against rec, first as
// given and then with uppercase boundaries expanded to spaces ("NetDebt" ->
// "Net Debt"), tolerating the two naming conventions upstream sources use.
// The first present, non-NaN value wins. Absence is silent: the caller's
// default is returned, so a resolved def is ambiguous with "reported as def".
func Resolve(rec types.Record, def float64, names ...string) float64 {
	for _, name := range names {
		if v, ok := lookup(rec, name); ok {
			return v
		}
		if spaced := spaceOut(name); spaced != name {
			if v, ok := lookup(rec, spaced); ok {
				return v
			}
		}
	}
	return def
}

func lookup(rec types.Record, name string) (float64, bool) {
	v, ok := rec[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// spaceOut inserts a space before every non-leading uppercase letter.
func spaceOut(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
