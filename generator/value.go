package generator

// gval is the generator's internal value tree, used only by buffering-mode
// arrays (spec §4.4.3's "Buffering mode"): when an array's size is not
// known up front, its elements — including arbitrarily nested objects and
// arrays — are captured here instead of being written immediately, so the
// format (inline vs. list) can be decided once the whole array is seen.
// Shaped after the reference decoder's map[string]any/[]any value tree
// (other_examples' toon-format-toon-go decoder), inverted for encoding and
// kept closed/tagged rather than using `any` so field order survives.
type gkind int

const (
	gvString gkind = iota
	gvInt
	gvFloat
	gvTrue
	gvFalse
	gvNull
	gvObject
	gvArray
)

type gval struct {
	kind gkind
	s    string
	i    int64
	f    float64

	// gvObject: keys/vals are parallel and preserve field order.
	keys []string
	vals []gval

	// gvArray: vals holds the elements in order.
	hasSize bool
	size    int64

	// building-only bookkeeping, meaningless once the value is complete.
	pendingField    string
	hasPendingField bool
}

func (v *gval) isComposite() bool {
	return v.kind == gvObject || v.kind == gvArray
}

// attach appends a completed child value to v, which must be an
// in-progress gvObject or gvArray builder.
func (v *gval) attach(child gval) {
	switch v.kind {
	case gvObject:
		v.keys = append(v.keys, v.pendingField)
		v.vals = append(v.vals, child)
		v.pendingField = ""
		v.hasPendingField = false
	case gvArray:
		v.vals = append(v.vals, child)
	}
}
