package generator

import "strconv"

// renderValue writes a fully-built value tree (produced by buffering-mode
// array collection, see value.go) starting at the given indent level.
// continuing is true when the caller has already positioned the cursor
// mid-line (after a list "- " marker) and the first thing rendered must
// not repeat the indentation.
func (g *Generator) renderValue(v gval, level int, continuing bool) {
	switch v.kind {
	case gvObject:
		g.renderObject(v, level, continuing)
	case gvArray:
		if !continuing {
			g.writeIndent(level)
		}
		g.renderArrayHeaderAndBody(v, level)
	default:
		if !continuing {
			g.writeIndent(level)
		}
		g.raw(scalarText(v, 0, false))
		g.nl()
	}
}

func (g *Generator) renderObject(v gval, level int, continuing bool) {
	for i, k := range v.keys {
		val := v.vals[i]
		skipIndent := continuing && i == 0
		g.renderField(k, val, level, skipIndent)
	}
}

func (g *Generator) renderField(name string, val gval, level int, skipIndent bool) {
	if !skipIndent {
		g.writeIndent(level)
	}
	switch val.kind {
	case gvObject:
		g.raw(quoteKeyIfNeeded(name) + ":")
		g.nl()
		g.renderObject(val, level+1, false)
	case gvArray:
		g.raw(quoteKeyIfNeeded(name))
		g.renderArrayHeaderAndBody(val, level)
	default:
		g.raw(quoteKeyIfNeeded(name) + ": " + scalarText(val, 0, false))
		g.nl()
	}
}

// renderArrayHeaderAndBody writes an already-fully-built array value's
// header and body, starting at the bracket: the caller (renderField, the
// list-element loop below, or deliverBuilt) has already written any
// preceding key text or list "- " marker.
func (g *Generator) renderArrayHeaderAndBody(v gval, level int) {
	n := len(v.vals)
	allPrimitive := true
	for _, it := range v.vals {
		if it.isComposite() {
			allPrimitive = false
			break
		}
	}
	delim := g.cfg.Delimiter
	useInline := allPrimitive && n <= inlineThreshold

	header := "[" + strconv.Itoa(n) + delimMarkerText(delim) + "]:"
	if useInline {
		g.raw(header)
		for i, it := range v.vals {
			if i == 0 {
				g.raw(" ")
			} else {
				g.raw(string(delim))
			}
			g.raw(scalarText(it, delim, true))
		}
		g.nl()
		return
	}

	g.raw(header)
	g.nl()
	for _, it := range v.vals {
		g.writeIndent(level + 1)
		g.raw("- ")
		switch it.kind {
		case gvObject:
			g.renderObject(it, level+2, true)
		case gvArray:
			g.renderArrayHeaderAndBody(it, level+1)
		default:
			g.raw(scalarText(it, delim, true))
			g.nl()
		}
	}
}

// inlineThreshold is the largest buffering-mode primitive-array size for
// which the generator prefers inline form over list form (spec §4.4.3, "~10").
const inlineThreshold = 10
