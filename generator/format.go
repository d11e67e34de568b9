package generator

import (
	"strconv"
	"strings"
)

// formatInt canonicalizes an integral scalar (spec §4.4.1): decimal
// digits, optional leading '-', no leading zeros. strconv.FormatInt
// already produces this shape for any int64, including 0.
func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// formatFloat canonicalizes a fractional scalar (spec §4.4.1): no
// exponent notation, no trailing zeros beyond the one required to keep
// the fractional marker, and zero collapses to the bare digit "0"
// regardless of sign (the spec's "never -0" rule, generalized to the
// fractional zero case per property 5's generate(-0.0) = "0"; see
// DESIGN.md for the reconciliation with generate(42.0) = "42.0").
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isValidUnquotedKey reports whether name matches [A-Za-z_][A-Za-z0-9_.]*
// and is not one of the reserved literals (spec §4.4.1's key rule).
func isValidUnquotedKey(name string) bool {
	if name == "" {
		return false
	}
	if !isIdentStartByte(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		b := name[i]
		if !isIdentStartByte(b) && !(b >= '0' && b <= '9') && b != '.' {
			return false
		}
	}
	switch name {
	case "true", "false", "null":
		return false
	}
	return true
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// looksLikeNumber reports whether s matches the lexer's number grammar,
// including the forbidden-leading-zero form ("007") that the lexer itself
// reclassifies as an identifier but which the generator still quotes
// conservatively per spec §4.4.1.
func looksLikeNumber(s string) bool {
	i, n := 0, len(s)
	if i < n && s[i] == '-' {
		i++
	}
	if i >= n || !isDigitByte(s[i]) {
		return false
	}
	for i < n && isDigitByte(s[i]) {
		i++
	}
	if i < n && s[i] == '.' {
		j := i + 1
		if j >= n || !isDigitByte(s[j]) {
			return false
		}
		i = j
		for i < n && isDigitByte(s[i]) {
			i++
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j >= n || !isDigitByte(s[j]) {
			return false
		}
		i = j
		for i < n && isDigitByte(s[i]) {
			i++
		}
	}
	return i == n
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func hasEdgeWhitespace(s string) bool {
	if s == "" {
		return false
	}
	isWS := func(b byte) bool { return b == ' ' || b == '\t' }
	return isWS(s[0]) || isWS(s[len(s)-1])
}

func hasStructuralChar(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ':', '"', '\\', '[', ']', '{', '}', ',', '|', '\t', '\n', '\r':
			return true
		}
		if s[i] < 0x20 {
			return true
		}
	}
	return false
}

// needsQuoting implements the string-quoting predicate of spec §4.4.1.
// delim/hasDelim carry the active delimiter of the enclosing array, if
// any; object field values have no enclosing array and pass hasDelim =
// false, since the rule about containing "the active delimiter" is
// vacuous outside array element position.
func needsQuoting(s string, delim byte, hasDelim bool) bool {
	switch {
	case s == "":
		return true
	case hasEdgeWhitespace(s):
		return true
	case s == "true" || s == "false" || s == "null":
		return true
	case looksLikeNumber(s):
		return true
	case hasStructuralChar(s):
		return true
	case s == "-" || strings.HasPrefix(s, "- "):
		return true
	case strings.HasPrefix(s, "#"):
		return true
	case hasDelim && strings.IndexByte(s, delim) >= 0:
		return true
	default:
		return false
	}
}

// escapeQuoted applies the quoted-string escape alphabet of spec §4.1.4
// (\\, \", \n, \r, \t); every other byte passes through unescaped.
func escapeQuoted(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func quoteAndEscape(s string) string {
	return `"` + escapeQuoted(s) + `"`
}

// quoteKeyIfNeeded renders an object or tabular field name, quoting it
// per spec §4.4.1's key rule.
func quoteKeyIfNeeded(name string) string {
	if isValidUnquotedKey(name) {
		return name
	}
	return quoteAndEscape(name)
}

// scalarText renders a scalar gval, quoting strings per spec §4.4.1.
// hasDelim/delim describe the enclosing array's active delimiter, if the
// scalar is being written as an array element; object field values pass
// hasDelim = false.
func scalarText(v gval, delim byte, hasDelim bool) string {
	switch v.kind {
	case gvString:
		if needsQuoting(v.s, delim, hasDelim) {
			return quoteAndEscape(v.s)
		}
		return v.s
	case gvInt:
		return formatInt(v.i)
	case gvFloat:
		return formatFloat(v.f)
	case gvTrue:
		return "true"
	case gvFalse:
		return "false"
	case gvNull:
		return "null"
	default:
		return ""
	}
}

// delimMarkerText renders the optional delimiter marker inside an array
// header's brackets (spec §6.1): absent for ',', "|" for pipe, a literal
// tab for Htab.
func delimMarkerText(delim byte) string {
	switch delim {
	case '|':
		return "|"
	case '\t':
		return "\t"
	default:
		return ""
	}
}
