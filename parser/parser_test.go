package parser

import (
	"testing"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/event"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, p *Parser) []event.Event {
	t.Helper()
	var got []event.Event
	for {
		e, err := p.NextEvent()
		require.NoError(t, err)
		got = append(got, e)
		if e.Kind == event.Eof {
			return got
		}
	}
}

func str(text string) event.Event    { return event.Event{Kind: event.ValueString, Text: text} }
func field(name string) event.Event  { return event.Event{Kind: event.FieldName, Text: name} }
func intg(n int64) event.Event       { return event.Event{Kind: event.ValueIntegral, Int: n} }
func arr(size int64) event.Event     { return event.Event{Kind: event.StartArray, HasSize: true, Int: size} }

var (
	startObj = event.Event{Kind: event.StartObject}
	endObj   = event.Event{Kind: event.EndObject}
	endArr   = event.Event{Kind: event.EndArray}
	eof      = event.Event{Kind: event.Eof}
)

func TestSeedA_SimpleField(t *testing.T) {
	p := New("name: Alice")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{startObj, field("name"), str("Alice"), endObj, eof}, got)
}

func TestSeedB_NestedObject(t *testing.T) {
	p := New("user:\n  id: 123\n  name: Ada")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("user"),
		startObj, field("id"), intg(123), field("name"), str("Ada"), endObj,
		endObj, eof,
	}, got)
}

func TestSeedC_RootInlineArray(t *testing.T) {
	p := New("[3]: a,b,c")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{arr(3), str("a"), str("b"), str("c"), endArr, eof}, got)
}

func TestSeedD_TabularArray(t *testing.T) {
	p := New("users[2]{id,name}:\n  1,Alice\n  2,Bob")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("users"), arr(2),
		startObj, field("id"), intg(1), field("name"), str("Alice"), endObj,
		startObj, field("id"), intg(2), field("name"), str("Bob"), endObj,
		endArr, endObj, eof,
	}, got)
}

func TestSeedE_ListOfObjects(t *testing.T) {
	p := New("items[2]:\n  - id: 1\n    name: First\n  - id: 2\n    name: Second")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("items"), arr(2),
		startObj, field("id"), intg(1), field("name"), str("First"), endObj,
		startObj, field("id"), intg(2), field("name"), str("Second"), endObj,
		endArr, endObj, eof,
	}, got)
}

func TestSeedF_LonePrimitive(t *testing.T) {
	p := New("42")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{intg(42), eof}, got)
}

func TestEmptyDocumentIsEmptyObject(t *testing.T) {
	p := New("")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{startObj, endObj, eof}, got)
}

func TestListOfPrimitives(t *testing.T) {
	p := New("items[2]:\n  - apple\n  - banana")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("items"), arr(2), str("apple"), str("banana"), endArr, endObj, eof,
	}, got)
}

func TestTabularEmptyFieldIsEmptyString(t *testing.T) {
	p := New("users[1]{id,name,note}:\n  1,Alice,")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("users"), arr(1),
		startObj, field("id"), intg(1), field("name"), str("Alice"), field("note"), str(""), endObj,
		endArr, endObj, eof,
	}, got)
}

func TestPipeDelimitedInlineArray(t *testing.T) {
	p := New("tags[3|]: a|b|c")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("tags"), arr(3), str("a"), str("b"), str("c"), endArr, endObj, eof,
	}, got)
}

func TestNestedArrayOfArrays(t *testing.T) {
	p := New("matrix[2]:\n  - [2]: 1,2\n  - [2]: 3,4")
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{
		startObj, field("matrix"), arr(2),
		arr(2), intg(1), intg(2), endArr,
		arr(2), intg(3), intg(4), endArr,
		endArr, endObj, eof,
	}, got)
}

func TestDedentUnwindingCount(t *testing.T) {
	lex := New("a:\n  b:\n    c: v\nd: w", config.WithStrict(true))
	got := collectEvents(t, lex)
	require.Equal(t, []event.Event{
		startObj,
		field("a"), startObj,
		field("b"), startObj,
		field("c"), str("v"),
		endObj, endObj,
		field("d"), str("w"),
		endObj, eof,
	}, got)
}

func TestStrictRejectsArrayLengthMismatch(t *testing.T) {
	cases := []string{
		"[3]: a,b",
		"[2]: a,b,c",
	}
	for _, in := range cases {
		p := New(in)
		_, err := drainUntilError(t, p)
		require.Error(t, err)
	}
}

func TestStrictRejectsMisalignedIndent(t *testing.T) {
	p := New("user:\n   id: 1")
	_, err := drainUntilError(t, p)
	require.Error(t, err)
}

func TestStrictRejectsTabInIndentation(t *testing.T) {
	p := New("user:\n\tid: 1")
	_, err := drainUntilError(t, p)
	require.Error(t, err)
}

func TestStrictRejectsTabularWidthMismatch(t *testing.T) {
	p := New("users[2]{id,name}:\n  1,Alice\n  2,Bob,extra")
	_, err := drainUntilError(t, p)
	require.Error(t, err)
}

func TestLenientAcceptsIndentMismatch(t *testing.T) {
	p := New("user:\n   id: 1", config.WithLenient())
	got := collectEvents(t, p)
	require.NotEmpty(t, got)
	require.Equal(t, event.Eof, got[len(got)-1].Kind)
}

func TestLenientAcceptsArrayLengthMismatch(t *testing.T) {
	p := New("[2]: a,b,c", config.WithLenient())
	got := collectEvents(t, p)
	require.Equal(t, []event.Event{arr(2), str("a"), str("b"), str("c"), endArr, eof}, got)
}

func drainUntilError(t *testing.T, p *Parser) ([]event.Event, error) {
	t.Helper()
	var got []event.Event
	for {
		e, err := p.NextEvent()
		if err != nil {
			return got, err
		}
		got = append(got, e)
		if e.Kind == event.Eof {
			return got, nil
		}
	}
}
