package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/levelkit/kdl"
)

func TestMessages(t *testing.T) {
	src := NewSource("test.level.kdl", "plane 1")
	span := kdl.Span{Offset: 0, Length: 5}

	cases := []struct {
		name string
		err  *Error
		want string
		kind Kind
	}{
		{"missing", src.MissingElement("spawn", nil), "Missing element 'spawn'", KindStructural},
		{"no_children", src.NoChildren(span), "Element has no children", KindStructural},
		{"no_property", src.NoEntry(kdl.Prop("type"), span), "Element missing property 'type'", KindStructural},
		{"no_argument", src.NoEntry(kdl.Arg(1), span), "Element missing argument 1", KindStructural},
		{"one_type", src.WrongValueType(kdl.Bool, []kdl.Kind{kdl.String}, span),
			"Element value has type bool but should have been string", KindTypeMismatch},
		{"two_types", src.WrongValueType(kdl.String, []kdl.Kind{kdl.Integer, kdl.Float}, span),
			"Element value has type string but should have been either integer or float", KindTypeMismatch},
		{"three_types", src.WrongValueType(kdl.Null, []kdl.Kind{kdl.Integer, kdl.Float, kdl.String}, span),
			"Element value has type null but should have been one of integer, float, or string", KindTypeMismatch},
		{"parse", src.ParseError("bad", span), "Element value parsing error: bad", KindTypeMismatch},
		{"variant_one", src.NotAVariant("q", []string{"x"}, span),
			"Invalid variant provided: 'q', the allowed variant is 'x'", KindVariant},
		{"variant_two", src.NotAVariant("q", []string{"static", "death"}, span),
			"Invalid variant provided: 'q', the allowed variants are 'static' and 'death'", KindVariant},
		{"variant_three", src.NotAVariant("q", []string{"x", "y", "z"}, span),
			"Invalid variant provided: 'q', the allowed variants are 'x', 'y', and 'z'", KindVariant},
		{"resolution", src.Resolution(errors.New("no builtin"), span),
			"Element value parsing error: no builtin", KindResolution},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Len(t, c.err.Diagnostics, 1)
			d := c.err.Diagnostics[0]
			assert.Equal(t, c.want, d.Message)
			assert.Equal(t, c.kind, d.Kind)
			assert.Same(t, src, d.Source)
			assert.True(t, c.err.IsFailure())
		})
	}
}

func TestErrorDisplay(t *testing.T) {
	src := NewSource("a", "")
	err := src.MissingElement("spawn", nil)
	assert.Equal(t, "Failed to bind KDL document to object structure", err.Error())

	err.Display = "Level is broken"
	assert.Equal(t, "Level is broken", err.Error())
}

func TestIsFailure(t *testing.T) {
	src := NewSource("a", "node")
	span := kdl.Span{Length: 4}

	assert.False(t, (&Error{}).IsFailure())
	assert.False(t, src.Warn("unused", span).IsFailure())
	assert.True(t, src.Err("bad", nil).IsFailure())

	assert.False(t, IsFailure(nil))
	assert.False(t, IsFailure(src.Warn("unused", span)))
	assert.True(t, IsFailure(errors.New("io")))
	assert.True(t, IsFailure(Join(src.Warn("unused", span), src.NoChildren(span))))
}

func TestJoinKeepsOrder(t *testing.T) {
	src := NewSource("a", "one two three")
	a := src.Err("a", nil)
	b := src.Warn("b", kdl.Span{Offset: 4, Length: 3})
	c := src.Err("c", nil)

	err := Join(a, nil, b, c)
	de, ok := As(err)
	require.True(t, ok)
	require.Len(t, de.Diagnostics, 3)
	assert.Equal(t, "a", de.Diagnostics[0].Message)
	assert.Equal(t, "b", de.Diagnostics[1].Message)
	assert.Equal(t, "c", de.Diagnostics[2].Message)
	assert.Same(t, src, de.Source)

	assert.NoError(t, Join())
	assert.NoError(t, Join(nil, nil))
}

func TestJoinForeignError(t *testing.T) {
	src := NewSource("a", "")
	err := Join(errors.New("disk on fire"), src.Err("x", nil))
	de, ok := As(err)
	require.True(t, ok)
	require.Len(t, de.Diagnostics, 2)
	assert.Equal(t, "disk on fire", de.Diagnostics[0].Message)
	assert.Equal(t, SeverityError, de.Diagnostics[0].Severity)
}

func TestJoinAssociative(t *testing.T) {
	src := NewSource("a", "")
	a, b, c := src.Err("a", nil), src.Err("b", nil), src.Err("c", nil)

	left, _ := As(Join(Join(a, b), c))
	right, _ := As(Join(a, Join(b, c)))
	assert.Equal(t, messages(left), messages(right))
}

func TestMerge(t *testing.T) {
	src := NewSource("a", "")

	x, y, err := Merge2(Ok(1), Ok("one"))
	require.NoError(t, err)
	assert.Equal(t, 1, x)
	assert.Equal(t, "one", y)

	_, _, _, err = Merge3(Fail[int](src.Err("first", nil)), Ok(2.0), Fail[string](src.Err("third", nil)))
	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "third"}, messages(de))

	a, b, c, d, e, err := Merge5(Ok(1), Ok(2), Ok(3), Ok(4), R(5, src.Warn("late", kdl.Span{})))
	require.Error(t, err)
	assert.False(t, IsFailure(err))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, []int{a, b, c, d, e})
}

func TestMergeAll(t *testing.T) {
	src := NewSource("a", "")

	values, err := MergeAll([]Result[int]{Ok(1), Ok(2)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)

	values, err = MergeAll([]Result[int]{})
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = MergeAll([]Result[int]{Ok(1), Fail[int](src.Err("e2", nil)), Ok(3), Fail[int](src.Err("e4", nil))})
	assert.Nil(t, values)
	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"e2", "e4"}, messages(de))
}

func TestCollector(t *testing.T) {
	src := NewSource("a", "")
	var c Collector
	assert.True(t, c.Add(nil))
	assert.False(t, c.Failed())
	assert.NoError(t, c.Err())

	assert.True(t, c.Add(src.Warn("w", kdl.Span{})))
	assert.False(t, c.Failed())
	assert.False(t, c.Add(src.Err("e", nil)))
	assert.True(t, c.Failed())
}

func TestPosition(t *testing.T) {
	src := NewSource("a", "first\nsecond line\nthird")
	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{6, 2, 1},
		{13, 2, 8},
		{18, 3, 1},
		{100, 3, 6},
	}
	for _, c := range cases {
		line, col := src.Position(c.offset)
		assert.Equal(t, c.line, line, "offset %d", c.offset)
		assert.Equal(t, c.col, col, "offset %d", c.offset)
	}
}

func TestRender(t *testing.T) {
	text := "spawn {\n    pos 1 2\n}\n"
	src := NewSource("demo.level.kdl", text)
	err := Join(
		src.ParseError("expected 3 numbers", kdl.Span{Offset: 12, Length: 7}),
		src.Warn("Unknown element 'bogus'", kdl.Span{Offset: 0, Length: 5}),
	)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, err, RenderOptions{Width: 80}))
	out := buf.String()
	assert.Contains(t, out, "Element value parsing error: expected 3 numbers")
	assert.Contains(t, out, "demo.level.kdl line 2")
	assert.Contains(t, out, "pos 1 2")
	assert.Contains(t, out, "Unknown element 'bogus'")

	buf.Reset()
	require.NoError(t, Render(&buf, errors.New("plain"), RenderOptions{}))
	assert.Equal(t, "Error: plain\n", buf.String())
}

func TestLiteralSource(t *testing.T) {
	src := &Source{Name: "lit.level.kdl", Text: "plane\n  true"}
	line, col := src.Position(8)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)

	err := src.WrongValueType(kdl.Bool, []kdl.Kind{kdl.Integer, kdl.Float}, kdl.Span{Offset: 8, Length: 4})
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, err, RenderOptions{}))
	assert.Contains(t, buf.String(), "lit.level.kdl line 2")
}

func TestFilterAndDetailed(t *testing.T) {
	src := NewSource("a.level.kdl", "spawn\nbogus\n")
	err := Join(
		src.MissingElement("pos", &kdl.Span{Offset: 0, Length: 5}),
		src.Warn("Unknown element 'bogus'", kdl.Span{Offset: 6, Length: 5}),
		src.New(Diagnostic{Message: "hint", Severity: SeverityAdvice}),
	)
	de, ok := As(err)
	require.True(t, ok)

	assert.Len(t, de.Filter(SeverityAdvice), 3)
	warnings := de.Filter(SeverityWarning)
	require.Len(t, warnings, 2)
	assert.Equal(t, "Unknown element 'bogus'", warnings[1].Message)
	assert.Len(t, de.Filter(SeverityError), 1)

	assert.Equal(t, "Failed to bind KDL document to object structure\n"+
		"  a.level.kdl:1:1: error: Missing element 'pos'\n"+
		"  a.level.kdl:2:1: warning: Unknown element 'bogus'\n"+
		"  a.level.kdl: advice: hint", de.Detailed())
}

func messages(e *Error) []string {
	out := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		out[i] = d.Message
	}
	return out
}
