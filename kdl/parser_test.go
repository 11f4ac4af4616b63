package kdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodesAndEntries(t *testing.T) {
	src := `plane 10 20.5 type="death" material="builtin:default-plane" {
    pos 1 2 3
    rot axis="y" 90
}
text "hello"; button "b1"
`
	doc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)

	plane := doc.Nodes[0]
	assert.Equal(t, "plane", plane.Name)
	require.Len(t, plane.Entries, 4)

	size, ok := plane.Entry(Arg(0))
	require.True(t, ok)
	assert.Equal(t, Integer, size.Value.Kind)
	assert.Equal(t, int64(10), size.Value.Int)

	size2, ok := plane.Entry(Arg(1))
	require.True(t, ok)
	f, ok := size2.Value.Number()
	require.True(t, ok)
	assert.InDelta(t, 20.5, f, 1e-9)

	typ, ok := plane.Entry(Prop("type"))
	require.True(t, ok)
	assert.Equal(t, "death", typ.Value.Str)
	assert.Equal(t, `type="death"`, src[typ.Span.Offset:typ.Span.End()])

	_, ok = plane.Entry(Arg(2))
	assert.False(t, ok)

	require.True(t, plane.HasChildren())
	rot, ok := plane.Child("rot")
	require.True(t, ok)
	axis, ok := rot.Entry(Prop("axis"))
	require.True(t, ok)
	assert.Equal(t, "y", axis.Value.Str)

	assert.Equal(t, "text", doc.Nodes[1].Name)
	assert.Equal(t, "button", doc.Nodes[2].Name)
	assert.False(t, doc.Nodes[2].HasChildren())
	assert.Equal(t, `button "b1"`, src[doc.Nodes[2].Span.Offset:doc.Nodes[2].Span.End()])
}

func TestParseValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Value
	}{
		{"int", "n 42", IntValue(42)},
		{"negative", "n -7", IntValue(-7)},
		{"underscore", "n 1_000", IntValue(1000)},
		{"hex", "n 0xff", IntValue(255)},
		{"octal", "n 0o17", IntValue(15)},
		{"binary", "n 0b101", IntValue(5)},
		{"float", "n 1.5", FloatValue(1.5)},
		{"exponent", "n 2e3", FloatValue(2000)},
		{"true", "n true", BoolValue(true)},
		{"false", "n false", BoolValue(false)},
		{"null", "n null", NullValue()},
		{"escaped", `n "a\tb\u{41}"`, StringValue("a\tbA")},
		{"raw", `n r"C:\path"`, StringValue(`C:\path`)},
		{"raw_hash", `n r#"say "hi""#`, StringValue(`say "hi"`)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := Parse(c.src)
			require.NoError(t, err)
			e, ok := doc.Nodes[0].Entry(Arg(0))
			require.True(t, ok)
			assert.Equal(t, c.want, e.Value)
		})
	}
}

func TestParseCommentsAndSlashdash(t *testing.T) {
	src := `// leading comment
/- skipped 1 2
kept /* inline */ 1 /-2 3 {
    /* block /* nested */ */
    child
}
last \
    "continued"
/-gone { a }
`
	doc, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)

	kept := doc.Nodes[0]
	args := kept.Args()
	require.Len(t, args, 2)
	assert.Equal(t, int64(1), args[0].Value.Int)
	assert.Equal(t, int64(3), args[1].Value.Int)
	require.Len(t, kept.Children.Nodes, 1)

	last := doc.Nodes[1]
	e, ok := last.Entry(Arg(0))
	require.True(t, ok)
	assert.Equal(t, "continued", e.Value.Str)
}

func TestParseLastPropertyWins(t *testing.T) {
	doc, err := Parse(`n a=1 a=2`)
	require.NoError(t, err)
	e, ok := doc.Nodes[0].Entry(Prop("a"))
	require.True(t, ok)
	assert.Equal(t, int64(2), e.Value.Int)
}

func TestParseEmptyChildren(t *testing.T) {
	doc, err := Parse(`spawn {}`)
	require.NoError(t, err)
	require.True(t, doc.Nodes[0].HasChildren())
	assert.Empty(t, doc.Nodes[0].Children.Nodes)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		offset int
	}{
		{"bare_identifier", "n foo", 2},
		{"unterminated_string", `n "abc`, 2},
		{"unclosed_children", "n {\n  a\n", 2},
		{"stray_brace", "}", 0},
		{"bad_number", "n 12abc", 2},
		{"bad_escape", `n "\q"`, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, c.offset, pe.Span.Offset)
		})
	}
}

func TestDocumentLookup(t *testing.T) {
	doc, err := Parse("rot axis=\"x\" 1\npos 1 2 3\nrot axis=\"y\" 2\n")
	require.NoError(t, err)

	all := doc.All("rot")
	require.Len(t, all, 2)
	assert.Equal(t, "y", must(all[1].Entry(Prop("axis"))).Value.Str)

	_, ok := doc.Get("scale")
	assert.False(t, ok)

	var nilDoc *Document
	_, ok = nilDoc.Get("pos")
	assert.False(t, ok)
	assert.Nil(t, nilDoc.All("pos"))
}

func must(e Entry, ok bool) Entry {
	if !ok {
		panic("entry missing")
	}
	return e
}
