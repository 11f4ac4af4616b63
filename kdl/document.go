// Package kdl holds a span-preserving KDL document model and its parser.
//
// Every node and entry records the byte range it was read from so that
// binding errors can point back into the original text.
package kdl

import "strconv"

// Span is a half-open byte range [Offset, Offset+Length) into the source text.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int { return s.Offset + s.Length }

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	start := min(s.Offset, o.Offset)
	end := max(s.End(), o.End())
	return Span{Offset: start, Length: end - start}
}

type Document struct {
	Nodes []*Node
	Span  Span
}

// Get returns the first node called name.
func (d *Document) Get(name string) (*Node, bool) {
	if d == nil {
		return nil, false
	}
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// All returns every node called name in document order.
func (d *Document) All(name string) []*Node {
	if d == nil {
		return nil
	}
	var out []*Node
	for _, n := range d.Nodes {
		if n.Name == name {
			out = append(out, n)
		}
	}
	return out
}

type Node struct {
	Name     string
	Type     string
	Entries  []Entry
	Children *Document
	Span     Span
	NameSpan Span
}

// Entry is a positional argument (Key == "") or a property.
type Entry struct {
	Key   string
	Type  string
	Value Value
	Span  Span
}

func (e Entry) IsArg() bool { return e.Key == "" }

// Key addresses an entry on a node: a positional index or a property name.
type Key struct {
	index int
	name  string
	prop  bool
}

func Arg(i int) Key { return Key{index: i} }
func Prop(name string) Key { return Key{name: name, prop: true} }
func (k Key) IsProp() bool { return k.prop }
func (k Key) Name() string { return k.name }
func (k Key) Index() int { return k.index }

func (k Key) String() string {
	if k.prop {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// Entry looks up an entry by key. Properties resolve to the last occurrence.
func (n *Node) Entry(k Key) (Entry, bool) {
	if k.prop {
		for i := len(n.Entries) - 1; i >= 0; i-- {
			if n.Entries[i].Key == k.name {
				return n.Entries[i], true
			}
		}
		return Entry{}, false
	}
	idx := 0
	for _, e := range n.Entries {
		if !e.IsArg() {
			continue
		}
		if idx == k.index {
			return e, true
		}
		idx++
	}
	return Entry{}, false
}

// Args returns the positional arguments in order.
func (n *Node) Args() []Entry {
	var out []Entry
	for _, e := range n.Entries {
		if e.IsArg() {
			out = append(out, e)
		}
	}
	return out
}

func (n *Node) Child(name string) (*Node, bool) {
	return n.Children.Get(name)
}

func (n *Node) HasChildren() bool { return n.Children != nil }
