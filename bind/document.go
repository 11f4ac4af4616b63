package bind

import (
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

// MustGet returns the first top-level node called name.
func MustGet(doc *kdl.Document, name string, src *diag.Source) (*kdl.Node, error) {
	n, ok := doc.Get(name)
	if !ok {
		return nil, src.MissingElement(name, nil)
	}
	return n, nil
}

// MustOne returns the single node called name, failing when it is absent
// or declared more than once.
func MustOne(doc *kdl.Document, name string, src *diag.Source) (*kdl.Node, error) {
	nodes := doc.All(name)
	switch len(nodes) {
	case 0:
		return nil, src.MissingElement(name, nil)
	case 1:
		return nodes[0], nil
	}
	errs := make([]error, 0, len(nodes)-1)
	for _, n := range nodes[1:] {
		errs = append(errs, src.DuplicateElement(name, n.NameSpan))
	}
	return nil, diag.Join(errs...)
}

func MustChildren(n *kdl.Node, src *diag.Source) (*kdl.Document, error) {
	if n.Children == nil {
		return nil, src.NoChildren(n.Span)
	}
	return n.Children, nil
}

func MustChild(n *kdl.Node, name string, src *diag.Source) (*kdl.Node, error) {
	children, err := MustChildren(n, src)
	if err != nil {
		return nil, err
	}
	child, ok := children.Get(name)
	if !ok {
		return nil, src.MissingElement(name, &n.NameSpan)
	}
	return child, nil
}
