// Package diag collects positioned binding diagnostics for level documents
// and merges them so that every problem in a file is reported at once.
package diag

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/milk9111/levelkit/kdl"
)

const defaultDisplay = "Failed to bind KDL document to object structure"

type Severity int

const (
	SeverityAdvice Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityAdvice:
		return "advice"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Kind classifies where a diagnostic came from.
type Kind int

const (
	KindOther Kind = iota
	KindStructural
	KindTypeMismatch
	KindVariant
	KindResolution
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindVariant:
		return "variant"
	case KindResolution:
		return "resolution"
	case KindSyntax:
		return "syntax"
	default:
		return "other"
	}
}

// Source is the shared, read-only text a document was parsed from. The
// line index is built on first use, so a literal Source is usable too.
type Source struct {
	Name string
	Text string

	once       sync.Once
	lineStarts []int
}

func NewSource(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

func (s *Source) lines() []int {
	s.once.Do(func() {
		s.lineStarts = []int{0}
		for i := 0; i < len(s.Text); i++ {
			if s.Text[i] == '\n' {
				s.lineStarts = append(s.lineStarts, i+1)
			}
		}
	})
	return s.lineStarts
}

// Position converts a byte offset to a 1-based line and rune column.
func (s *Source) Position(offset int) (line, col int) {
	if s == nil {
		return 1, 1
	}
	offset = max(0, min(offset, len(s.Text)))
	starts := s.lines()
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := starts[lo]
	return lo + 1, utf8.RuneCountInString(s.Text[start:offset]) + 1
}

// Snippet returns the text a span covers.
func (s *Source) Snippet(span kdl.Span) string {
	if s == nil {
		return ""
	}
	start := max(0, min(span.Offset, len(s.Text)))
	end := max(start, min(span.End(), len(s.Text)))
	return s.Text[start:end]
}

type Diagnostic struct {
	Source   *Source
	Span     *kdl.Span
	Message  string
	Label    string
	Help     string
	Severity Severity
	Kind     Kind
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Source != nil && d.Source.Name != "" {
		b.WriteString(d.Source.Name)
		b.WriteByte(':')
	}
	if d.Span != nil {
		line, col := d.Source.Position(d.Span.Offset)
		fmt.Fprintf(&b, "%d:%d:", line, col)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	return b.String()
}

// Error is a set of diagnostics against one source. It is only a failure
// when at least one diagnostic has error severity.
type Error struct {
	Display     string
	Source      *Source
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if e.Display != "" {
		return e.Display
	}
	return defaultDisplay
}

func (e *Error) IsFailure() bool {
	for _, d := range e.Diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics at or above threshold.
func (e *Error) Filter(threshold Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.Severity >= threshold {
			out = append(out, d)
		}
	}
	return out
}

// Detailed lists every diagnostic on its own line after the display text.
func (e *Error) Detailed() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, d := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

// As extracts the diagnostic error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) && de != nil {
		return de, true
	}
	return nil, false
}

// IsFailure reports whether err should abort a load. Warnings-only
// diagnostic errors are not failures; any other non-nil error is.
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	if de, ok := As(err); ok {
		return de.IsFailure()
	}
	return true
}
