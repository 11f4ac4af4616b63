package diag

import (
	"fmt"
	"strings"

	"github.com/milk9111/levelkit/kdl"
)

func spanPtr(span kdl.Span) *kdl.Span { return &span }

// New builds a single-diagnostic error.
func (s *Source) New(d Diagnostic) *Error {
	d.Source = s
	return &Error{Source: s, Diagnostics: []Diagnostic{d}}
}

// Err reports a plain error. span may be nil.
func (s *Source) Err(message string, span *kdl.Span) *Error {
	return s.New(Diagnostic{Message: message, Span: span, Severity: SeverityError})
}

// Warn reports a diagnostic that does not fail the bind.
func (s *Source) Warn(message string, span kdl.Span) *Error {
	return s.New(Diagnostic{Message: message, Span: spanPtr(span), Severity: SeverityWarning})
}

// MissingElement reports an absent child node. within is the node whose
// children were searched and may be nil for the top level.
func (s *Source) MissingElement(name string, within *kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  fmt.Sprintf("Missing element '%s'", name),
		Span:     within,
		Label:    "expected here",
		Severity: SeverityError,
		Kind:     KindStructural,
	})
}

func (s *Source) DuplicateElement(name string, span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  fmt.Sprintf("Duplicate element '%s'", name),
		Span:     spanPtr(span),
		Help:     "only one is allowed per level",
		Severity: SeverityError,
		Kind:     KindStructural,
	})
}

func (s *Source) NoChildren(span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  "Element has no children",
		Span:     spanPtr(span),
		Severity: SeverityError,
		Kind:     KindStructural,
	})
}

func (s *Source) NoEntry(key kdl.Key, span kdl.Span) *Error {
	msg := fmt.Sprintf("Element missing argument %d", key.Index())
	if key.IsProp() {
		msg = fmt.Sprintf("Element missing property '%s'", key.Name())
	}
	return s.New(Diagnostic{
		Message:  msg,
		Span:     spanPtr(span),
		Severity: SeverityError,
		Kind:     KindStructural,
	})
}

func (s *Source) WrongValueType(actual kdl.Kind, acceptable []kdl.Kind, span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message: fmt.Sprintf("Element value has type %s but should have been %s",
			actual, DisplayTypes(acceptable)),
		Span:     spanPtr(span),
		Severity: SeverityError,
		Kind:     KindTypeMismatch,
	})
}

func (s *Source) ParseError(msg string, span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  fmt.Sprintf("Element value parsing error: %s", msg),
		Span:     spanPtr(span),
		Severity: SeverityError,
		Kind:     KindTypeMismatch,
	})
}

// Resolution reports an asset reference that could not be resolved.
func (s *Source) Resolution(err error, span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  fmt.Sprintf("Element value parsing error: %s", err),
		Span:     spanPtr(span),
		Label:    "asset reference",
		Severity: SeverityError,
		Kind:     KindResolution,
	})
}

func (s *Source) NotAVariant(provided string, variants []string, span kdl.Span) *Error {
	return s.New(Diagnostic{
		Message:  fmt.Sprintf("Invalid variant provided: '%s', %s", provided, DisplayVariants(variants)),
		Span:     spanPtr(span),
		Severity: SeverityError,
		Kind:     KindVariant,
	})
}

// Syntax converts a parser error into a diagnostic error.
func (s *Source) Syntax(err *kdl.ParseError) *Error {
	e := s.New(Diagnostic{
		Message:  err.Message,
		Span:     spanPtr(err.Span),
		Help:     err.Help,
		Severity: SeverityError,
		Kind:     KindSyntax,
	})
	e.Display = "Failed to parse KDL document"
	return e
}

// DisplayTypes renders "t", "either a or b" or "one of a, b, or c".
func DisplayTypes(kinds []kdl.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	case 2:
		return fmt.Sprintf("either %s or %s", names[0], names[1])
	default:
		return "one of " + strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}

func DisplayVariants(variants []string) string {
	quoted := make([]string, len(variants))
	for i, v := range variants {
		quoted[i] = "'" + v + "'"
	}
	switch len(quoted) {
	case 0:
		return "there are no allowed variants"
	case 1:
		return "the allowed variant is " + quoted[0]
	case 2:
		return fmt.Sprintf("the allowed variants are %s and %s", quoted[0], quoted[1])
	default:
		return "the allowed variants are " + strings.Join(quoted[:len(quoted)-1], ", ") + ", and " + quoted[len(quoted)-1]
	}
}
