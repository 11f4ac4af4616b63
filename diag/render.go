package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/milk9111/levelkit/kdl"
)

type RenderOptions struct {
	Width uint
	Color bool
}

// Render writes err with source snippets. Errors that are not diagnostic
// errors are written as a single line.
func Render(w io.Writer, err error, opts RenderOptions) error {
	if err == nil {
		return nil
	}
	de, ok := As(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "Error: %s\n", err)
		return werr
	}
	if len(de.Diagnostics) == 0 {
		_, werr := fmt.Fprintf(w, "%s\n", de.Error())
		return werr
	}
	if opts.Width == 0 {
		opts.Width = 78
	}

	files := make(map[string]*hcl.File)
	for _, d := range de.Diagnostics {
		if d.Source == nil {
			continue
		}
		name := d.Source.fileName()
		if _, seen := files[name]; !seen {
			files[name] = &hcl.File{Bytes: []byte(d.Source.Text)}
		}
	}

	writer := hcl.NewDiagnosticTextWriter(w, files, opts.Width, opts.Color)
	return writer.WriteDiagnostics(de.HCL())
}

// HCL converts the diagnostics to hcl diagnostics with source ranges.
func (e *Error) HCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		out = append(out, d.HCL())
	}
	return out
}

func (d Diagnostic) HCL() *hcl.Diagnostic {
	severity := hcl.DiagError
	if d.Severity < SeverityError {
		severity = hcl.DiagWarning
	}

	var detail []string
	if d.Label != "" {
		detail = append(detail, d.Label)
	}
	if d.Help != "" {
		detail = append(detail, "help: "+d.Help)
	}

	hd := &hcl.Diagnostic{
		Severity: severity,
		Summary:  d.Message,
		Detail:   strings.Join(detail, "\n"),
	}
	if d.Span != nil && d.Source != nil {
		rng := d.Source.Range(*d.Span)
		hd.Subject = &rng
	}
	return hd
}

// Range maps a byte span to an hcl source range.
func (s *Source) Range(span kdl.Span) hcl.Range {
	startLine, startCol := s.Position(span.Offset)
	endLine, endCol := s.Position(span.End())
	return hcl.Range{
		Filename: s.fileName(),
		Start:    hcl.Pos{Line: startLine, Column: startCol, Byte: span.Offset},
		End:      hcl.Pos{Line: endLine, Column: endCol, Byte: span.End()},
	}
}

func (s *Source) fileName() string {
	if s.Name == "" {
		return "<level>"
	}
	return s.Name
}
