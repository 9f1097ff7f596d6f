package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/restrict-lang/rlc/internal/source"
)

// Renderer formats Diagnostics against a source.File for a terminal or a
// plain writer, per spec §6 ("severity[code]: message followed by labeled
// source excerpts").
type Renderer struct {
	File  *source.File
	Color bool
}

// NewRenderer builds a Renderer, auto-detecting color support from w the way
// a CLI driver would — color is only enabled when w is an *os.File attached
// to a terminal.
func NewRenderer(file *source.File, w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{File: file, Color: color}
}

func (r *Renderer) paint(code string, s string) string {
	if !r.Color {
		return s
	}
	return code + s + "\x1b[0m"
}

// Render writes one diagnostic's full rendering: the summary line followed
// by a labeled excerpt of the offending source line with a caret underline.
func (r *Renderer) Render(w io.Writer, d *Diagnostic) {
	severityColor := "\x1b[1;31m" // red, bold — errors are the common case
	switch d.Severity {
	case SeverityWarning:
		severityColor = "\x1b[1;33m"
	case SeverityNote:
		severityColor = "\x1b[1;36m"
	case SeverityHelp:
		severityColor = "\x1b[1;32m"
	}

	header := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	fmt.Fprintf(w, "%s: %s\n", r.paint(severityColor, header), d.Message)

	if r.File != nil {
		line, col := d.Span.ToLineCol(r.File.Text)
		text := r.File.LineText(line)
		fmt.Fprintf(w, "  --> %s:%d:%d\n", r.File.Name, line+1, col+1)
		fmt.Fprintf(w, "   | %s\n", text)
		width := d.Span.End - d.Span.Start
		if width < 1 {
			width = 1
		}
		underline := strings.Repeat(" ", col) + strings.Repeat("^", width)
		label := d.Label
		if label == "" {
			label = d.Message
		}
		fmt.Fprintf(w, "   | %s %s\n", r.paint(severityColor, underline), label)
	}

	for _, n := range d.Notes {
		fmt.Fprintf(w, "   = note: %s\n", n)
	}
	for _, h := range d.Help {
		fmt.Fprintf(w, "   = help: %s\n", h)
	}
}

// RenderAll renders a batch of diagnostics in order, separated by blank
// lines.
func (r *Renderer) RenderAll(w io.Writer, ds []*Diagnostic) {
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Render(w, d)
	}
}

// JSON is the machine-readable shape from spec §6.
type JSON struct {
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"end_line"`
	EndColumn int       `json:"end_column"`
	Message   string   `json:"message"`
	Code      string   `json:"code,omitempty"`
	Severity  Severity `json:"severity"`
	Notes     []string `json:"notes,omitempty"`
	Help      []string `json:"help,omitempty"`
}

// ToJSON converts a Diagnostic to its editor-facing JSON shape.
func (d *Diagnostic) ToJSON(file *source.File) JSON {
	line, col := d.Span.ToLineCol(file.Text)
	endLine, endCol := d.Span.EndLineCol(file.Text)
	return JSON{
		Line: line, Column: col,
		EndLine: endLine, EndColumn: endCol,
		Message: d.Message, Code: string(d.Code), Severity: d.Severity,
		Notes: d.Notes, Help: d.Help,
	}
}
