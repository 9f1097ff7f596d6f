package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/restrict-lang/rlc/internal/source"
)

func TestRenderIncludesExcerptAndCaret(t *testing.T) {
	text := "val x = 42\nval y = x\nval z = x\n"
	file := source.NewFile("test.rl", text)
	d := New(PhaseChecker, TAffineViolation, source.Span{Start: 29, End: 30}, "variable %q used more than once", "x").Diagnostic

	var buf bytes.Buffer
	r := &Renderer{File: file, Color: false}
	r.Render(&buf, d)

	out := buf.String()
	if !strings.Contains(out, "error[T003]") {
		t.Errorf("expected severity/code header, got:\n%s", out)
	}
	if !strings.Contains(out, "val z = x") {
		t.Errorf("expected offending line excerpt, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret underline, got:\n%s", out)
	}
}

func TestToJSON(t *testing.T) {
	text := "val x = 1\n"
	file := source.NewFile("t.rl", text)
	d := New(PhaseLexer, LInvalidChar, source.Span{Start: 4, End: 5}, "invalid char").Diagnostic
	j := d.ToJSON(file)
	if j.Line != 0 || j.Column != 4 {
		t.Errorf("ToJSON() line/col = %d/%d, want 0/4", j.Line, j.Column)
	}
	if j.Severity != SeverityError {
		t.Errorf("ToJSON() severity = %s, want error", j.Severity)
	}
}
