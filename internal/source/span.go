// Package source holds the byte-indexed source text and the Span type used
// to tie every token, AST node, and diagnostic back to a location in it.
package source

// Span is a half-open byte range [Start, End) into a source file.
type Span struct {
	Start int
	End   int
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// ToLineCol resolves the span's start offset to a 0-indexed (line, column)
// pair within src.
func (s Span) ToLineCol(src string) (line, col int) {
	return lineCol(src, s.Start)
}

// EndLineCol resolves the span's end offset to a 0-indexed (line, column).
func (s Span) EndLineCol(src string) (line, col int) {
	return lineCol(src, s.End)
}

func lineCol(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, lastNewline := 0, -1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, offset - lastNewline - 1
}

// File wraps a source string with a lazily-built line-start index used by
// its LineCol and LineText methods. Span.ToLineCol does not consult it and
// rescans the text on each call.
type File struct {
	Name string
	Text string

	lineStarts []int
}

// NewFile constructs a File for name/text. The line-start index is built on
// first use, not eagerly.
func NewFile(name, text string) *File {
	return &File{Name: name, Text: text}
}

func (f *File) ensureIndex() {
	if f.lineStarts != nil {
		return
	}
	starts := []int{0}
	for i := 0; i < len(f.Text); i++ {
		if f.Text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	f.lineStarts = starts
}

// LineCol resolves a byte offset to a 0-indexed (line, column) pair using the
// cached line-start index.
func (f *File) LineCol(offset int) (line, col int) {
	f.ensureIndex()
	if offset > len(f.Text) {
		offset = len(f.Text)
	}
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - f.lineStarts[lo]
}

// LineText returns the text of the given 0-indexed line, without its
// trailing newline.
func (f *File) LineText(line int) string {
	f.ensureIndex()
	if line < 0 || line >= len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[line]
	end := len(f.Text)
	if line+1 < len(f.lineStarts) {
		end = f.lineStarts[line+1] - 1
	}
	if end < start {
		end = start
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	return f.Text[start:end]
}
