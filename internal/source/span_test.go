package source

import "testing"

func TestSpanToLineCol(t *testing.T) {
	src := "val x = 1\nval y = 2\n"
	testCases := []struct {
		name     string
		span     Span
		wantLine int
		wantCol  int
	}{
		{"start of file", Span{0, 1}, 0, 0},
		{"mid first line", Span{4, 5}, 0, 4},
		{"start of second line", Span{10, 11}, 1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, col := tc.span.ToLineCol(src)
			if line != tc.wantLine || col != tc.wantCol {
				t.Errorf("ToLineCol() = (%d, %d), want (%d, %d)", line, col, tc.wantLine, tc.wantCol)
			}
		})
	}
}

func TestFileLineCol(t *testing.T) {
	f := NewFile("test.rl", "abc\ndef\nghi")
	line, col := f.LineCol(5)
	if line != 1 || col != 1 {
		t.Fatalf("LineCol(5) = (%d, %d), want (1, 1)", line, col)
	}
	if got := f.LineText(1); got != "def" {
		t.Fatalf("LineText(1) = %q, want %q", got, "def")
	}
}

func TestSpanJoin(t *testing.T) {
	a := Span{2, 5}
	b := Span{1, 3}
	got := a.Join(b)
	if got != (Span{1, 5}) {
		t.Fatalf("Join() = %v, want {1 5}", got)
	}
}
