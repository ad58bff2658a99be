package asm

import "testing"

func TestSyntaxError_Error(t *testing.T) {
	se := &SyntaxError{Pos: 3, Err: ErrUnknownSymbol}

	want := "line 3: unknown symbol"
	if got := se.Error(); got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}

	se.File = "prog.asm"

	want = "prog.asm:3: unknown symbol"
	if got := se.Error(); got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestSyntaxError_Unwrap(t *testing.T) {
	se := &SyntaxError{Err: ErrUnknownSymbol}

	if se.Unwrap() != ErrUnknownSymbol {
		t.Errorf("Unwrap: got: %v, want: %v", se.Unwrap(), ErrUnknownSymbol)
	}
}

func TestSyntaxError_Caret(t *testing.T) {
	se := &SyntaxError{Pos: 1, Line: "LDA #BOGUS", Col: 5, Err: ErrUnknownSymbol}

	want := "Line 1:\nLDA #BOGUS\n     ^\n"
	if got := se.Caret(); got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestSyntaxError_CaretWidth_Truncates(t *testing.T) {
	se := &SyntaxError{Pos: 1, Line: "0123456789", Col: 8, Err: ErrUnknownSymbol}

	got := se.CaretWidth(5)

	want := "Line 1:\n01234\n    ^\n"
	if got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestSyntaxError_CaretWidth_Unbounded(t *testing.T) {
	se := &SyntaxError{Pos: 1, Line: "0123456789", Col: 8, Err: ErrUnknownSymbol}

	got := se.CaretWidth(0)

	want := "Line 1:\n0123456789\n        ^\n"
	if got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestSyntaxError_Is(t *testing.T) {
	a := &SyntaxError{Pos: 2, Line: "X", Err: ErrUnknownSymbol}
	b := &SyntaxError{Pos: 2, Line: "X", Err: ErrUnknownSymbol}
	c := &SyntaxError{Pos: 3, Line: "X", Err: ErrUnknownSymbol}

	if !a.Is(b) {
		t.Errorf("Is: want true for matching SyntaxErrors")
	}

	if a.Is(c) {
		t.Errorf("Is: want false for differing position")
	}

	if !a.Is(ErrUnknownSymbol) {
		t.Errorf("Is: want true against underlying sentinel")
	}
}
