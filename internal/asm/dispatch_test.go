package asm

import "testing"

func TestSplitHead(t *testing.T) {
	head, rest := splitHead("LDA #10")
	if head != "LDA" || rest != "#10" {
		t.Errorf("got: %q, %q, want: LDA, #10", head, rest)
	}

	head, rest = splitHead("RTS")
	if head != "RTS" || rest != "" {
		t.Errorf("got: %q, %q, want: RTS, \"\"", head, rest)
	}

	head, rest = splitHead("  LDA #10")
	if head != "LDA" || rest != "#10" {
		t.Errorf("got: %q, %q, want: LDA, #10", head, rest)
	}
}

func TestValidSymbolName(t *testing.T) {
	tcs := []struct {
		name string
		want bool
	}{
		{"START", true},
		{"_BAD", false},
		{"A1", true},
		{"1A", false},
		{"", false},
	}

	for _, tc := range tcs {
		if got := validSymbolName(tc.name); got != tc.want {
			t.Errorf("validSymbolName(%q): got: %v, want: %v", tc.name, got, tc.want)
		}
	}
}

func TestDispatchStatement_Org(t *testing.T) {
	a := NewAssembler(nil)

	_, done, err := a.dispatchStatement(0, "ORG $200", false)
	if err != nil {
		t.Fatalf("dispatchStatement: %s", err)
	}

	if done {
		t.Errorf("ORG should not end assembly")
	}

	if a.LC != 0x200 {
		t.Errorf("LC: got: %#x, want: %#x", a.LC, 0x200)
	}
}

func TestDispatchStatement_End(t *testing.T) {
	a := NewAssembler(nil)

	_, done, err := a.dispatchStatement(0, "END", false)
	if err != nil {
		t.Fatalf("dispatchStatement: %s", err)
	}

	if !done {
		t.Errorf("END should end assembly")
	}
}

func TestDispatchStatement_EndWithLabelRejected(t *testing.T) {
	a := NewAssembler(nil)

	_, _, err := a.dispatchStatement(0, "END", true)
	if err != ErrEndDirectiveNotAlone {
		t.Errorf("got: %v, want: %v", err, ErrEndDirectiveNotAlone)
	}
}

func TestValidateSymbolName_ErrorKinds(t *testing.T) {
	if err := validateSymbolName("1BAD"); err != ErrLetterExpected {
		t.Errorf("got: %v, want: %v", err, ErrLetterExpected)
	}

	if err := validateSymbolName("BAD!"); err != ErrInvalidCharacter {
		t.Errorf("got: %v, want: %v", err, ErrInvalidCharacter)
	}

	if err := validateSymbolName(""); err != ErrInvalidCharacter {
		t.Errorf("got: %v, want: %v", err, ErrInvalidCharacter)
	}

	if err := validateSymbolName("START"); err != nil {
		t.Errorf("got: %v, want: nil", err)
	}
}

func TestDispatchStatement_Equ(t *testing.T) {
	a := NewAssembler(nil)
	a.Pass = PassOne

	_, done, err := a.dispatchStatement(0, "COUNT EQU 10", false)
	if err != nil {
		t.Fatalf("dispatchStatement: %s", err)
	}

	if done {
		t.Errorf("EQU should not end assembly")
	}

	if v, ok := a.Symbols.Lookup("COUNT"); !ok || v != 10 {
		t.Errorf("got: %d, %v, want: 10, true", v, ok)
	}
}

func TestDispatchStatement_EquWithLabelRejected(t *testing.T) {
	a := NewAssembler(nil)

	_, _, err := a.dispatchStatement(0, "COUNT EQU 10", true)
	if err != ErrLabelOnEquLine {
		t.Errorf("got: %v, want: %v", err, ErrLabelOnEquLine)
	}
}

func TestDispatchStatement_UnknownHead(t *testing.T) {
	a := NewAssembler(nil)

	_, _, err := a.dispatchStatement(0, "COUNT 10", false)
	if err != ErrExpectedEquAfterSymbol {
		t.Errorf("got: %v, want: %v", err, ErrExpectedEquAfterSymbol)
	}
}

func TestDispatchStatement_Empty(t *testing.T) {
	a := NewAssembler(nil)

	emitted, done, err := a.dispatchStatement(0, "", false)
	if err != nil || done || emitted != nil {
		t.Errorf("got: %v, %v, %v, want: nil, false, nil", emitted, done, err)
	}
}
