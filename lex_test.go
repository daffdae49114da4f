package complexpr

import (
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1e", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}}, 0},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}, 0},
		{"1E-1", []lexToken{{text: "1E-1", kind: tokenNum, pos: 1}}, 0},
		{"2e-x", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "x", kind: tokenIdent, pos: 4}}, 0},
		{"2exp", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "exp", kind: tokenIdent, pos: 2}}, 0},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}}, 0},
		{".", []lexToken{{pos: 1}}, 1},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1*0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		{"1a", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 0},
		// imaginary numbers
		{"2i", []lexToken{{text: "2i", kind: tokenNum, pos: 1}}, 0},
		{"2.5i", []lexToken{{text: "2.5i", kind: tokenNum, pos: 1}}, 0},
		{"1e3i", []lexToken{{text: "1e3i", kind: tokenNum, pos: 1}}, 0},
		{"2i x", []lexToken{{text: "2i", kind: tokenNum, pos: 1}, {text: "x", kind: tokenIdent, pos: 4}}, 0},
		{"2in", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "in", kind: tokenIdent, pos: 2}}, 0},
		{"2i3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "i3", kind: tokenIdent, pos: 2}}, 0},
		{"i", []lexToken{{text: "i", kind: tokenIdent, pos: 1}}, 0},
		// infinities
		{"inf", []lexToken{{text: "inf", kind: tokenNum, pos: 1}}, 0},
		{"Infinity", []lexToken{{text: "Infinity", kind: tokenNum, pos: 1}}, 0},
		{"∞", []lexToken{{text: "∞", kind: tokenNum, pos: 1}}, 0},
		{"infinite", []lexToken{{text: "infinite", kind: tokenIdent, pos: 1}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"eπ", []lexToken{{text: "eπ", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		{"×÷", []lexToken{{text: "×", kind: tokenOp, pos: 1}, {text: "÷", kind: tokenOp, pos: 2}}, 0},
		// brackets
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}, 0},
		{"[]", []lexToken{{text: "[", kind: tokenOpen, pos: 1}, {text: "]", kind: tokenClose, pos: 2}}, 0},
		{"{}", []lexToken{{text: "{", kind: tokenOpen, pos: 1}, {text: "}", kind: tokenClose, pos: 2}}, 0},
		// separators
		{"{1, 2; 3}", []lexToken{
			{text: "{", kind: tokenOpen, pos: 1},
			{text: "1", kind: tokenNum, pos: 2},
			{text: ",", kind: tokenSep, pos: 3},
			{text: "2", kind: tokenNum, pos: 5},
			{text: ";", kind: tokenSep, pos: 6},
			{text: "3", kind: tokenNum, pos: 8},
			{text: "}", kind: tokenClose, pos: 9},
		}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"0$", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {pos: 2}}, 1},
		{"$0", []lexToken{{pos: 1}, {text: "0", kind: tokenNum, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		errs := 0
		for _, want := range c.tokens {
			got, err := scan.next("")
			if err != nil {
				errs++
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v (error: %v)", c.src, want, got, err)
			}
		}
		got, err := scan.next("")
		if err != nil || got.kind != tokenEOF {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if errs != c.errs {
			t.Errorf("scanning %q: want %d errors, got %d", c.src, c.errs, errs)
		}
	}
}

func TestLexWhitespaceEOF(t *testing.T) {
	scan := lex(strings.NewReader("1 \n2"))
	tok, err := scan.next("\n")
	if err != nil || tok != (lexToken{text: "1", kind: tokenNum, pos: 1}) {
		t.Fatalf("first token: want 1@1, got %v with error %v", tok, err)
	}
	tok, err = scan.next("\n")
	if err != nil || tok.kind != tokenEOF || tok.pos != 3 {
		t.Fatalf("second token: want EOF@3, got %v with error %v", tok, err)
	}
}

func TestLexErrorPos(t *testing.T) {
	scan := lex(strings.NewReader("12$"))
	if _, err := scan.next(""); err != nil {
		t.Fatalf("unexpected error scanning number: %v", err)
	}
	_, err := scan.next("")
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %#v", err)
	}
	if le.Pos() != 3 || le.Text != "$" {
		t.Errorf("wrong error: want $ at 3, got %q at %d", le.Text, le.Pos())
	}
}
