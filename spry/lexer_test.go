package spry

import (
	"errors"
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := tokenize("<test>", src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	return tokens
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"+ - * / **", []TokenType{tokenPlus, tokenMinus, tokenMul, tokenDiv, tokenPow, tokenEOF}},
		{"= == != < > <= >=", []TokenType{tokenEq, tokenEE, tokenNE, tokenLT, tokenGT, tokenLTE, tokenGTE, tokenEOF}},
		{"&& || !", []TokenType{tokenAnd, tokenOr, tokenBang, tokenEOF}},
		{"( ) [ ] , ->", []TokenType{tokenLParen, tokenRParen, tokenLSquare, tokenRSquare, tokenComma, tokenArrow, tokenEOF}},
		{"-> - >", []TokenType{tokenArrow, tokenMinus, tokenGT, tokenEOF}},
		{"** *", []TokenType{tokenPow, tokenMul, tokenEOF}},
	}

	for _, tt := range tests {
		tokens := mustTokenize(t, tt.input)
		if len(tokens) != len(tt.want) {
			t.Fatalf("%q: got %d tokens, want %d", tt.input, len(tokens), len(tt.want))
		}
		for i, want := range tt.want {
			if tokens[i].Type != want {
				t.Fatalf("%q token %d: got %s, want %s", tt.input, i, tokens[i].Type, want)
			}
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input   string
		tt      TokenType
		literal string
	}{
		{"0", tokenInt, "0"},
		{"42", tokenInt, "42"},
		{"3.14", tokenFloat, "3.14"},
		{"10.0", tokenFloat, "10.0"},
	}

	for _, tt := range tests {
		tokens := mustTokenize(t, tt.input)
		if tokens[0].Type != tt.tt || tokens[0].Literal != tt.literal {
			t.Fatalf("%q: got %s %q, want %s %q", tt.input, tokens[0].Type, tokens[0].Literal, tt.tt, tt.literal)
		}
	}
}

func TestTokenizeNumberSecondDotEndsLiteral(t *testing.T) {
	// 1.2.3 lexes as FLOAT(1.2) followed by the leftover dot, which is an
	// illegal character on its own.
	_, err := tokenize("<test>", "1.2.3")
	if err == nil {
		t.Fatal("expected illegal character error for stray dot")
	}
	var illegal *IllegalCharError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalCharError, got %T", err)
	}
	if illegal.Char != '.' {
		t.Fatalf("expected stray '.', got %q", illegal.Char)
	}
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens := mustTokenize(t, "var x if then elif else for to step while fun foo_1")
	wantKinds := []TokenType{
		tokenKeyword, tokenIdent, tokenKeyword, tokenKeyword, tokenKeyword,
		tokenKeyword, tokenKeyword, tokenKeyword, tokenKeyword, tokenKeyword,
		tokenKeyword, tokenIdent, tokenEOF,
	}
	for i, want := range wantKinds {
		if tokens[i].Type != want {
			t.Fatalf("token %d (%q): got %s, want %s", i, tokens[i].Literal, tokens[i].Type, want)
		}
	}
	if tokens[0].Literal != "var" || tokens[11].Literal != "foo_1" {
		t.Fatalf("unexpected literals: %q, %q", tokens[0].Literal, tokens[11].Literal)
	}
}

func TestTokenizeStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"say \"hi\""`, `say "hi"`},
		{`"\x"`, "x"},
	}

	for _, tt := range tests {
		tokens := mustTokenize(t, tt.input)
		if tokens[0].Type != tokenString || tokens[0].Literal != tt.want {
			t.Fatalf("%q: got %s %q, want STRING %q", tt.input, tokens[0].Type, tokens[0].Literal, tt.want)
		}
	}
}

func TestTokenizeUnterminatedStringRunsToEnd(t *testing.T) {
	tokens := mustTokenize(t, `"abc`)
	if tokens[0].Type != tokenString || tokens[0].Literal != "abc" {
		t.Fatalf("got %s %q, want STRING \"abc\"", tokens[0].Type, tokens[0].Literal)
	}
	if tokens[1].Type != tokenEOF {
		t.Fatalf("expected EOF after unterminated string, got %s", tokens[1].Type)
	}
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	for _, src := range []string{"$", "1 + $", "&", "|"} {
		if _, err := tokenize("<test>", src); err == nil {
			t.Fatalf("%q: expected illegal character error", src)
		}
	}
}

func TestTokenizeSpansReconstructSource(t *testing.T) {
	src := "var total = (1 + 2) * [3, 4]"
	tokens := mustTokenize(t, src)

	runes := []rune(src)
	var got strings.Builder
	for _, tok := range tokens {
		if tok.Type == tokenEOF {
			continue
		}
		got.WriteString(string(runes[tok.PosStart.Index:tok.PosEnd.Index]))
	}

	want := strings.NewReplacer(" ", "", "\t", "", "\n", "").Replace(src)
	if got.String() != want {
		t.Fatalf("span concat = %q, want %q", got.String(), want)
	}
}

func TestTokenizePositionsTrackRows(t *testing.T) {
	tokens := mustTokenize(t, "1 +\n2")
	if tokens[0].PosStart.Row != 1 {
		t.Fatalf("first token row = %d, want 1", tokens[0].PosStart.Row)
	}
	if tokens[2].PosStart.Row != 2 || tokens[2].PosStart.Col != 0 {
		t.Fatalf("token after newline at row %d col %d, want row 2 col 0", tokens[2].PosStart.Row, tokens[2].PosStart.Col)
	}
}
