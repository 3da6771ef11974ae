package lexer

import "testing"

func TestLexer_Keywords(t *testing.T) {
	source := "bool int void struct input output if else while return"
	l := New(source)

	expectedTypes := []TokenType{
		TokenBool, TokenInt, TokenVoid, TokenStruct, TokenInput,
		TokenOutput, TokenIf, TokenElse, TokenWhile, TokenReturn, TokenEOF,
	}

	for i, expected := range expectedTypes {
		token, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if token.Type != expected {
			t.Errorf("token %d: expected %v, got %v", i, expected, token.Type)
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	source := "foo bar _temp myVar123"
	l := New(source)

	expected := []string{"foo", "bar", "_temp", "myVar123"}
	for i, name := range expected {
		token, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if token.Type != TokenID {
			t.Errorf("token %d: expected TokenID, got %v", i, token.Type)
		}
		if token.Value != name {
			t.Errorf("token %d: expected %q, got %q", i, name, token.Value)
		}
	}
}

func TestLexer_Operators(t *testing.T) {
	source := "+ - * / ! && || == != < <= > >= = ++ -- >> <<"
	l := New(source)

	expected := []TokenType{
		TokenPlus, TokenMinus, TokenTimes, TokenDivide, TokenNot, TokenAnd,
		TokenOr, TokenEquals, TokenNotEqual, TokenLess, TokenLessEq,
		TokenGreater, TokenGreaterEq, TokenAssign, TokenPlusPlus,
		TokenMinusMinus, TokenRead, TokenWrite, TokenEOF,
	}
	for i, want := range expected {
		token, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if token.Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, token.Type)
		}
	}
}

func TestLexer_IntLiteral(t *testing.T) {
	l := New("12345")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != TokenIntLit || tok.Value != "12345" {
		t.Errorf("got %v, want INTLITERAL(12345)", tok)
	}
}

func TestLexer_StringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != TokenStringLit || tok.Value != `"hello world"` {
		t.Errorf("got %v, want STRINGLITERAL", tok)
	}
}

func TestLexer_UnterminatedStringLiteral(t *testing.T) {
	l := New(`"oops`)
	tok, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
	if tok.Type != TokenInvalid {
		t.Errorf("expected TokenInvalid, got %v", tok.Type)
	}
}

func TestLexer_LineComment(t *testing.T) {
	source := "int x; // this is a comment\nint y;"
	l := New(source)

	var gotTypes []TokenType
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		gotTypes = append(gotTypes, tok.Type)
		if tok.Type == TokenEOF {
			break
		}
	}

	want := []TokenType{
		TokenInt, TokenID, TokenSemi, TokenInt, TokenID, TokenSemi, TokenEOF,
	}
	if len(gotTypes) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(gotTypes), len(want), gotTypes)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, gotTypes[i], want[i])
		}
	}
}

func TestLexer_TracksLineAndColumn(t *testing.T) {
	source := "int x;\nint y;"
	l := New(source)

	// Skip to "y" on the second line.
	for i := 0; i < 4; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "y" || tok.Pos.Line != 2 {
		t.Errorf("got %v, want identifier y on line 2", tok)
	}
}
