package lexer

import "testing"

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{
			name:     "identifier token",
			token:    Token{Type: TokenID, Value: "foo", Pos: Position{Line: 1, Column: 1}},
			expected: "ID(foo) at 1:1",
		},
		{
			name:     "int literal",
			token:    Token{Type: TokenIntLit, Value: "42", Pos: Position{Line: 5, Column: 10}},
			expected: "INTLITERAL(42) at 5:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"int", TokenInt},
		{"bool", TokenBool},
		{"struct", TokenStruct},
		{"while", TokenWhile},
		{"notakeyword", TokenID},
	}

	for _, tt := range tests {
		if got := LookupKeyword(tt.ident); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}
