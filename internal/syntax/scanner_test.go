package syntax

import (
	"strings"
	"testing"

	"github.com/littlekuo/glox/internal/diag"
)

func scanAll(t *testing.T, source string) ([]Token, []diag.Diagnostic) {
	t.Helper()
	s := NewScanner(source)
	tokens := s.ScanTokens()
	return tokens, s.Diagnostics()
}

func TestScanTokenTypes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		types  []TokenType
	}{
		{
			name:   "punctuation and operators",
			source: "( ) { } , . - + ; * / ! != = == > >= < <=",
			types: []TokenType{
				TOKEN_LEFT_PAREN, TOKEN_RIGHT_PAREN, TOKEN_LEFT_BRACE, TOKEN_RIGHT_BRACE,
				TOKEN_COMMA, TOKEN_DOT, TOKEN_MINUS, TOKEN_PLUS, TOKEN_SEMICOLON,
				TOKEN_STAR, TOKEN_SLASH, TOKEN_BANG, TOKEN_BANG_EQUAL, TOKEN_EQUAL,
				TOKEN_EQUAL_EQUAL, TOKEN_GREATER, TOKEN_GREATER_EQUAL, TOKEN_LESS,
				TOKEN_LESS_EQUAL, TOKEN_EOF,
			},
		},
		{
			name:   "keywords",
			source: "and class else false fun for if nil or print return super this true var while break continue",
			types: []TokenType{
				TOKEN_AND, TOKEN_CLASS, TOKEN_ELSE, TOKEN_FALSE, TOKEN_FUN, TOKEN_FOR,
				TOKEN_IF, TOKEN_NIL, TOKEN_OR, TOKEN_PRINT, TOKEN_RETURN, TOKEN_SUPER,
				TOKEN_THIS, TOKEN_TRUE, TOKEN_VAR, TOKEN_WHILE, TOKEN_BREAK,
				TOKEN_CONTINUE, TOKEN_EOF,
			},
		},
		{
			name:   "keyword prefixes stay identifiers",
			source: "orchid forest classy variable",
			types: []TokenType{
				TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER,
				TOKEN_IDENTIFIER, TOKEN_EOF,
			},
		},
		{
			name:   "two-char operators win over one-char",
			source: "= == ! != < <= > >=",
			types: []TokenType{
				TOKEN_EQUAL, TOKEN_EQUAL_EQUAL, TOKEN_BANG, TOKEN_BANG_EQUAL,
				TOKEN_LESS, TOKEN_LESS_EQUAL, TOKEN_GREATER, TOKEN_GREATER_EQUAL,
				TOKEN_EOF,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := scanAll(t, tt.source)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if len(tokens) != len(tt.types) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.types))
			}
			for i, tok := range tokens {
				if tok.TokenType != tt.types[i] {
					t.Errorf("token %d: got %s, want %s",
						i, TokenTypeStr[tok.TokenType], TokenTypeStr[tt.types[i]])
				}
			}
		})
	}
}

func TestScanNumberLiterals(t *testing.T) {
	tokens, diags := scanAll(t, "0 7 123 12.5 0.0001")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []float64{0, 7, 123, 12.5, 0.0001}
	for i, w := range want {
		if tokens[i].TokenType != TOKEN_NUMBER {
			t.Fatalf("token %d: got %s, want number", i, TokenTypeStr[tokens[i].TokenType])
		}
		if got := tokens[i].Literal.(float64); got != w {
			t.Errorf("token %d: literal %v, want %v", i, got, w)
		}
	}
}

func TestScanNumberFollowedByDot(t *testing.T) {
	// "123.abs" is a number, a dot and an identifier, not "123."
	tokens, diags := scanAll(t, "123.abs")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	wantTypes := []TokenType{TOKEN_NUMBER, TOKEN_DOT, TOKEN_IDENTIFIER, TOKEN_EOF}
	for i, w := range wantTypes {
		if tokens[i].TokenType != w {
			t.Errorf("token %d: got %s, want %s", i, TokenTypeStr[tokens[i].TokenType], TokenTypeStr[w])
		}
	}
}

func TestScanStringLiterals(t *testing.T) {
	t.Run("literal keeps exact contents", func(t *testing.T) {
		tokens, diags := scanAll(t, `"hello world"`)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if tokens[0].TokenType != TOKEN_STRING {
			t.Fatalf("got %s, want string", TokenTypeStr[tokens[0].TokenType])
		}
		if got := tokens[0].Literal.(string); got != "hello world" {
			t.Errorf("literal %q, want %q", got, "hello world")
		}
	})

	t.Run("string stops at the end of the line", func(t *testing.T) {
		tokens, diags := scanAll(t, "\"abc\nvar x = 1;\nprint x;")
		if len(diags) != 1 {
			t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
		}
		if diags[0].Category != diag.CATEGORY_LEXICAL || diags[0].Line != 1 {
			t.Errorf("diagnostic %+v, want lexical on line 1", diags[0])
		}

		// the lines after the bad string still scan
		wantTypes := []TokenType{
			TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_EQUAL, TOKEN_NUMBER, TOKEN_SEMICOLON,
			TOKEN_PRINT, TOKEN_IDENTIFIER, TOKEN_SEMICOLON, TOKEN_EOF,
		}
		if len(tokens) != len(wantTypes) {
			t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(wantTypes), tokens)
		}
		for i, w := range wantTypes {
			if tokens[i].TokenType != w {
				t.Errorf("token %d: got %s, want %s", i, TokenTypeStr[tokens[i].TokenType], TokenTypeStr[w])
			}
		}
		if tokens[0].Line != 2 {
			t.Errorf("var on line %d, want 2", tokens[0].Line)
		}
	})

	t.Run("unterminated string at end of file", func(t *testing.T) {
		_, diags := scanAll(t, "\"runaway")
		if len(diags) != 1 {
			t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
		}
		if diags[0].Category != diag.CATEGORY_LEXICAL {
			t.Errorf("category %s, want lexical", diags[0].Category)
		}
		if !strings.Contains(diags[0].Message, "Unterminated string") {
			t.Errorf("message %q", diags[0].Message)
		}
	})
}

func TestScanComments(t *testing.T) {
	t.Run("line comment runs to end of line", func(t *testing.T) {
		tokens, diags := scanAll(t, "1 // two three\n2")
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if len(tokens) != 3 {
			t.Fatalf("got %d tokens, want 3", len(tokens))
		}
		if tokens[1].Line != 2 {
			t.Errorf("second number on line %d, want 2", tokens[1].Line)
		}
	})

	t.Run("block comments nest", func(t *testing.T) {
		tokens, diags := scanAll(t, "1 /* a /* b */ c */ 2")
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if len(tokens) != 3 {
			t.Fatalf("got %d tokens, want 3: %v", len(tokens), tokens)
		}
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		_, diags := scanAll(t, "/* open /* nested */ still open")
		if len(diags) != 1 {
			t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
		}
		if !strings.Contains(diags[0].Message, "block comment") {
			t.Errorf("message %q", diags[0].Message)
		}
	})
}

func TestScanErrorsAccumulate(t *testing.T) {
	tokens, diags := scanAll(t, "@ #\nvar x = \"abc")
	if len(diags) != 3 {
		t.Fatalf("got %d diagnostics, want 3: %v", len(diags), diags)
	}
	for i, d := range diags {
		if d.Category != diag.CATEGORY_LEXICAL {
			t.Errorf("diagnostic %d: category %s, want lexical", i, d.Category)
		}
	}
	if diags[0].Line != 1 || diags[1].Line != 1 || diags[2].Line != 2 {
		t.Errorf("diagnostic lines %d %d %d, want 1 1 2",
			diags[0].Line, diags[1].Line, diags[2].Line)
	}

	// scanning kept going past the bad characters
	wantTypes := []TokenType{TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_EQUAL, TOKEN_EOF}
	if len(tokens) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(wantTypes), tokens)
	}
	for i, w := range wantTypes {
		if tokens[i].TokenType != w {
			t.Errorf("token %d: got %s, want %s", i, TokenTypeStr[tokens[i].TokenType], TokenTypeStr[w])
		}
	}
}

func TestScanLexemeRoundTrip(t *testing.T) {
	// Joining the lexemes back together and rescanning must reproduce the
	// same token stream, literal values included.
	source := "var half = 12.5;\nprint \"twelve\" + \".\" + \"five\";\nif (half >= 0.0001) { half = half / 2; }"
	first, diags := scanAll(t, source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	lexemes := make([]string, 0, len(first)-1)
	for _, tok := range first[:len(first)-1] {
		lexemes = append(lexemes, tok.Lexeme)
	}
	second, diags := scanAll(t, strings.Join(lexemes, " "))
	if len(diags) != 0 {
		t.Fatalf("rescan diagnostics: %v", diags)
	}

	if len(second) != len(first) {
		t.Fatalf("rescan produced %d tokens, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i].TokenType != first[i].TokenType {
			t.Errorf("token %d: type %s, want %s",
				i, TokenTypeStr[second[i].TokenType], TokenTypeStr[first[i].TokenType])
		}
		if second[i].Lexeme != first[i].Lexeme {
			t.Errorf("token %d: lexeme %q, want %q", i, second[i].Lexeme, first[i].Lexeme)
		}
		if second[i].Literal != first[i].Literal {
			t.Errorf("token %d: literal %v, want %v", i, second[i].Literal, first[i].Literal)
		}
	}
}

func TestScanLineNumbers(t *testing.T) {
	tokens, diags := scanAll(t, "one\ntwo\n\nthree")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	wantLines := []int{1, 2, 4, 4}
	if len(tokens) != len(wantLines) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantLines))
	}
	for i, w := range wantLines {
		if tokens[i].Line != w {
			t.Errorf("token %d on line %d, want %d", i, tokens[i].Line, w)
		}
	}
}
