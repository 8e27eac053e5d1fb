package lexer

import (
	"testing"

	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/token"
)

func TestSymbols(t *testing.T) {
	input := `[ ] { } ( ) < > ' * ; , . : @ _`
	items := []testItem{
		{token.LBRACK, "[", 1},
		{token.RBRACK, "]", 1},
		{token.LBRACE, "{", 1},
		{token.RBRACE, "}", 1},
		{token.LPAREN, "(", 1},
		{token.RPAREN, ")", 1},
		{token.LANGLE, "<", 1},
		{token.RANGLE, ">", 1},
		{token.ALIAS, "'", 1},
		{token.IDENTITY, "*", 1},
		{token.SEMICOLON, ";", 1},
		{token.COMMA, ",", 1},
		{token.DOT, ".", 1},
		{token.COLON, ":", 1},
		{token.MACRO, "@", 1},
		{token.DISCARD, "_", 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, input, items)
}

func TestDeclarations(t *testing.T) {
	input := `use std.io
main: (1 2 ; inc)
point: {x: 0x10, y: 0b101}
mode: 0o17
`
	items := []testItem{
		{token.USE, "use", 1},
		{token.IDENT, "std", 1},
		{token.DOT, ".", 1},
		{token.IDENT, "io", 1},
		{token.IDENT, "main", 2},
		{token.COLON, ":", 2},
		{token.LPAREN, "(", 2},
		{token.INT, "1", 2},
		{token.INT, "2", 2},
		{token.SEMICOLON, ";", 2},
		{token.IDENT, "inc", 2},
		{token.RPAREN, ")", 2},
		{token.IDENT, "point", 3},
		{token.COLON, ":", 3},
		{token.LBRACE, "{", 3},
		{token.IDENT, "x", 3},
		{token.COLON, ":", 3},
		{token.INT, "16", 3},
		{token.COMMA, ",", 3},
		{token.IDENT, "y", 3},
		{token.COLON, ":", 3},
		{token.INT, "5", 3},
		{token.RBRACE, "}", 3},
		{token.IDENT, "mode", 4},
		{token.COLON, ":", 4},
		{token.INT, "15", 4},
		{token.EOF, "EOF", 5},
	}
	testLexingString(t, input, items)
}

func TestStrings(t *testing.T) {
	input := `"hello" "tab\there" "say \"hi\"" "back\\slash"`
	items := []testItem{
		{token.STRING, "hello", 1},
		{token.STRING, "tab\there", 1},
		{token.STRING, `say "hi"`, 1},
		{token.STRING, `back\slash`, 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, input, items)
}

func TestIdentifiersAreAlphanumeric(t *testing.T) {
	items := []testItem{
		{token.IDENT, "abc2Def", 1},
		{token.IDENT, "user", 1}, // Only the exact keyword is special.
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, "abc2Def user", items)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`Upper`, "lex/ill"},
		{`$`, "lex/ill"},
		{`"open`, "lex/quote"},
		{`"bad \q"`, "lex/escape"},
		{`4294967296`, "lex/int/range"},
		{`0b`, "lex/bin"},
		{`0b102`, "lex/bin"},
		{`0o8`, "lex/oct"},
		{`0xfffffffff`, "lex/hex"},
	}
	for _, tt := range tests {
		l := NewLexer("dummy source", tt.input)
		tok := l.NextToken()
		if tok.Type != token.ILLEGAL || tok.Literal != tt.want {
			t.Fatalf("lexing %q: expected ILLEGAL %q, got %s %q", tt.input, tt.want, tok.Type, tok.Literal)
		}
		if len(l.Errors()) != 1 || l.Errors()[0].ErrorId != tt.want {
			t.Fatalf("lexing %q: expected one error %q, got %v", tt.input, tt.want, l.Errors())
		}
		if kind := l.Errors()[0].Kind(); kind != report.MalformedInput {
			t.Fatalf("lexing %q: expected MalformedInput, got %v", tt.input, kind)
		}
	}
}

func TestLargestAtom(t *testing.T) {
	items := []testItem{
		{token.INT, "4294967295", 1},
		{token.INT, "4294967295", 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, "4294967295 0xffffffff", items)
}

func TestPositions(t *testing.T) {
	l := NewLexer("pos.we", "a:\n  bcd")
	l.NextToken()
	l.NextToken()
	tok := l.NextToken()
	if tok.Line != 2 || tok.ChStart != 3 || tok.ChEnd != 6 || tok.Source != "pos.we" {
		t.Fatalf("unexpected position for %q: %+v", tok.Literal, tok)
	}
}

func TestChunk(t *testing.T) {
	chunk, ers := Chunk("dummy source", "a: 1")
	if len(ers) != 0 {
		t.Fatalf("unexpected errors: %v", ers)
	}
	if chunk.Length() != 3 {
		t.Fatalf("expected 3 tokens, got %d", chunk.Length())
	}
	runTest(t, chunk, []testItem{
		{token.IDENT, "a", 1},
		{token.COLON, ":", 1},
		{token.INT, "1", 1},
		{token.EOF, "EOF", 1},
	})
}

type testItem struct {
	expectedType    token.TokenType
	expectedLiteral string
	expectedLine    int
}

func testLexingString(t *testing.T, input string, items []testItem) {
	l := NewLexer("dummy source", input)
	runTest(t, l, items)
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexer errors:\n%s", report.GetList(l.Errors()))
	}
}

func runTest(t *testing.T, ts TokenSupplier, items []testItem) {
	for i, tt := range items {
		tok := ts.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q with literal %q, got=%q with literal %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}
}
