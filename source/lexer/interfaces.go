package lexer

import (
	"fmt"

	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/token"
)

// This interface allows the parser to get its supply of tokens either from the lexer
// directly or from a `TokenizedCodeChunk`.
type TokenSupplier interface{ NextToken() token.Token }

// A supplier that can also say what went wrong when it handed out an ILLEGAL token.
type ErrorSupplier interface {
	TokenSupplier
	Errors() report.Errors
}

// Dumps the contents of a `TokenSupplier` into a string.
func String(t TokenSupplier) string {
	result := ""
	for tok := t.NextToken(); tok.Type != token.EOF; tok = t.NextToken() {
		result = result + fmt.Sprintf("%+v\n", tok)
	}
	return result
}

// Lexes the whole of the input into a replayable chunk.
func Chunk(source, input string) (*token.TokenizedCodeChunk, report.Errors) {
	l := NewLexer(source, input)
	chunk := token.NewCodeChunk()
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		chunk.Append(tok)
	}
	return chunk, l.Errors()
}
