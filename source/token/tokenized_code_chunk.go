package token

import (
	"fmt"
)

// A TokenizedCodeChunk holds an already-lexed run of tokens and replays them
// through NextToken, so that the parser can be fed from the REPL or from a test
// without going back through the lexer.
type TokenizedCodeChunk struct {
	position int
	code     []Token
}

func NewCodeChunk() *TokenizedCodeChunk {
	tcc := &TokenizedCodeChunk{
		position: -1,
		code:     []Token{},
	}
	return tcc
}

func (tcc *TokenizedCodeChunk) Append(tokenToAppend Token) {
	tcc.code = append(tcc.code, tokenToAppend)
}

func (tcc *TokenizedCodeChunk) Length() int {
	return len(tcc.code)
}

func (tcc *TokenizedCodeChunk) NextToken() Token {
	if tcc.position+1 < len(tcc.code) {
		tcc.position++
		return tcc.code[tcc.position]
	}
	if len(tcc.code) == 0 {
		return Token{Type: EOF, Literal: "EOF"}
	}
	last := tcc.code[len(tcc.code)-1]
	return Token{Type: EOF, Literal: "EOF",
		Line: last.Line, ChStart: last.ChEnd, ChEnd: last.ChEnd, Source: last.Source}
}

func (tcc *TokenizedCodeChunk) String() string {
	output := ""
	for _, tok := range tcc.code {
		output = output + fmt.Sprintf("%v\n", tok)
	}
	return output + "\n"
}

func (tcc *TokenizedCodeChunk) ToStart() {
	tcc.position = -1
}
