package lexer

import (
	"fmt"
	"strconv"

	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/token"
)

type Lexer struct {
	runes  *RuneSupplier
	tstart int // the column at the start of the current token
	lineNo int
	Ers    report.Errors
	source string
}

func NewLexer(source, input string) *Lexer {
	return &Lexer{
		runes:  NewRuneSupplier([]rune(input)),
		Ers:    report.Errors{},
		source: source,
		lineNo: 1,
	}
}

func (l *Lexer) Errors() report.Errors {
	return l.Ers
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.lineNo, l.tstart = l.runes.Position()
	if l.runes.AtEnd() {
		return l.MakeToken(token.EOF, "EOF")
	}
	ch := l.runes.CurrentRune()
	switch ch {
	case '[':
		return l.NewToken(token.LBRACK, "[")
	case ']':
		return l.NewToken(token.RBRACK, "]")
	case '{':
		return l.NewToken(token.LBRACE, "{")
	case '}':
		return l.NewToken(token.RBRACE, "}")
	case '(':
		return l.NewToken(token.LPAREN, "(")
	case ')':
		return l.NewToken(token.RPAREN, ")")
	case '<':
		return l.NewToken(token.LANGLE, "<")
	case '>':
		return l.NewToken(token.RANGLE, ">")
	case ',':
		return l.NewToken(token.COMMA, ",")
	case ';':
		return l.NewToken(token.SEMICOLON, ";")
	case '.':
		return l.NewToken(token.DOT, ".")
	case ':':
		return l.NewToken(token.COLON, ":")
	case '_':
		return l.NewToken(token.DISCARD, "_")
	case '\'':
		return l.NewToken(token.ALIAS, "'")
	case '*':
		return l.NewToken(token.IDENTITY, "*")
	case '@':
		return l.NewToken(token.MACRO, "@")
	case '"':
		s, bad, ok := l.runes.ReadString()
		if !ok {
			return l.Throw("lex/quote")
		}
		if bad != 0 {
			l.runes.Next()
			return l.Throw("lex/escape", bad)
		}
		return l.NewToken(token.STRING, s)
	}
	if ch == '0' {
		switch l.runes.PeekRune() {
		case 'b':
			return l.readRadix(2, "0b", "lex/bin")
		case 'o':
			return l.readRadix(8, "0o", "lex/oct")
		case 'x':
			return l.readRadix(16, "0x", "lex/hex")
		}
	}
	if IsDigit(ch) {
		digits := l.runes.ReadNumber()
		if _, e := strconv.ParseUint(digits, 10, 32); e != nil {
			l.runes.Next()
			return l.Throw("lex/int/range", digits)
		}
		return l.NewToken(token.INT, digits)
	}
	if IsLower(ch) {
		ident := l.runes.ReadIdentifier()
		return l.NewToken(token.LookupIdent(ident), ident)
	}
	l.runes.Next()
	return l.Throw("lex/ill", ch)
}

// Reads a literal with a radix prefix and returns it as a decimal INT token, so that
// the parser only ever has to deal with one notation.
func (l *Lexer) readRadix(base int, prefix, errorId string) token.Token {
	digits := l.runes.ReadRadixNumber()
	l.runes.Next()
	n, e := strconv.ParseUint(digits, base, 32)
	if digits == "" || e != nil {
		return l.Throw(errorId, prefix+digits)
	}
	return l.MakeToken(token.INT, strconv.FormatUint(n, 10))
}

func (l *Lexer) skipWhitespace() {
	for !l.runes.AtEnd() && IsWhitespace(l.runes.CurrentRune()) {
		l.runes.Next()
	}
}

// Consumes the last rune of the token and makes it.
func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	l.runes.Next()
	return l.MakeToken(tokenType, st)
}

func (l *Lexer) MakeToken(tokenType token.TokenType, st string) token.Token {
	if settings.SHOW_LEXER {
		fmt.Println(tokenType, st)
	}
	_, chNo := l.runes.Position()
	return token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.lineNo, ChStart: l.tstart, ChEnd: chNo}
}

// Makes an ILLEGAL token whose literal is the error identifier, and records the error.
func (l *Lexer) Throw(errorId string, args ...any) token.Token {
	tok := l.MakeToken(token.ILLEGAL, errorId)
	l.Ers = report.Throw(errorId, l.Ers, &tok, args...)
	return tok
}
