package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // foo, barQux, x1, ...
	INT    = "int"    // 1343456, 0x2a
	STRING = "string" // "foo"

	// Paired delimiters
	LBRACK = "["
	RBRACK = "]"
	LBRACE = "{"
	RBRACE = "}"
	LPAREN = "("
	RPAREN = ")"
	LANGLE = "<"
	RANGLE = ">"

	// Separators
	COMMA     = ","
	SEMICOLON = ";"
	DOT       = "."

	// Symbols
	COLON    = ":"
	DISCARD  = "_"
	ALIAS    = "'"
	IDENTITY = "*"
	MACRO    = "@"

	// Keywords
	USE = "use"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"use": USE,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Tokens which open a bracketed value, mapped to the tokens that close them.
var Closers = map[TokenType]TokenType{
	LBRACK: RBRACK,
	LBRACE: RBRACE,
	LPAREN: RPAREN,
	LANGLE: RANGLE,
}

func IsCloser(t TokenType) bool {
	return t == RBRACK || t == RBRACE || t == RPAREN || t == RANGLE
}
