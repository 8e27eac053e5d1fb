package parser

import (
	"fmt"
	"strconv"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/lexer"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/token"
	"github.com/tim-hardcastle/welang/source/types"
)

// The parser is a plain recursive descent over the token stream, with one token of
// lookahead. It stops at the first error.
type Parser struct {
	curToken  token.Token
	peekToken token.Token
	tokens    lexer.TokenSupplier
	Errors    report.Errors
}

func New(tokens lexer.TokenSupplier) *Parser {
	p := &Parser{tokens: tokens, Errors: report.Errors{}}
	p.NextToken()
	p.NextToken()
	return p
}

// Lexes and parses the code of one module.
func ParseModule(source, code string) (*ast.Node, error) {
	return New(lexer.NewLexer(source, code)).ParseModule()
}

// Lexes and parses a single value.
func ParseValue(source, code string) (*ast.Node, error) {
	p := New(lexer.NewLexer(source, code))
	node, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.Throw("parse/value", &p.curToken, p.curToken.Literal)
	}
	return node, nil
}

func (p *Parser) NextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokens.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// Records the error and returns it, so that the caller can stop.
func (p *Parser) Throw(errorId string, tok *token.Token, args ...any) error {
	tokCopy := *tok
	e := report.CreateErr(errorId, &tokCopy, args...)
	p.Errors = append(p.Errors, e)
	return e
}

func (p *Parser) ErrorsExist() bool {
	return len(p.Errors) > 0
}

func (p *Parser) ReturnErrors() string {
	return report.GetList(p.Errors)
}

// A module is any number of 'use' lines followed by any number of declarations.
func (p *Parser) ParseModule() (*ast.Node, error) {
	start := p.curToken
	mod := ast.NewModule()
	for p.curTokenIs(token.USE) {
		useTok := p.curToken
		p.NextToken()
		if !p.curTokenIs(token.IDENT) {
			if p.curTokenIs(token.ILLEGAL) {
				return nil, p.illegal()
			}
			return nil, p.Throw("parse/use", &p.curToken, describe(p.curToken))
		}
		chain, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		if settings.SHOW_PARSER {
			fmt.Println("Parsed use of", (&ast.Reference{Chain: chain}).String(), "at line", useTok.Line)
		}
		mod.Usings = append(mod.Usings, chain)
	}
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.USE:
			return nil, p.Throw("parse/use/late", &p.curToken)
		case token.ILLEGAL:
			return nil, p.illegal()
		case token.IDENT:
		default:
			return nil, p.Throw("parse/declaration", &p.curToken, describe(p.curToken))
		}
		nameTok := p.curToken
		p.NextToken()
		if !p.curTokenIs(token.COLON) {
			if p.curTokenIs(token.ILLEGAL) {
				return nil, p.illegal()
			}
			return nil, p.Throw("parse/define", &p.curToken, nameTok.Literal, describe(p.curToken))
		}
		p.NextToken()
		value, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		if _, ok := mod.Declarations[nameTok.Literal]; ok {
			return nil, p.Throw("parse/duplicate/module", &nameTok, nameTok.Literal)
		}
		if settings.SHOW_PARSER {
			fmt.Println("Parsed declaration", nameTok.Literal+":", value.String())
		}
		mod.Declarations[nameTok.Literal] = value
	}
	node := ast.NewNode(mod, types.Unknown(), types.Unknown())
	node.Token = start
	return node, nil
}

// Parses one value, leaving the parser on the token after it. The node is given the
// types that can be known without looking at anything else: a reference is its own
// type, and aggregates are left Unknown for the typer.
func (p *Parser) ParseValue() (*ast.Node, error) {
	tok := p.curToken
	var node *ast.Node
	var err error
	switch tok.Type {
	case token.LBRACK:
		node, err = p.parseArray()
	case token.LBRACE:
		node, err = p.parseContext()
	case token.LPAREN:
		node, err = p.parseWord()
	case token.LANGLE:
		return p.parseTypeParameter()
	case token.ALIAS:
		p.NextToken()
		of, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		node = ast.NewNode(&ast.TypeAlias{Of: of}, of.InType, types.Alias(of.OutType))
	case token.IDENTITY:
		p.NextToken()
		of, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		node = ast.NewNode(&ast.TypeIdentity{Of: of}, of.InType, types.Identity(of.OutType))
	case token.IDENT:
		chain, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		node = ast.NewNode(&ast.Reference{Chain: chain}, types.Reference(chain...), types.Reference(chain...))
	case token.DISCARD:
		p.NextToken()
		node = ast.NewNode(&ast.Discard{}, types.None(), types.None())
	case token.INT:
		n, e := strconv.ParseUint(tok.Literal, 10, 32)
		if e != nil {
			return nil, p.Throw("lex/int/range", &tok, tok.Literal)
		}
		p.NextToken()
		node = ast.NewNode(&ast.Atom{Value: uint32(n)}, types.None(), types.Atom())
	case token.STRING:
		p.NextToken()
		node = ast.NewNode(&ast.String{Value: tok.Literal}, types.None(), types.Array(types.Atom()))
	case token.MACRO:
		return nil, p.Throw("parse/macro", &tok)
	case token.USE:
		return nil, p.Throw("parse/use/late", &tok)
	case token.ILLEGAL:
		return nil, p.illegal()
	case token.EOF:
		return nil, p.Throw("parse/value", &tok, "the end of the source")
	default:
		if token.IsCloser(tok.Type) {
			return nil, p.Throw("parse/close", &tok, tok.Literal, "")
		}
		return nil, p.Throw("parse/value", &tok, tok.Literal)
	}
	if err != nil {
		return nil, err
	}
	node.Token = tok
	return node, nil
}

// Parses '[a, b, c]'. A trailing comma is allowed; an empty element isn't.
func (p *Parser) parseArray() (*ast.Node, error) {
	elements := []*ast.Node{}
	err := p.parseSeparated(token.RBRACK, "array", func() error {
		value, err := p.ParseValue()
		if err != nil {
			return err
		}
		elements = append(elements, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ast.NewNode(&ast.Array{Elements: elements}, types.Unknown(), types.Unknown()), nil
}

// Parses '{a: x, b: y}'.
func (p *Parser) parseContext() (*ast.Node, error) {
	fields := map[string]*ast.Node{}
	err := p.parseSeparated(token.RBRACE, "context", func() error {
		keyTok := p.curToken
		if !p.curTokenIs(token.IDENT) {
			return p.Throw("parse/context/key", &keyTok, describe(keyTok))
		}
		p.NextToken()
		if !p.curTokenIs(token.COLON) {
			if p.curTokenIs(token.ILLEGAL) {
				return p.illegal()
			}
			return p.Throw("parse/define", &p.curToken, keyTok.Literal, describe(p.curToken))
		}
		p.NextToken()
		value, err := p.ParseValue()
		if err != nil {
			return err
		}
		if _, ok := fields[keyTok.Literal]; ok {
			return p.Throw("parse/duplicate/context", &keyTok, keyTok.Literal)
		}
		fields[keyTok.Literal] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ast.NewNode(&ast.Context{Fields: fields}, types.Unknown(), types.Unknown()), nil
}

// Parses the comma-separated items of an array or context, the parser being on the
// opening bracket. It finishes on the token after the closing bracket.
func (p *Parser) parseSeparated(closer token.TokenType, where string, item func() error) error {
	opener := p.curToken
	p.NextToken()
	lastWasSeparator := true
	for {
		switch {
		case p.curTokenIs(closer):
			p.NextToken()
			return nil
		case p.curTokenIs(token.COMMA):
			if lastWasSeparator {
				return p.Throw("parse/separator/duplicate", &p.curToken, where)
			}
			lastWasSeparator = true
			p.NextToken()
		case p.curTokenIs(token.EOF):
			return p.Throw("parse/unclosed", &opener, opener.Literal)
		case p.curTokenIs(token.ILLEGAL):
			return p.illegal()
		case token.IsCloser(p.curToken.Type):
			return p.Throw("parse/close", &p.curToken, p.curToken.Literal, string(closer))
		default:
			if !lastWasSeparator {
				return p.Throw("parse/separator/missing", &p.curToken, describe(p.curToken), where)
			}
			lastWasSeparator = false
			if err := item(); err != nil {
				return err
			}
		}
	}
}

// Parses '(c b a ; d)'. The steps are collected clause by clause and then put into
// execution order.
func (p *Parser) parseWord() (*ast.Node, error) {
	opener := p.curToken
	p.NextToken()
	clauses := [][]*ast.Node{{}}
	for {
		switch {
		case p.curTokenIs(token.RPAREN):
			p.NextToken()
			word := &ast.Word{Steps: ExecutionOrder(clauses)}
			return ast.NewNode(word, types.Unknown(), types.Unknown()), nil
		case p.curTokenIs(token.SEMICOLON):
			clauses = append(clauses, []*ast.Node{})
			p.NextToken()
		case p.curTokenIs(token.EOF):
			return nil, p.Throw("parse/unclosed", &opener, opener.Literal)
		case token.IsCloser(p.curToken.Type):
			return nil, p.Throw("parse/close", &p.curToken, p.curToken.Literal, ")")
		default:
			step, err := p.ParseValue()
			if err != nil {
				return nil, err
			}
			clauses[len(clauses)-1] = append(clauses[len(clauses)-1], step)
		}
	}
}

// Within a clause the steps are written last-executed first, while the clauses
// themselves run in the order they're written, so '(2 1 0 ; 3 ; 5 4)' runs 0, 1, 2, 3,
// 4, 5. This is the only place where the textual order is turned into execution order.
func ExecutionOrder(clauses [][]*ast.Node) []*ast.Node {
	steps := []*ast.Node{}
	for _, clause := range clauses {
		for i := len(clause) - 1; i >= 0; i-- {
			steps = append(steps, clause[i])
		}
	}
	return steps
}

// Parses '<in, out>value'. The node gets the declared types as its provisional types;
// the typer checks them against what it infers.
func (p *Parser) parseTypeParameter() (*ast.Node, error) {
	p.NextToken()
	in, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.COMMA) {
		return nil, p.Throw("parse/typeparam/separator", &p.curToken, describe(p.curToken))
	}
	p.NextToken()
	out, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.RANGLE) {
		return nil, p.Throw("parse/typeparam/close", &p.curToken, describe(p.curToken))
	}
	p.NextToken()
	node, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	node.Declared = &ast.Annotation{In: in, Out: out}
	node.InType, node.OutType = in.OutType, out.OutType
	return node, nil
}

// Parses 'a.b.c'.
func (p *Parser) parseChain() ([]string, error) {
	chain := []string{p.curToken.Literal}
	p.NextToken()
	for p.curTokenIs(token.DOT) {
		p.NextToken()
		if !p.curTokenIs(token.IDENT) {
			return nil, p.Throw("parse/chain", &p.curToken)
		}
		chain = append(chain, p.curToken.Literal)
		p.NextToken()
	}
	return chain, nil
}

// The lexer has already made an error for an ILLEGAL token; we find it if the token
// supplier can tell us about it.
func (p *Parser) illegal() error {
	tok := p.curToken
	if es, ok := p.tokens.(lexer.ErrorSupplier); ok {
		for _, e := range es.Errors() {
			if e.Token != nil && e.Token.Line == tok.Line && e.Token.ChStart == tok.ChStart {
				p.Errors = append(p.Errors, e)
				return e
			}
		}
	}
	return p.Throw("parse/value", &tok, tok.Literal)
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "the end of the source"
	}
	return tok.Literal
}
