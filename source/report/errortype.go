package report

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/welang/source/token"
)

// The five kinds of failure the front end can report. Every error identifier in the
// ErrorCreatorMap belongs to exactly one of them.
type Kind int

const (
	StructuralMismatch Kind = iota
	UnimplementedCombination
	UnresolvedReference
	DuplicateKey
	MalformedInput
)

func (k Kind) String() string {
	switch k {
	case StructuralMismatch:
		return "StructuralMismatch"
	case UnimplementedCombination:
		return "UnimplementedCombination"
	case UnresolvedReference:
		return "UnresolvedReference"
	case DuplicateKey:
		return "DuplicateKey"
	case MalformedInput:
		return "MalformedInput"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// The 'error' type.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Path    []string // The declaration path of the node being typed when the error was raised.
	Token   *token.Token
}

type ErrorCreator struct {
	Kind        Kind
	Message     func(tok *token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok *token.Token, args ...any) string
}

type Errors []*Error

func (e *Error) Error() string {
	var out strings.Builder
	out.WriteString(e.Kind().String())
	if len(e.Path) > 0 {
		out.WriteString(" at ")
		out.WriteString(strings.Join(e.Path, "."))
	}
	if e.Token != nil && e.Token.Line > 0 {
		out.WriteString(" (")
		if e.Token.Source != "" {
			out.WriteString(e.Token.Source + ":")
		}
		out.WriteString(strconv.Itoa(e.Token.Line) + ":" + strconv.Itoa(e.Token.ChStart) + ")")
	}
	out.WriteString(": ")
	out.WriteString(e.Message)
	return out.String()
}

func (e *Error) Kind() Kind {
	creator, ok := ErrorCreatorMap[e.ErrorId]
	if !ok {
		return UnimplementedCombination
	}
	return creator.Kind
}

// Attaches the declaration path to the error unless an inner node has already done so:
// the innermost path is the one that names the failing node.
func (e *Error) At(path []string) *Error {
	if e.Path == nil {
		e.Path = append([]string{}, path...)
	}
	return e
}

// Attaches a token to the error if it has none.
func (e *Error) On(tok *token.Token) *Error {
	if e.Token == nil {
		e.Token = tok
	}
	return e
}

func (e *Error) Explain() string {
	creator, ok := ErrorCreatorMap[e.ErrorId]
	if !ok || creator.Explanation == nil {
		return ""
	}
	return creator.Explanation(Errors{e}, 0, e.Token, e.Args...)
}

func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("No error with identifier " + errorId + " in the error creator map.")
	}
	return &Error{ErrorId: errorId, Message: creator.Message(tok, args...), Args: args, Token: tok}
}

func Throw(errorId string, ers Errors, tok *token.Token, args ...any) Errors {
	return append(ers, CreateErr(errorId, tok, args...))
}

// Returns the kind of any error that came out of the front end.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind(), true
	}
	return 0, false
}

// Returns the identifier of any error that came out of the front end, or "" if it didn't.
func IdOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.ErrorId
	}
	return ""
}

func GetList(ers Errors) string {
	result := ""
	for i, e := range ers {
		result = result + "$Error$ [" + strconv.Itoa(i) + "] " + e.Error() + "\n"
	}
	return result + "\n"
}
