package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/welang/source/token"
)

// A map from error identifiers to the kind of the error and functions that supply the
// corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are lex, mod, parse, ref, and type.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return ""
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return ""
		},
	},

	"lex/bin": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed binary literal " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A binary literal is '0b' followed by at least one of the digits 0 and 1, and must fit in an atom."
		},
	},

	"lex/escape": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "unknown escape sequence " + emph("\\"+string(args[0].(rune)))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Inside a string literal the backslash may only be followed by '\"', '\\', 'n', or 't'."
		},
	},

	"lex/hex": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed hexadecimal literal " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A hexadecimal literal is '0x' followed by at least one hex digit, and must fit in an atom."
		},
	},

	"lex/ill": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "illegal character " + emph(string(args[0].(rune))) + " in source"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The lexer has found a character that can't begin any token. Identifiers must begin " +
				"with a lowercase letter."
		},
	},

	"lex/int/range": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "integer literal " + emph(args[0]) + " is too big to be an atom"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An atom is an unsigned 32-bit integer, so the largest literal it can hold is " +
				strconv.FormatUint(uint64(^uint32(0)), 10) + "."
		},
	},

	"lex/oct": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "malformed octal literal " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An octal literal is '0o' followed by at least one of the digits 0 to 7, and must fit in an atom."
		},
	},

	"lex/quote": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "string literal is never closed"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The lexer reached the end of the source while still inside a string literal."
		},
	},

	"mod/duplicate": {
		Kind: DuplicateKey,
		Message: func(tok *token.Token, args ...any) string {
			return "module " + emph(args[0]) + " is defined more than once in " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A file and a directory, or two files with different extensions, have the same name once " +
				"the extension is removed, so the namespace can't tell them apart."
		},
	},

	"mod/duplicate/check": {
		Kind: DuplicateKey,
		Message: func(tok *token.Token, args ...any) string {
			return "the paths " + emph(args[1]) + " and " + emph(args[2]) + " would both be checked as the module " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Checked modules are known by their file names with the extension removed, so two paths " +
				"with the same base name can't be checked together. The second one is skipped."
		},
	},

	"parse/chain": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "expected an identifier after " + emph(".")
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A qualified name like 'a.b.c' can't end with, or contain two, dots."
		},
	},

	"parse/close": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			if args[1] == "" {
				return "found " + emph(args[0]) + " with nothing to close"
			}
			return "found " + emph(args[0]) + " where " + emph(args[1]) + " was expected"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Brackets must be closed by the matching bracket: '[' by ']', '{' by '}', '(' by ')', and '<' by '>'."
		},
	},

	"parse/context/key": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where a context key was expected"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each field of a context is written as an identifier, a colon, and a value, separated by commas, e.g. '{x: 1, y: 2}'."
		},
	},

	"parse/declaration": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where a declaration was expected"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "After its 'use' lines a module consists only of declarations of the form 'name: value'."
		},
	},

	"parse/define": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "expected " + emph(":") + " after " + emph(args[0]) + ", found " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A name being declared must be followed by a colon and then the value it names."
		},
	},

	"parse/duplicate/context": {
		Kind: DuplicateKey,
		Message: func(tok *token.Token, args ...any) string {
			return "context key " + emph(args[0]) + " is used more than once"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The keys of a context are unique: each field can only be given one value."
		},
	},

	"parse/duplicate/module": {
		Kind: DuplicateKey,
		Message: func(tok *token.Token, args ...any) string {
			return "declaration " + emph(args[0]) + " is made more than once in the same module"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each name in a module names one declaration, so that references to it are unambiguous."
		},
	},

	"parse/macro": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "macros are not implemented"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The '@' symbol is reserved for macros, which the language does not have yet."
		},
	},

	"parse/separator/duplicate": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found a duplicate " + emph(",") + " in " + fmt.Sprint(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Elements and fields are separated by single commas; there is no empty element."
		},
	},

	"parse/separator/missing": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "missing " + emph(",") + " before " + emph(args[0]) + " in " + fmt.Sprint(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The elements of an array and the fields of a context must be separated by commas, " +
				"e.g. '[1, 2, 3]' or '{x: 1, y: 2}'."
		},
	},

	"parse/typeparam/close": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where " + emph(">") + " should close the type parameter"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A type parameter has exactly two entries, the in type and the out type: '<in, out>value'."
		},
	},

	"parse/typeparam/separator": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where " + emph(",") + " should separate the in and out types"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A type parameter has exactly two entries, the in type and the out type: '<in, out>value'."
		},
	},

	"parse/unclosed": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "reached the end of the source inside " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Some bracket has been opened and never closed."
		},
	},

	"parse/use": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where the name of a module should follow " + emph("use")
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A 'use' line names a module by its qualified path, e.g. 'use std.strings'."
		},
	},

	"parse/use/late": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return emph("use") + " found after the first declaration"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "All the 'use' lines of a module come before its declarations. If you're trying to " +
				"name something 'use', please choose something else."
		},
	},

	"parse/value": {
		Kind: MalformedInput,
		Message: func(tok *token.Token, args ...any) string {
			return "found " + emph(args[0]) + " where a value was expected"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A value is a literal, a qualified name, a discard '_', a bracketed array, context or word, " +
				"or one of these preceded by a type parameter, ''' or '*'."
		},
	},

	"ref/ambiguous": {
		Kind: UnresolvedReference,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is declared both in " + emph(args[1]) + " and in " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An unqualified name was not declared in its own module, and more than one imported module " +
				"declares it. Qualify the name to say which one you mean."
		},
	},

	"ref/cycle": {
		Kind: UnresolvedReference,
		Message: func(tok *token.Token, args ...any) string {
			return "declarations refer to one another in a cycle: " + fmt.Sprint(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Declarations may refer to one another in any textual order, but the type of a declaration " +
				"can't depend on itself, since there would be no way to finish computing it."
		},
	},

	"ref/field": {
		Kind: UnresolvedReference,
		Message: func(tok *token.Token, args ...any) string {
			return "no field " + emph(args[0]) + " in value of type " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "After the declaration is found, the rest of a qualified name picks out fields of contexts, " +
				"and the field named is not there."
		},
	},

	"ref/unresolved": {
		Kind: UnresolvedReference,
		Message: func(tok *token.Token, args ...any) string {
			return "can't find " + emph(args[0]) + " in scope"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A name is looked for first among the declarations of its own module, then in the modules " +
				"it uses, and then from the root of the module tree."
		},
	},

	"ref/use": {
		Kind: UnresolvedReference,
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " does not name a module"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A 'use' line must give the path of a module from the root of the module tree."
		},
	},

	"repl/shadow": {
		Kind: DuplicateKey,
		Message: func(tok *token.Token, args ...any) string {
			return "the REPL declares " + emph(args[0]) + ", which is the name of a checked module"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Modules loaded with 'hub check' are mounted in the REPL's session under their file " +
				"names, so a declaration typed into the REPL can't have the same name as one of them. " +
				"Use 'hub clear' to forget the REPL's declarations."
		},
	},

	"type/annotation": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "declared " + fmt.Sprint(args[0]) + " type " + emph(args[1]) + " but the value has type " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A type parameter '<in, out>' states the types a value must have. A declared type of '_' " +
				"leaves the type to be inferred; any other declared type must agree with the inferred one."
		},
	},

	"type/fold/array": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't combine array types " + emph(args[0]) + " and " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Arrays are homogeneous, so arrays with different element types have no common type."
		},
	},

	"type/fold/combination": {
		Kind: UnimplementedCombination,
		Message: func(tok *token.Token, args ...any) string {
			return "can't combine " + emph(args[0]) + " with " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "There is no rule for combining values of these two types into one aggregate type, and " +
				"the typer never widens one type into another."
		},
	},

	"type/fold/context": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "tried to use field " + emph(args[0]) + " as both " + emph(args[1]) + " and " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "When contexts are combined their fields are merged, and a field present in both must have " +
				"the same type in both."
		},
	},

	"type/fold/identity/a": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "identities " + emph(args[0]) + " and " + emph(args[1]) + " are not the same"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An identity type is nominal: it only combines with an identity wrapping exactly the same type."
		},
	},

	"type/fold/identity/b": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't combine identity with non-identity: " + emph(args[0]) + " and " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "An identity type is nominal, so it never combines with the type it wraps. Use ''' for a " +
				"transparent alias instead."
		},
	},

	"type/fold/reference": {
		Kind: UnimplementedCombination,
		Message: func(tok *token.Token, args ...any) string {
			return "can't combine unresolved reference types " + emph(args[0]) + " and " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A reference has no type until it is resolved, so it can't take part in combining types."
		},
	},

	"type/fold/word": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "can't combine word types " + emph(args[0]) + " and " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Words with different output types have no common type."
		},
	},

	"type/step": {
		Kind: StructuralMismatch,
		Message: func(tok *token.Token, args ...any) string {
			return "step " + strconv.Itoa(args[0].(int)) + " needs " + emph(args[2]) +
				" but the step before it produces " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			if args[0].(int) == 0 {
				return "The first step of a word receives nothing, so it must be a step that needs no input."
			}
			return "Each step of a word receives the output of the step before it, so the types must agree. " +
				"A step which needs nothing accepts anything."
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}
