// All this does is contain in one place the constants controlling which bits of the inner workings of the
// lexer/parser/typer are displayed for debugging purposes. In a release they must all be set to false
// except SHOW_TESTS which may as well be left as true.

package settings

const (
	FILE_EXTENSION = ".we" // The extension of the source files the module assembler turns into modules.
	CONFIG_FILE    = "welang.yaml"

	// These do what it sounds like.
	SHOW_LEXER  = false
	SHOW_PARSER = false
	SHOW_TYPER  = false // Shows the in and out types of every node as each pass finishes with it.

	SHOW_TESTS = true // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)
