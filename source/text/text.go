package text

// Text utilities for generating pretty and meaningful reports, error messages, and dumps.

import (
	"strconv"
	"strings"

	"github.com/tim-hardcastle/welang/source/token"
)

const (
	VERSION        = "0.1.0"
	BULLET         = "  ▪ "
	BULLET_SPACING = "    " // I.e. whitespace the same width as BULLET.
	PROMPT         = "→ "
)

var (
	RESET  = "\033[0m"
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	CYAN   = "\033[36m"
)

// Turns the ANSI codes off, e.g. when the configuration asks for plain output.
func Monochrome() {
	RESET, RED, GREEN, YELLOW, CYAN = "", "", "", "", ""
	OK = "OK"
}

var OK = Green("OK")

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Yellow(s string) string {
	return YELLOW + s + RESET
}

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Logo() string {
	titleText := " welang version " + VERSION + " "
	bar := strings.Repeat("═", len(titleText))
	return "\n  ╔" + bar + "╗\n" +
		"  ║" + titleText + "║\n" +
		"  ╚" + bar + "╝\n\n"
}

const HELP = "\nUsage: welang [check <path>]\n\n" +
	"  check <path>  Types the module tree at the path and prints the typed declaration tree.\n" +
	"  (no command)  Starts the REPL.\n\n"

func DescribePos(tok *token.Token) string {
	if tok == nil || tok.Line == 0 {
		return ""
	}
	result := " at line@" + strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart) + "@"
	if tok.Source != "" {
		result = result + "of '" + tok.Source + "'"
	}
	return result
}

// Extracts a module name from a filepath: the base name without its extension.
func ExtractFileName(s string) string {
	if strings.LastIndex(s, "/") >= 0 {
		s = s[strings.LastIndex(s, "/")+1:]
	}
	if strings.Index(s, ".") > 0 {
		s = s[:strings.Index(s, ".")]
	}
	return s
}

// Anything enclosed in '...' is code and is highlighted; anything between $...$ is an error
// heading; anything between @...@ is a position.
func HighlightLine(plainLine string, highlighter rune) (string, rune) {
	highlitLine := ""
	prevCh := ' '
	if highlighter != ' ' {
		highlitLine = CYAN
	}
	for _, ch := range plainLine {
		if highlighter == ' ' && ((prevCh == ' ' || prevCh == '\n' || prevCh == '$') &&
			(ch == '\'' || ch == '$') || ch == '@') {
			highlighter = ch
			switch highlighter {
			case '$':
				highlitLine = highlitLine + RED
				continue
			case '@':
				highlitLine = highlitLine + " " + YELLOW
				continue
			}
			highlitLine = highlitLine + CYAN
		} else if ch == highlighter {
			prevCh = ch
			highlighter = ' '
			switch ch {
			case '$':
				highlitLine = highlitLine + RESET + ": "
				continue
			case '@':
				highlitLine = highlitLine + " " + RESET
				continue
			}
			highlitLine = highlitLine + string(ch) + RESET
			continue
		}
		prevCh = ch
		highlitLine = highlitLine + string(ch)
	}
	return highlitLine, highlighter
}

// Wraps the text between the margins, highlighting as it goes.
func Pretty(s string, lMargin, rMargin int) string {
	width := rMargin - lMargin
	result := ""
	highlighter := ' '
	for i := 0; i < len(s); {
		result = result + strings.Repeat(" ", lMargin)
		e := i + width
		j := 0
		if e > len(s) {
			j = len(s) - i
		} else if strings.Contains(s[i:e], "\n") {
			j = strings.Index(s[i:e], "\n")
		} else {
			j = strings.LastIndex(s[i:e], " ")
		}
		if j == -1 {
			j = width
		}
		if strings.Contains(s[i:i+j], "\n") {
			j = strings.Index(s[i:i+j], "\n")
		}
		var line string
		line, highlighter = HighlightLine(s[i:i+j], highlighter)
		result = result + line + "\n"
		i = i + j + 1
	}
	return result
}
