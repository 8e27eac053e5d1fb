package test_helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/text"
)

// Auxiliary types and functions for testing the parser and the typer.

// If the test is expected to fail, Want should be "!" followed by the error identifier,
// e.g. "!type/step".
type TestItem struct {
	Input string
	Want  string
}

// Runs each test's input through F. If a filename is given, the contents of that file in
// the package's test-files directory are put in front of every input, so that a set of
// tests can share declarations.
func RunTest(t *testing.T, filename string, tests []TestItem, F func(input string) (string, error)) {
	t.Helper()
	prelude := ""
	if filename != "" {
		wd, _ := os.Getwd() // The working directory is the directory containing the package being tested.
		data, e := os.ReadFile(filepath.Join(wd, "test-files", filename))
		if e != nil {
			t.Fatalf("Couldn't read test file %s: %v", filename, e)
		}
		prelude = string(data) + "\n"
	}
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(prelude + test.Input)
		if e != nil {
			if settings.SHOW_TESTS {
				println(text.Red(test.Input))
				println("There were errors: \n" + e.Error() + "\n")
			}
			got = "!" + report.IdOf(e)
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}
