package hub

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tim-hardcastle/welang/source/text"
)

func init() {
	text.Monochrome()
}

func newHub() (*Hub, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(""), out), out
}

// Feeds the lines to the hub and checks that the output of the last one contains the
// wanted text.
func testLines(t *testing.T, hub *Hub, out *bytes.Buffer, lines []string, want string) {
	t.Helper()
	for _, line := range lines {
		out.Reset()
		hub.Do(line)
	}
	if !strings.Contains(out.String(), want) {
		t.Fatalf("after %q the hub said %q, wanted it to contain %q", lines, out.String(), want)
	}
}

func writeModule(t *testing.T, name, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		t.Fatalf("can't write %s: %v", path, err)
	}
	return path
}

func TestSession(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{[]string{"a: 1"}, "a : None -> Atom"},
		{[]string{"[1, 2]"}, "None -> Array(Atom)"},
		{[]string{"a: 1", "b: [a, a]"}, "b : None -> Array(Atom)"},
		{[]string{"a: 1", "{x: a, y: \"z\"}"}, "None -> Context({x: Atom, y: Array(Atom)})"},
		{[]string{"a: 1", "b: [a, a]", "hub type b"}, "None -> Array(Atom)"},
		{[]string{"a: {x: 1}", "hub type a.x"}, "None -> Atom"},
		{[]string{"a: [1, 2]", "hub dump a"}, "0: 1 :: None -> Atom (resolved)"},
		{[]string{"hub frobnicate"}, "doesn't know the command 'frobnicate'"},
		{[]string{"hub"}, "you need to say what you want the hub to do"},
		{[]string{"hub help"}, "hub check <paths>"},
		{[]string{"hub help types"}, "in type"},
		{[]string{"hub help nothing"}, "doesn't accept 'nothing'"},
		{[]string{"hub errors"}, "There are no recent errors."},
		{[]string{"hub drivers"}, "SQLite"},
	}
	for _, test := range tests {
		hub, out := newHub()
		testLines(t, hub, out, test.lines, test.want)
	}
}

func TestBadDeclarationIsForgotten(t *testing.T) {
	hub, out := newHub()
	testLines(t, hub, out, []string{"a: 1", "c: [\"s\", [1]]"}, "StructuralMismatch")
	if !hub.Failed() {
		t.Fatalf("hub should have failed")
	}
	testLines(t, hub, out, []string{"hub type c"}, "UnresolvedReference")
	testLines(t, hub, out, []string{"hub type a"}, "None -> Atom")
}

func TestWhy(t *testing.T) {
	hub, out := newHub()
	testLines(t, hub, out, []string{"nowhere"}, "[0]")
	testLines(t, hub, out, []string{"hub errors"}, "UnresolvedReference")
	testLines(t, hub, out, []string{"hub why 0"}, "Error has reference 'ref/unresolved'.")
	testLines(t, hub, out, []string{"hub why 7"}, "takes the number of an error")
}

func TestCheck(t *testing.T) {
	path := writeModule(t, "lib.we", "a: 1\nb: [a, a]\n")
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub check " + path}, "a: 1 :: None -> Atom (resolved)")
	testLines(t, hub, out, []string{"hub type lib.b"}, "None -> Array(Atom)")
	testLines(t, hub, out, []string{"x: lib.a"}, "x : None -> Atom")
	testLines(t, hub, out, []string{"use lib", "y: b"}, "y : None -> Array(Atom)")
	testLines(t, hub, out, []string{"lib: 2"}, "the REPL declares 'lib'")
	if !hub.Failed() {
		t.Fatalf("the shadowing declaration should have failed")
	}
}

func TestCheckReportsErrors(t *testing.T) {
	path := writeModule(t, "bad.we", "a: [\"s\", [1]]\n")
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub check " + path}, "StructuralMismatch at a")
	testLines(t, hub, out, []string{"hub type bad.a"}, "UnresolvedReference")
}

func TestCheckGoesOnPastBrokenFiles(t *testing.T) {
	bad := writeModule(t, "bad.we", "a: [1,,2]\n")
	good := writeModule(t, "good.we", "b: 1\n")
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub check " + bad + " " + good}, "b: 1 :: None -> Atom (resolved)")
	if !strings.Contains(out.String(), "MalformedInput") {
		t.Fatalf("the broken file wasn't reported: %q", out.String())
	}
	if len(hub.ers) != 1 || hub.ers[0].ErrorId != "parse/separator/duplicate" {
		t.Fatalf("unexpected errors %v", hub.ers)
	}
	testLines(t, hub, out, []string{"hub type good.b"}, "None -> Atom")
}

func TestCheckRejectsClashingNames(t *testing.T) {
	first := writeModule(t, "lib.we", "a: 1\n")
	second := writeModule(t, "lib.we", "a: \"s\"\n")
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub check " + first + " " + second}, "DuplicateKey")
	if len(hub.ers) != 1 || hub.ers[0].ErrorId != "mod/duplicate/check" {
		t.Fatalf("unexpected errors %v", hub.ers)
	}
	testLines(t, hub, out, []string{"hub type lib.a"}, "None -> Atom")
}

func TestFiles(t *testing.T) {
	path := writeModule(t, "lib.we", "a: 1\n")
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub files " + filepath.Dir(path)}, "lib.we")
}

func TestStore(t *testing.T) {
	hub, out := newHub()
	testLines(t, hub, out, []string{"hub save"}, "there is no signature store open")
	dsn := filepath.Join(t.TempDir(), "sigs.db")
	testLines(t, hub, out, []string{"hub store sqlite " + dsn}, "OK")
	defer hub.Close()
	testLines(t, hub, out, []string{"a: 1", "b: [a]", "hub save"}, "Saved 2 signatures.")
	testLines(t, hub, out, []string{"hub signatures"}, "b : None -> Array(Atom)")
	testLines(t, hub, out, []string{"hub signatures elsewhere"}, "no signatures for that module")
	testLines(t, hub, out, []string{"hub store"}, "takes the name of a driver")
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "welang.yaml")
	dsn := filepath.Join(dir, "sigs.db")
	if err := os.WriteFile(cfg, []byte("colour: false\nstore:\n  driver: SQLite\n  dsn: "+dsn+"\n"), 0644); err != nil {
		t.Fatalf("can't write configuration: %v", err)
	}
	hub, out := newHub()
	hub.Open(cfg)
	defer hub.Close()
	if hub.store == nil {
		t.Fatalf("hub should have opened the store, said %q", out.String())
	}
	if hub.store.Driver() != "sqlite" {
		t.Fatalf("store has driver %q", hub.store.Driver())
	}
}

func TestQuit(t *testing.T) {
	hub, _ := newHub()
	if !hub.Do("hub quit") {
		t.Fatalf("hub should have quit")
	}
	if hub.Do("a: 1") {
		t.Fatalf("a declaration shouldn't quit")
	}
}

func TestBroken(t *testing.T) {
	hub, out := newHub()
	testLines(t, hub, out, []string{"nowhere"}, "UnresolvedReference")
	if !hub.Broken() {
		t.Fatalf("hub should be broken after an error")
	}
	testLines(t, hub, out, []string{"a: 1"}, "a : None -> Atom")
	if hub.Broken() {
		t.Fatalf("hub should have recovered")
	}
	if !hub.Failed() {
		t.Fatalf("hub should remember that something failed")
	}
}
