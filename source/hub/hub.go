package hub

import (
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/database"
	"github.com/tim-hardcastle/welang/source/modules"
	"github.com/tim-hardcastle/welang/source/parser"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/text"
	"github.com/tim-hardcastle/welang/source/token"
	"github.com/tim-hardcastle/welang/source/typer"
	"github.com/tim-hardcastle/welang/source/types"
)

var (
	MARGIN = 84
)

const REPL_SOURCE = "REPL input"

// The hub keeps a session: the module trees that have been checked, and the declarations
// typed into the REPL. Every time either changes, the REPL's declarations are parsed again
// as a module, the trees are mounted in it by name, and the whole is typed again. The
// trees have already been typed, so this only costs anything for the new code.
type Hub struct {
	in      io.Reader
	out     io.Writer
	config  *settings.Config
	trees   map[string]*ast.Node
	order   []string // The names of the trees, in the order they were given.
	scratch []string
	session *ast.Node
	store   *database.Store
	ers     report.Errors
	failed  bool
	broken  bool
}

func New(in io.Reader, out io.Writer) *Hub {
	hub := Hub{
		in:      in,
		out:     out,
		config:  settings.DefaultConfig(),
		trees:   map[string]*ast.Node{},
		scratch: []string{},
	}
	hub.rebuild()
	return &hub
}

// Reads the configuration, and opens the signature store if it names one.
func (hub *Hub) Open(configPath string) {
	cfg, err := settings.LoadConfig(configPath)
	if err != nil {
		hub.WriteError(err.Error())
		return
	}
	hub.config = cfg
	if !cfg.Colour {
		text.Monochrome()
	}
	if cfg.Store.Driver != "" {
		hub.openStore(cfg.Store.Driver, cfg.Store.DSN)
	}
}

// Whether anything has gone wrong since the hub was made.
func (hub *Hub) Failed() bool {
	return hub.failed
}

// Whether the last thing the hub was asked to do went wrong.
func (hub *Hub) Broken() bool {
	return hub.broken
}

func (hub *Hub) Close() {
	if hub.store != nil {
		hub.store.Close()
	}
}

var declaration = regexp.MustCompile(`^\s*(use\s|[a-z][A-Za-z0-9]*\s*:)`)

// This takes the input from the REPL, interprets it as a hub command if it begins with 'hub';
// as a declaration to add to the session if it looks like one; and otherwise as a value to
// be typed in the session. It returns true if the hub should quit.
func (hub *Hub) Do(line string) bool {
	hub.broken = false
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	if words[0] == "hub" {
		if len(words) == 1 {
			hub.WriteError("you need to say what you want the hub to do.")
			return false
		}
		return hub.DoHubCommand(words[1], words[2:])
	}
	if declaration.MatchString(line) {
		hub.declare(line)
		return false
	}
	hub.typeValue(line)
	return false
}

func (hub *Hub) DoHubCommand(verb string, args []string) bool {
	switch verb {
	case "check":
		if len(args) == 0 {
			hub.WriteError("the 'check' command needs the path of at least one module.")
			return false
		}
		hub.check(args)
	case "clear":
		hub.scratch = []string{}
		hub.rebuild()
		hub.WriteString(text.OK + "\n")
	case "drivers":
		hub.WriteString(database.GetDriverOptions())
	case "dump":
		node, ok := hub.find(args)
		if ok {
			hub.WriteString(parser.Dump(node))
		}
	case "errors":
		if len(hub.ers) == 0 {
			hub.WritePretty("There are no recent errors.")
			return false
		}
		hub.WritePretty(report.GetList(hub.ers))
	case "files":
		if len(args) != 1 {
			hub.WriteError("the 'files' command takes the path of a directory.")
			return false
		}
		files, err := modules.SourceFiles(args[0], hub.config.Extension)
		if err != nil {
			hub.WriteError(err.Error())
			return false
		}
		for _, f := range files {
			hub.WriteString(text.BULLET + f + "\n")
		}
	case "help":
		topic := "help"
		if len(args) > 0 {
			topic = args[0]
		}
		if helpMessage, ok := helpStrings[topic]; ok {
			hub.WritePretty(helpMessage + "\n")
			return false
		}
		hub.WriteError("the 'hub help' command doesn't accept " +
			"'" + topic + "' as a parameter.")
	case "quit":
		hub.quit()
		return true
	case "save":
		if hub.store == nil {
			hub.WriteError("there is no signature store open. Use 'hub store <driver> <dsn>' to open one.")
			return false
		}
		rows := database.Collect(hub.session)
		if err := hub.store.Save(rows); err != nil {
			hub.WriteError(err.Error())
			return false
		}
		hub.WriteString("Saved " + strconv.Itoa(len(rows)) + " signatures.\n")
	case "signatures":
		if hub.store == nil {
			hub.WriteError("there is no signature store open. Use 'hub store <driver> <dsn>' to open one.")
			return false
		}
		module := ""
		if len(args) > 0 {
			module = args[0]
		}
		rows, err := hub.store.Signatures(module)
		if err != nil {
			hub.WriteError(err.Error())
			return false
		}
		if len(rows) == 0 {
			hub.WritePretty("The store has no signatures for that module.")
			return false
		}
		for _, r := range rows {
			hub.WriteString(text.BULLET + r.String() + "\n")
		}
	case "store":
		if len(args) != 2 {
			hub.WriteError("the 'store' command takes the name of a driver and a data source, " +
				"e.g. 'hub store sqlite sigs.db'.")
			return false
		}
		hub.openStore(args[0], args[1])
	case "type":
		if len(args) != 1 {
			hub.WriteError("the 'type' command takes the name of a declaration, e.g. 'hub type lib.a'.")
			return false
		}
		in, out, err := typer.New(hub.session).TypeOf(strings.Split(args[0], "."))
		if err != nil {
			hub.report(err)
			return false
		}
		hub.WriteString(describe(in, out) + "\n")
	case "why":
		if len(args) != 1 {
			hub.WriteError("the 'why' keyword takes the number of an error as a parameter.")
			return false
		}
		num, err := strconv.Atoi(args[0])
		if err != nil || num < 0 || num >= len(hub.ers) {
			hub.WriteError("the 'why' keyword takes the number of an error as a parameter.")
			return false
		}
		hub.WritePretty("\n$Error$" + hub.ers[num].Message +
			".\n\n" + report.ErrorCreatorMap[hub.ers[num].ErrorId].Explanation(hub.ers, num, hub.ers[num].Token, hub.ers[num].Args...) + "\n")
		refLine := "Error has reference '" + hub.ers[num].ErrorId + "'."
		refLine = "\n" + strings.Repeat(" ", MARGIN-len(refLine)-2) + refLine
		hub.WritePretty(refLine)
		hub.WriteString("\n")
	default:
		hub.WriteError("the hub doesn't know the command '" + verb + "'. Try 'hub help'.")
	}
	return false
}

// Loads the trees at the paths and types them, independently, as many at a time as the
// configuration allows.
func (hub *Hub) check(paths []string) {
	roots := []*ast.Node{}
	names := []string{}
	ers := report.Errors{}
	from := map[string]string{}
	for _, path := range paths {
		name := text.ExtractFileName(filepath.Clean(path))
		if earlier, ok := from[name]; ok {
			ers = hub.collect(ers, report.CreateErr("mod/duplicate/check", &token.Token{Source: path}, name, earlier, path))
			continue
		}
		from[name] = path
		root, err := modules.FromPath(path, hub.config.Extension)
		if err != nil {
			ers = hub.collect(ers, err)
			continue
		}
		roots = append(roots, root)
		names = append(names, name)
	}
	hub.trees = map[string]*ast.Node{}
	hub.order = []string{}
	errs := typer.CheckForest(roots, hub.config.Workers)
	for i, root := range roots {
		if errs[i] != nil {
			ers = hub.collect(ers, errs[i])
			continue
		}
		hub.trees[names[i]] = root
		hub.order = append(hub.order, names[i])
		hub.WriteString(parser.Dump(root))
	}
	if len(ers) > 0 {
		hub.reportAll(ers)
	}
	hub.rebuild()
}

// Keeps an error from the front end so that 'hub why' can explain it. Anything else is
// written out there and then.
func (hub *Hub) collect(ers report.Errors, err error) report.Errors {
	var e *report.Error
	if errors.As(err, &e) {
		return append(ers, e)
	}
	hub.WriteError(err.Error())
	return ers
}

func (hub *Hub) declare(line string) {
	hub.scratch = append(hub.scratch, line)
	node, err := hub.rebuild()
	if err != nil {
		hub.scratch = hub.scratch[:len(hub.scratch)-1]
		hub.rebuild()
		hub.report(err)
		return
	}
	m := node.Value.(*ast.Module)
	if match := declaredName.FindStringSubmatch(line); match != nil {
		decl := m.Declarations[match[1]]
		hub.WriteString(match[1] + " : " + describe(decl.InType, decl.OutType) + "\n")
		return
	}
	hub.WriteString(text.OK + "\n")
}

// The value is typed as an extra declaration of the session, under a name no identifier
// can spell, and then thrown away.
func (hub *Hub) typeValue(line string) {
	value, err := parser.ParseValue(REPL_SOURCE, line)
	if err != nil {
		hub.report(err)
		return
	}
	session, err := hub.parseSession()
	if err != nil {
		hub.report(err)
		return
	}
	session.Value.(*ast.Module).Declarations["Value"] = value
	if err := typer.Check(session); err != nil {
		hub.report(err)
		return
	}
	hub.WriteString(describe(value.InType, value.OutType) + "\n")
}

// Makes the session afresh and types it. If that fails, the previous session is kept.
func (hub *Hub) rebuild() (*ast.Node, error) {
	session, err := hub.parseSession()
	if err != nil {
		return nil, err
	}
	if err := typer.Check(session); err != nil {
		return nil, err
	}
	hub.session = session
	return session, nil
}

func (hub *Hub) parseSession() (*ast.Node, error) {
	usings, decls := []string{}, []string{}
	for _, line := range hub.scratch {
		if strings.HasPrefix(strings.TrimSpace(line), "use ") {
			usings = append(usings, line)
		} else {
			decls = append(decls, line)
		}
	}
	session, err := modules.FromSource(REPL_SOURCE, strings.Join(append(usings, decls...), "\n"))
	if err != nil {
		return nil, err
	}
	m := session.Value.(*ast.Module)
	for _, name := range hub.order {
		if _, ok := m.Declarations[name]; ok {
			return nil, report.CreateErr("repl/shadow", &session.Token, name)
		}
		m.Declarations[name] = hub.trees[name]
	}
	return session, nil
}

// Finds the node a chain names in the session, descending through modules and through
// the fields of contexts.
func (hub *Hub) find(chain []string) (*ast.Node, bool) {
	if len(chain) == 1 {
		chain = strings.Split(chain[0], ".")
	}
	node := hub.session
	for _, name := range chain {
		var next *ast.Node
		switch value := node.Value.(type) {
		case *ast.Module:
			next = value.Declarations[name]
		case *ast.Context:
			next = value.Fields[name]
		}
		if next == nil {
			hub.WriteError("the session has nothing called '" + strings.Join(chain, ".") + "'.")
			return nil, false
		}
		node = next
	}
	return node, true
}

func (hub *Hub) openStore(driver, dsn string) {
	store, err := database.Open(driver, dsn)
	if err != nil {
		hub.WriteError(err.Error())
		return
	}
	if hub.store != nil {
		hub.store.Close()
	}
	hub.store = store
	hub.WriteString(text.OK + "\n")
}

var declaredName = regexp.MustCompile(`^\s*([a-z][A-Za-z0-9]*)\s*:`)

func describe(in, out types.Type) string {
	return in.String() + " -> " + out.String()
}

func (hub *Hub) report(err error) {
	var e *report.Error
	if errors.As(err, &e) {
		hub.reportAll(report.Errors{e})
		return
	}
	hub.WriteError(err.Error())
}

func (hub *Hub) reportAll(ers report.Errors) {
	hub.failed, hub.broken = true, true
	hub.ers = ers
	hub.WritePretty(report.GetList(ers))
	hub.WritePretty("Use 'hub why <number>' for more about an error.")
}

func (hub *Hub) quit() {
	hub.Close()
	hub.WriteString(text.Logo())
	hub.WriteString("Thank you for using welang. Have a nice day!\n\n")
}

func (hub *Hub) WritePretty(s string) {
	hub.WriteString(text.Pretty(s, 0, MARGIN))
}

func (hub *Hub) WriteError(s string) {
	hub.failed, hub.broken = true, true
	hub.WritePretty("\n$Hub error$" + s)
	hub.WriteString("\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}
