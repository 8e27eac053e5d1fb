package hub

// The help topics. The "help" topic is what 'hub help' says with no topic.
var helpStrings = map[string]string{
	"help": "Anything you type into the REPL that looks like a declaration, e.g. 'a: [1, 2]', " +
		"is added to the session and typed along with everything declared before it. A line " +
		"beginning 'use' adds a using to the session. Anything else is typed as a value in the " +
		"session and then forgotten.\n\n" +
		"Commands to the hub begin with 'hub'. The commands are:\n\n" +
		"  'hub check <paths>'        types the module trees at the paths and adds them to the session\n" +
		"  'hub clear'                forgets the declarations typed into the REPL\n" +
		"  'hub drivers'              lists the SQL drivers the signature store can use\n" +
		"  'hub dump <name>'          shows the typed tree of a declaration\n" +
		"  'hub errors'               lists the most recent errors\n" +
		"  'hub files <path>'         lists the source files under a directory\n" +
		"  'hub help <topic>'         explains a topic: 'types', 'store', or 'modules'\n" +
		"  'hub quit'                 leaves\n" +
		"  'hub save'                 saves the signatures of the session to the store\n" +
		"  'hub signatures <module>'  shows the stored signatures of a module\n" +
		"  'hub store <driver> <dsn>' opens a signature store\n" +
		"  'hub type <name>'          shows the in and out types of a declaration\n" +
		"  'hub why <number>'         explains an error",

	"modules": "A source file is a module whose declarations are the file's. A directory is a " +
		"module whose declarations are the modules made from its files and subdirectories, named " +
		"after them with the extension taken off. A module may begin with 'use' lines naming other " +
		"modules by their paths from the root: the declarations of a used module can then be " +
		"referred to as if they were the module's own.",

	"store": "The signature store keeps the in and out types of every typed declaration in a SQL " +
		"database, with a digest of the source it came from. Open one with e.g. " +
		"'hub store sqlite sigs.db', or name one in the 'store' section of 'welang.yaml'. " +
		"'hub drivers' lists the drivers that can be used.",

	"types": "Every value has an in type, what it needs, and an out type, what it produces. " +
		"Literals need nothing and produce an Atom or an Array of Atoms. Arrays and contexts " +
		"produce arrays and contexts of what their elements produce. A word '(a b ; c)' runs its " +
		"clauses in order and the steps of each clause from right to left, and each step must " +
		"accept what the one before it produced.",
}
