//
// welang version 0.1.0
//
// The front end of welang: it assembles module trees from source files, and types them.
//

package main

import (
	"fmt"
	"os"

	"github.com/tim-hardcastle/welang/source/hub"
	"github.com/tim-hardcastle/welang/source/repl"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/text"
)

func main() {
	hb := hub.New(os.Stdin, os.Stdout)
	hb.Open(settings.CONFIG_FILE)
	if len(os.Args) > 1 {
		if os.Args[1] != "check" || len(os.Args) == 2 {
			fmt.Print(text.HELP)
			os.Exit(2)
		}
		hb.DoHubCommand("check", os.Args[2:])
		hb.Close()
		if hb.Failed() {
			os.Exit(1)
		}
		return
	}
	fmt.Print(text.Logo())
	repl.Start(hb)
}
