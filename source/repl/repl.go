package repl

import (
	"strings"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/welang/source/hub"
	"github.com/tim-hardcastle/welang/source/text"
)

func Start(hub *hub.Hub) {
	rline := readline.NewInstance()
	for {
		rline.SetPrompt(makePrompt(hub))
		line, err := rline.Readline()
		if err != nil { // Ctrl-C or the end of the input.
			hub.DoHubCommand("quit", []string{})
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if hub.Do(line) {
			break
		}
	}
}

func makePrompt(hub *hub.Hub) string {
	if hub.Broken() {
		return text.Red(text.PROMPT)
	}
	return text.PROMPT
}
