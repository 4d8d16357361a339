package repl

import (
	"strings"

	"github.com/yndnr/rudis-go/internal/core/command"
)

// Completer suggests command verbs.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over every server verb plus the REPL's
// own exit and quit.
func NewCompleter() *Completer {
	kinds := command.All()
	cmds := make([]string, 0, len(kinds)+2)
	for _, k := range kinds {
		cmds = append(cmds, strings.ToUpper(k.String()))
	}
	cmds = append(cmds, "exit", "quit")
	return &Completer{commands: cmds}
}

// Complete returns the verbs that start with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	upper := strings.ToUpper(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), upper) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
