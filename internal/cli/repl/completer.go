package repl

import (
	"sort"
	"strings"
)

// CommandHelp is the usage line of each command the shell knows.
var CommandHelp = map[string]string{
	"get":     "get key",
	"set":     "set key value",
	"hget":    "hget key field",
	"hset":    "hset key field value",
	"hgetall": "hgetall key",
	"connect": "connect host:port",
	"help":    "help [prefix]",
	"history": "history",
	"exit":    "exit",
	"quit":    "quit",
}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over CommandHelp.
func NewCompleter() *Completer {
	commands := make([]string, 0, len(CommandHelp))
	for name := range CommandHelp {
		commands = append(commands, name)
	}
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Complete returns the commands starting with prefix, sorted. Matching is
// case-insensitive.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
