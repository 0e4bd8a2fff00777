// Package shell wires the virtual filesystem and the command-line parser
// into an interactive session: a registry of named commands plus the
// session state they run against.
package shell

import "sort"

// Result is the narrow contract returned to the UI layer for every
// evaluated line. Err carries a human-readable reason when OK is false.
type Result struct {
	OK  bool
	Out string
	Err string
}

func ok(out string) Result {
	return Result{OK: true, Out: out}
}

func fail(msg string) Result {
	return Result{Err: msg}
}

// Command is one named shell command. Run receives the session plus the
// already-partitioned switches and positional parameters.
type Command interface {
	// Name returns the name the command is invoked by, such as "cd"
	Name() string
	// Description is the one-line help text
	Description() string
	// Run executes the command against the session
	Run(s *Session, switches, params []string) Result
}

var commandRegistry = make(map[string]Command)

func registerCommand(cmd Command) {
	commandRegistry[cmd.Name()] = cmd
}

// Lookup returns the registered command for name.
func Lookup(name string) (Command, bool) {
	cmd, found := commandRegistry[name]
	return cmd, found
}

// ListCommands returns all registered command names, sorted.
func ListCommands() []string {
	names := make([]string, 0, len(commandRegistry))
	for name := range commandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
