package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/webshell-go/webshell"
	"github.com/webshell-go/webshell/vfs"
)

func init() {
	registerCommand(cdCommand{})
	registerCommand(pwdCommand{})
	registerCommand(lsCommand{})
	registerCommand(mkdirCommand{})
	registerCommand(touchCommand{})
	registerCommand(rmCommand{})
	registerCommand(catCommand{})
	registerCommand(echoCommand{})
	registerCommand(treeCommand{})
	registerCommand(statCommand{})
	registerCommand(historyCommand{})
	registerCommand(helpCommand{})
	registerCommand(clearCommand{})
	registerCommand(exitCommand{})
}

// hasSwitch reports whether any switch token contains the flag character,
// so combined forms like "-la" count for both 'l' and 'a'.
func hasSwitch(switches []string, flag rune) bool {
	for _, sw := range switches {
		if strings.ContainsRune(sw, flag) {
			return true
		}
	}
	return false
}

// expandHome rewrites a leading "~" to the session's home path.
func expandHome(s *Session, path string) string {
	home := s.fs.Home()
	if home == nil || !strings.HasPrefix(path, "~") {
		return path
	}
	return home.Path() + strings.TrimPrefix(path, "~")
}

type cdCommand struct{}

func (cdCommand) Name() string        { return "cd" }
func (cdCommand) Description() string { return "change the working directory" }

func (cdCommand) Run(s *Session, switches, params []string) Result {
	if len(params) > 1 {
		return fail("cd: too many arguments")
	}
	path := ""
	if len(params) == 1 {
		path = expandHome(s, params[0])
	}
	if err := s.fs.NavigateTo(path); err != nil {
		return fail("cd: " + err.Error())
	}
	return ok("")
}

type pwdCommand struct{}

func (pwdCommand) Name() string        { return "pwd" }
func (pwdCommand) Description() string { return "print the working directory path" }

func (pwdCommand) Run(s *Session, switches, params []string) Result {
	return ok(s.fs.Cwd().Path())
}

type lsCommand struct{}

func (lsCommand) Name() string        { return "ls" }
func (lsCommand) Description() string { return "list directory contents (-a includes hidden)" }

func (lsCommand) Run(s *Session, switches, params []string) Result {
	target := s.fs.Cwd()
	if len(params) > 0 {
		node, err := s.fs.Resolve(expandHome(s, params[0]))
		if err != nil {
			return fail("ls: " + err.Error())
		}
		target = node
	}
	if !target.IsDir() {
		return ok(target.FullName())
	}

	showHidden := hasSwitch(switches, 'a')
	var lines []string
	for _, child := range target.Children() {
		if child.IsHidden() && !showHidden {
			continue
		}
		name := child.FullName()
		if child.IsDir() {
			name += "/"
		}
		lines = append(lines, name)
	}
	return ok(strings.Join(lines, "\n"))
}

type mkdirCommand struct{}

func (mkdirCommand) Name() string        { return "mkdir" }
func (mkdirCommand) Description() string { return "create directories (-p makes missing parents)" }

func (mkdirCommand) Run(s *Session, switches, params []string) Result {
	if len(params) == 0 {
		return fail("mkdir: missing operand")
	}
	makeParents := hasSwitch(switches, 'p')
	for _, raw := range params {
		path := expandHome(s, raw)
		if _, err := s.fs.Resolve(path); err == nil {
			return fail(fmt.Sprintf("mkdir: %s: %s", raw, vfs.ErrDuplicateChild))
		}
		if !makeParents {
			dir, _ := splitTarget(path)
			if _, err := s.fs.ResolveDir(dir); err != nil {
				return fail("mkdir: " + err.Error())
			}
		}
		req := &webshell.DirCreateRequest{NodeRequest: webshell.NodeRequest{
			Path: path,
			Type: webshell.DirNodeType,
		}}
		if _, err := s.fs.AddDirNode(req); err != nil {
			return fail("mkdir: " + err.Error())
		}
	}
	return ok("")
}

type touchCommand struct{}

func (touchCommand) Name() string        { return "touch" }
func (touchCommand) Description() string { return "create empty files or update timestamps" }

func (touchCommand) Run(s *Session, switches, params []string) Result {
	if len(params) == 0 {
		return fail("touch: missing operand")
	}
	for _, raw := range params {
		path := expandHome(s, raw)
		if node, err := s.fs.Resolve(path); err == nil {
			node.Touch(time.Now())
			continue
		}
		req := &webshell.FileCreateRequest{NodeRequest: webshell.NodeRequest{
			Path: path,
			Type: webshell.FileNodeType,
		}}
		if _, err := s.fs.AddFileNode(req); err != nil {
			return fail("touch: " + err.Error())
		}
	}
	return ok("")
}

type rmCommand struct{}

func (rmCommand) Name() string        { return "rm" }
func (rmCommand) Description() string { return "remove files (-r removes directories recursively)" }

func (rmCommand) Run(s *Session, switches, params []string) Result {
	if len(params) == 0 {
		return fail("rm: missing operand")
	}
	recursive := hasSwitch(switches, 'r')
	for _, raw := range params {
		node, err := s.fs.Resolve(expandHome(s, raw))
		if err != nil {
			return fail("rm: " + err.Error())
		}
		if node.IsDir() && !recursive {
			return fail(fmt.Sprintf("rm: %s: is a directory (use -r)", raw))
		}
		if err := s.fs.DeleteNode(node, recursive); err != nil {
			return fail("rm: " + err.Error())
		}
	}
	return ok("")
}

type catCommand struct{}

func (catCommand) Name() string        { return "cat" }
func (catCommand) Description() string { return "print file contents" }

func (catCommand) Run(s *Session, switches, params []string) Result {
	if len(params) == 0 {
		return fail("cat: missing operand")
	}
	var out strings.Builder
	for _, raw := range params {
		node, err := s.fs.Resolve(expandHome(s, raw))
		if err != nil {
			return fail("cat: " + err.Error())
		}
		if node.IsDir() {
			return fail(fmt.Sprintf("cat: %s: is a directory", raw))
		}
		out.WriteString(node.Content())
	}
	return ok(strings.TrimSuffix(out.String(), "\n"))
}

type echoCommand struct{}

func (echoCommand) Name() string        { return "echo" }
func (echoCommand) Description() string { return "print arguments" }

func (echoCommand) Run(s *Session, switches, params []string) Result {
	return ok(strings.Join(params, " "))
}

type treeCommand struct{}

func (treeCommand) Name() string        { return "tree" }
func (treeCommand) Description() string { return "render the whole filesystem tree" }

func (treeCommand) Run(s *Session, switches, params []string) Result {
	return ok(strings.TrimSuffix(s.fs.StringifyTree(), "\n"))
}

type statCommand struct{}

func (statCommand) Name() string        { return "stat" }
func (statCommand) Description() string { return "show node metadata" }

func (statCommand) Run(s *Session, switches, params []string) Result {
	if len(params) == 0 {
		return fail("stat: missing operand")
	}
	node, err := s.fs.Resolve(expandHome(s, params[0]))
	if err != nil {
		return fail("stat: " + err.Error())
	}
	kind := "directory"
	if !node.IsDir() {
		kind = "file"
	}
	meta := node.Meta()
	lines := []string{
		"path:     " + node.Path(),
		"kind:     " + kind,
		fmt.Sprintf("size:     %d", node.Size()),
		"uuid:     " + meta.UUID,
		"created:  " + meta.Created.Format(time.RFC3339),
		"modified: " + meta.Modified.Format(time.RFC3339),
	}
	return ok(strings.Join(lines, "\n"))
}

type historyCommand struct{}

func (historyCommand) Name() string        { return "history" }
func (historyCommand) Description() string { return "show the command history" }

func (historyCommand) Run(s *Session, switches, params []string) Result {
	var lines []string
	for i, entry := range s.History() {
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, entry))
	}
	return ok(strings.Join(lines, "\n"))
}

type helpCommand struct{}

func (helpCommand) Name() string        { return "help" }
func (helpCommand) Description() string { return "list available commands" }

func (helpCommand) Run(s *Session, switches, params []string) Result {
	var lines []string
	for _, name := range ListCommands() {
		cmd, _ := Lookup(name)
		lines = append(lines, fmt.Sprintf("%-8s %s", name, cmd.Description()))
	}
	return ok(strings.Join(lines, "\n"))
}

type clearCommand struct{}

func (clearCommand) Name() string        { return "clear" }
func (clearCommand) Description() string { return "clear the screen" }

func (clearCommand) Run(s *Session, switches, params []string) Result {
	return ok("\x1b[2J\x1b[H")
}

type exitCommand struct{}

func (exitCommand) Name() string        { return "exit" }
func (exitCommand) Description() string { return "end the session" }

func (exitCommand) Run(s *Session, switches, params []string) Result {
	s.done = true
	return ok("")
}

// splitTarget separates a path into its parent directory and leaf name.
// A bare leaf resolves against the current directory.
func splitTarget(path string) (dir, leaf string) {
	idx := strings.LastIndex(path, "/")
	switch {
	case idx == -1:
		return ".", path
	case idx == 0:
		return "/", path[1:]
	default:
		return path[:idx], path[idx+1:]
	}
}
