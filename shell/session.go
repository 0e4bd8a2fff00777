package shell

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/webshell-go/webshell/cmdline"
	"github.com/webshell-go/webshell/config"
	"github.com/webshell-go/webshell/internal/util"
	"github.com/webshell-go/webshell/vfs"
)

// Session binds one filesystem instance to one logical user for the
// lifetime of the process. All evaluation is synchronous: a line is
// tokenized, dispatched and applied to completion before the next one.
type Session struct {
	id      string
	fs      *vfs.FileSystem
	cfg     *config.Config
	history []string
	done    bool
}

func NewSession(fs *vfs.FileSystem, cfg *config.Config) *Session {
	s := &Session{
		id:  uuid.NewString(),
		fs:  fs,
		cfg: cfg,
	}
	logger := util.GetLogger("Session")
	logger.Debug().Str("session", s.id).Msg("Session started")
	return s
}

func (s *Session) FS() *vfs.FileSystem { return s.fs }

// Done reports whether an exit command has ended the session.
func (s *Session) Done() bool { return s.done }

// Prompt renders the shell prompt with the cwd abbreviated against home.
func (s *Session) Prompt() string {
	cwd := s.fs.AbbreviateHomeDir(s.fs.Cwd().Path())
	return fmt.Sprintf("%s:%s$ ", s.cfg.Prompt, cwd)
}

// History returns a copy of the recorded command lines, oldest first.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) recordHistory(line string) {
	s.history = append(s.history, line)
	if max := s.cfg.HistorySize; max > 0 && len(s.history) > max {
		s.history = s.history[len(s.history)-max:]
	}
}

// Eval runs one raw command line through the full pipeline: tokenize,
// look up the command, split switches from parameters, execute. Empty and
// whitespace-only lines succeed without doing anything.
func (s *Session) Eval(line string) Result {
	logger := util.GetLogger("Session")

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		s.recordHistory(trimmed)
	}

	tokens, err := cmdline.Tokenize(line)
	if err != nil {
		logger.Debug().Err(err).Str("session", s.id).Str("line", line).Msg("Tokenization failed")
		return fail("syntax error: " + err.Error())
	}
	if len(tokens) == 0 {
		return Result{OK: true}
	}

	cmd, found := Lookup(tokens[0])
	if !found {
		return fail(tokens[0] + ": command not found")
	}
	switches, params := cmdline.Split(tokens[1:])
	logger.Trace().Str("session", s.id).Str("command", cmd.Name()).
		Strs("switches", switches).Strs("params", params).Msg("Dispatching command")
	return cmd.Run(s, switches, params)
}
