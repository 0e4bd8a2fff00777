package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshell-go/webshell/config"
	"github.com/webshell-go/webshell/internal/util"
	"github.com/webshell-go/webshell/vfs"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	fs := vfs.New()
	require.NoError(t, vfs.Seed(fs))
	return NewSession(fs, config.NewDefaultConfig())
}

// eval runs a line and requires it to have succeeded.
func eval(t *testing.T, s *Session, line string) Result {
	t.Helper()
	res := s.Eval(line)
	require.True(t, res.OK, "%q failed: %s", line, res.Err)
	return res
}

func TestSession_Eval_EmptyLine(t *testing.T) {
	s := newTestSession(t)

	res := s.Eval("   ")
	assert.True(t, res.OK)
	assert.Empty(t, res.Out)
	assert.Empty(t, s.History(), "whitespace-only lines are not recorded")
}

func TestSession_Eval_UnknownCommand(t *testing.T) {
	s := newTestSession(t)

	res := s.Eval("frobnicate now")
	assert.False(t, res.OK)
	assert.Equal(t, "frobnicate: command not found", res.Err)
}

func TestSession_Eval_SyntaxError(t *testing.T) {
	s := newTestSession(t)

	res := s.Eval(`echo "oops`)
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "unclosed quote")
}

func TestSession_Prompt(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "user@webshell:~$ ", s.Prompt())

	eval(t, s, "cd /etc")
	assert.Equal(t, "user@webshell:/etc$ ", s.Prompt())
}

func TestCd_And_Pwd(t *testing.T) {
	s := newTestSession(t)

	eval(t, s, "cd Documents")
	assert.Equal(t, "/home/user/Documents", eval(t, s, "pwd").Out)

	eval(t, s, "cd ..")
	assert.Equal(t, "/home/user", eval(t, s, "pwd").Out)

	eval(t, s, "cd /")
	assert.Equal(t, "/", eval(t, s, "pwd").Out)

	// bare cd returns home
	eval(t, s, "cd")
	assert.Equal(t, "/home/user", eval(t, s, "pwd").Out)
}

func TestCd_Tilde(t *testing.T) {
	s := newTestSession(t)
	eval(t, s, "cd /etc")

	eval(t, s, "cd ~/Pictures")
	assert.Equal(t, "/home/user/Pictures", eval(t, s, "pwd").Out)
}

func TestCd_NotFound(t *testing.T) {
	s := newTestSession(t)

	res := s.Eval("cd /no/such/place")
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "path does not exist")
	assert.Equal(t, "/home/user", s.FS().Cwd().Path(), "failed cd leaves cwd alone")
}

func TestLs_HiddenFiltering(t *testing.T) {
	s := newTestSession(t)

	res := eval(t, s, "ls")
	assert.Equal(t, "Documents/\nDownloads/\nPictures/\nreadme.txt", res.Out)

	res = eval(t, s, "ls -a")
	assert.Equal(t, ".config/\n.secrets.txt\nDocuments/\nDownloads/\nPictures/\nreadme.txt", res.Out)
}

func TestLs_Path(t *testing.T) {
	s := newTestSession(t)

	res := eval(t, s, "ls /home/user/Documents")
	assert.Equal(t, "notes.txt\nreport.pdf\ntodo.md", res.Out)

	// ls on a file prints the file itself
	res = eval(t, s, "ls readme.txt")
	assert.Equal(t, "readme.txt", res.Out)

	bad := s.Eval("ls /nope")
	assert.False(t, bad.OK)
	assert.Contains(t, bad.Err, "path does not exist")
}

func TestMkdir(t *testing.T) {
	s := newTestSession(t)

	eval(t, s, "mkdir Projects")
	eval(t, s, "cd Projects")
	assert.Equal(t, "/home/user/Projects", eval(t, s, "pwd").Out)

	dup := s.Eval("mkdir /home/user/Projects")
	assert.False(t, dup.OK)
	assert.Contains(t, dup.Err, "already exists")
}

func TestMkdir_MissingParent(t *testing.T) {
	s := newTestSession(t)

	res := s.Eval("mkdir deep/nested/dir")
	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "path does not exist")

	eval(t, s, "mkdir -p deep/nested/dir")
	eval(t, s, "cd deep/nested/dir")
	assert.Equal(t, "/home/user/deep/nested/dir", eval(t, s, "pwd").Out)
}

func TestMkdir_QuotedName(t *testing.T) {
	s := newTestSession(t)

	eval(t, s, "mkdir 'My Documents'")
	res := eval(t, s, "ls")
	assert.Contains(t, res.Out, "My Documents/")
}

func TestTouch_And_Cat(t *testing.T) {
	s := newTestSession(t)

	eval(t, s, "touch diary.txt")
	res := eval(t, s, "ls")
	assert.Contains(t, res.Out, "diary.txt")

	res = eval(t, s, "cat readme.txt")
	assert.Contains(t, res.Out, "Welcome to webshell")

	bad := s.Eval("cat Documents")
	assert.False(t, bad.OK)
	assert.Contains(t, bad.Err, "is a directory")

	bad = s.Eval("touch program.exe")
	assert.False(t, bad.OK)
	assert.Contains(t, bad.Err, "unknown file type")
}

func TestRm(t *testing.T) {
	s := newTestSession(t)

	eval(t, s, "rm readme.txt")
	res := eval(t, s, "ls")
	assert.NotContains(t, res.Out, "readme.txt")

	noFlag := s.Eval("rm Documents")
	assert.False(t, noFlag.OK)
	assert.Contains(t, noFlag.Err, "is a directory")

	eval(t, s, "rm -r Documents")
	res = eval(t, s, "ls")
	assert.NotContains(t, res.Out, "Documents")

	root := s.Eval("rm -r /")
	assert.False(t, root.OK)
	assert.Contains(t, root.Err, "root")
}

func TestEcho(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, "Hello World", eval(t, s, `echo "Hello World"`).Out)
	assert.Equal(t, "a b", eval(t, s, "echo a b").Out)
}

func TestTree(t *testing.T) {
	s := newTestSession(t)

	res := eval(t, s, "tree")
	assert.True(t, strings.HasPrefix(res.Out, "/"))
	assert.Contains(t, res.Out, "Documents/")
	assert.Contains(t, res.Out, "notes.txt")
}

func TestStat(t *testing.T) {
	s := newTestSession(t)

	res := eval(t, s, "stat readme.txt")
	assert.Contains(t, res.Out, "path:     /home/user/readme.txt")
	assert.Contains(t, res.Out, "kind:     file")
	assert.Contains(t, res.Out, "uuid:")
}

func TestHistory_RecordsAndCaps(t *testing.T) {
	fs := vfs.New()
	require.NoError(t, vfs.Seed(fs))
	cfg := config.NewDefaultConfig()
	cfg.HistorySize = 3
	s := NewSession(fs, cfg)

	for _, line := range []string{"pwd", "ls", "cd /etc", "pwd"} {
		s.Eval(line)
	}

	assert.Equal(t, []string{"ls", "cd /etc", "pwd"}, s.History(), "history keeps the newest entries")

	res := s.Eval("history")
	require.True(t, res.OK)
	assert.Contains(t, res.Out, "history")
}

func TestHistory_RecordsFailures(t *testing.T) {
	s := newTestSession(t)
	s.Eval("frobnicate")

	assert.Equal(t, []string{"frobnicate"}, s.History())
}

func TestHelp_ListsCommands(t *testing.T) {
	s := newTestSession(t)

	res := eval(t, s, "help")
	for _, name := range []string{"cd", "ls", "mkdir", "rm", "exit"} {
		assert.Contains(t, res.Out, name)
	}
}

func TestExit(t *testing.T) {
	s := newTestSession(t)
	require.False(t, s.Done())

	eval(t, s, "exit")
	assert.True(t, s.Done())
}

func TestMain(m *testing.M) {
	util.InitializeLogger(util.ErrorLevel, nil)
	m.Run()
}
