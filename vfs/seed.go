package vfs

import (
	"time"

	"github.com/webshell-go/webshell"
)

// seedTime is fixed so two seeded filesystems render identical trees.
var seedTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

var seedDirs = []string{
	"/home/user/Documents",
	"/home/user/Pictures",
	"/home/user/Downloads",
	"/home/user/.config",
	"/etc",
	"/tmp",
}

var seedFiles = []struct {
	path    string
	content string
}{
	{"/home/user/readme.txt", "Welcome to webshell. Type `help` to list commands.\n"},
	{"/home/user/.secrets.txt", "hunter2\n"},
	{"/home/user/.config/session.log", "theme=dark\nfont=monospace\n"},
	{"/home/user/Documents/notes.txt", "- water the plants\n- return library books\n"},
	{"/home/user/Documents/todo.md", "# TODO\n\n- [ ] everything\n"},
	{"/home/user/Documents/report.pdf", ""},
	{"/home/user/Pictures/vacation.jpg", ""},
	{"/home/user/Pictures/logo.png", ""},
	{"/home/user/Downloads/song.mp3", ""},
	{"/home/user/Downloads/archive.zip", ""},
	{"/etc/motd.txt", "welcome to your session\n"},
}

// Seed builds the deterministic session fixture: a /home/user tree with a
// few documents, media files and dotfiles, plus /etc and /tmp. Home and cwd
// end up at /home/user.
func Seed(fs *FileSystem) error {
	ts := seedTime
	for _, p := range seedDirs {
		req := &webshell.DirCreateRequest{NodeRequest: webshell.NodeRequest{
			Path:  p,
			Type:  webshell.DirNodeType,
			Ctime: &ts,
			Mtime: &ts,
		}}
		if _, err := fs.AddDirNode(req); err != nil {
			return err
		}
	}
	for _, f := range seedFiles {
		req := &webshell.FileCreateRequest{
			NodeRequest: webshell.NodeRequest{
				Path:  f.path,
				Type:  webshell.FileNodeType,
				Ctime: &ts,
				Mtime: &ts,
			},
			Content: f.content,
		}
		if _, err := fs.AddFileNode(req); err != nil {
			return err
		}
	}
	if err := fs.SetHome("/home/user"); err != nil {
		return err
	}
	return fs.NavigateTo("")
}
