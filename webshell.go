// Package webshell defines the public types shared between the virtual
// filesystem core and its entrypoints (cli, seed loaders, UI bridges).
package webshell

import "time"

// NodeType discriminates node creation requests.
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// FileType is the kind of a typed file node. The extension set is fixed;
// names outside it cannot be created as files.
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeText
	FileTypeMarkdown
	FileTypeLog
	FileTypeShell
	FileTypePNG
	FileTypeJPG
	FileTypePDF
	FileTypeMP3
	FileTypeZip
)

var fileTypeExts = map[FileType]string{
	FileTypeText:     "txt",
	FileTypeMarkdown: "md",
	FileTypeLog:      "log",
	FileTypeShell:    "sh",
	FileTypePNG:      "png",
	FileTypeJPG:      "jpg",
	FileTypePDF:      "pdf",
	FileTypeMP3:      "mp3",
	FileTypeZip:      "zip",
}

var extFileTypes = func() map[string]FileType {
	m := make(map[string]FileType, len(fileTypeExts))
	for t, ext := range fileTypeExts {
		m[ext] = t
	}
	return m
}()

// Ext returns the file extension for the type, without the leading dot.
// Empty for FileTypeUnknown.
func (t FileType) Ext() string {
	return fileTypeExts[t]
}

// FileTypeFromExt resolves an extension (no leading dot) to its FileType.
// The second return is false if the extension is not in the fixed set.
func FileTypeFromExt(ext string) (FileType, bool) {
	t, ok := extFileTypes[ext]
	return t, ok
}

// NodeRequest represents user input for node creation. It is passed from
// entrypoints (cli, seed files, UI bridges) to the filesystem Add methods.
type NodeRequest struct {
	Path  string
	Type  NodeType
	UUID  string     // Node identity; assigned at unmarshal time if absent
	Ctime *time.Time // Created at (default current time)
	Mtime *time.Time // Last modified at (default current time)
}

type FileCreateRequest struct {
	NodeRequest
	Content string
}

type DirCreateRequest struct {
	NodeRequest
}
