package vfs

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/webshell-go/webshell"
	"github.com/webshell-go/webshell/internal/util"
)

// MaxNameLen is the maximum number of characters allowed in a node name.
const MaxNameLen = 255

// FileSystem owns the node tree for one session and tracks the home and
// current working directory references. Home and cwd always point at live
// nodes reachable from the root; cwd is never nil.
type FileSystem struct {
	root      *Node
	home      *Node
	cwd       *Node
	nodeIndex *xsync.Map[string, *Node] // UUID -> node for every live node
}

// New creates an empty filesystem containing only the root directory.
// cwd starts at the root; home is unset until SetHome.
func New() *FileSystem {
	now := time.Now()
	root := NewDir("", Metadata{UUID: uuid.NewString(), Created: now, Modified: now})
	root.isRoot = true

	fs := &FileSystem{
		root:      root,
		cwd:       root,
		nodeIndex: xsync.NewMap[string, *Node](),
	}
	fs.nodeIndex.Store(root.meta.UUID, root)
	return fs
}

func (fs *FileSystem) Root() *Node { return fs.root }

// Home returns the designated home directory; nil until SetHome.
func (fs *FileSystem) Home() *Node { return fs.home }

// Cwd returns the current working directory node. Never nil.
func (fs *FileSystem) Cwd() *Node { return fs.cwd }

// SetHome designates the directory at path as the session home.
func (fs *FileSystem) SetHome(path string) error {
	node, err := fs.ResolveDir(path)
	if err != nil {
		return err
	}
	fs.home = node
	return nil
}

// ValidateName checks a proposed node name against the naming rules and
// reports every violated rule, not just the first.
func (fs *FileSystem) ValidateName(name string) error {
	var violations []NameViolation
	if name == "" {
		violations = append(violations, NameEmpty)
	}
	if strings.ContainsRune(name, '/') {
		violations = append(violations, NameHasSlash)
	}
	if strings.ContainsRune(name, '\x00') {
		violations = append(violations, NameHasNUL)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		violations = append(violations, NameTooLong)
	}
	if len(violations) > 0 {
		return &NameError{Name: name, Violations: violations}
	}
	return nil
}

// TokenizePath splits a path on "/", dropping empty segments and validating
// every surviving segment. An invalid segment fails the whole path.
func (fs *FileSystem) TokenizePath(path string) ([]string, error) {
	segs := make([]string, 0)
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if err := fs.ValidateName(seg); err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// startingCursor returns the node a path resolution begins at: root for
// absolute paths, cwd otherwise.
func (fs *FileSystem) startingCursor(path string) *Node {
	if strings.HasPrefix(path, "/") {
		return fs.root
	}
	return fs.cwd
}

func (fs *FileSystem) walk(path string, leafAny bool) (*Node, error) {
	if path == "/" {
		return fs.root, nil
	}
	if path == "" {
		if fs.home != nil {
			return fs.home, nil
		}
		return fs.root, nil
	}

	segs, err := fs.TokenizePath(path)
	if err != nil {
		return nil, err
	}
	cursor := fs.startingCursor(path)
	for i, seg := range segs {
		switch seg {
		case ".":
			continue
		case "..":
			if cursor.parent != nil {
				cursor = cursor.parent
			}
			continue
		}
		var (
			child *Node
			ok    bool
		)
		if leafAny && i == len(segs)-1 {
			child, ok = cursor.GetChild(seg)
		} else {
			child, ok = cursor.GetChild(seg, KindDir)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrPathNotFound)
		}
		cursor = child
	}
	return cursor, nil
}

// ResolveDir walks path to a directory without touching cwd. "" resolves to
// home (root when home is unset) and "/" to the root; every named segment
// must be an existing directory child.
func (fs *FileSystem) ResolveDir(path string) (*Node, error) {
	return fs.walk(path, false)
}

// Resolve walks path like ResolveDir but allows the final segment to land
// on a file node.
func (fs *FileSystem) Resolve(path string) (*Node, error) {
	return fs.walk(path, true)
}

// NavigateTo resolves path and commits the result as the new cwd.
// On any failure cwd is left untouched.
func (fs *FileSystem) NavigateTo(path string) error {
	logger := util.GetLogger("NavigateTo")

	node, err := fs.ResolveDir(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("Navigation failed")
		return err
	}
	fs.cwd = node
	logger.Debug().Str("path", path).Str("cwd", node.Path()).Msg("Changed working directory")
	return nil
}

// AbbreviateHomeDir replaces a leading home-directory prefix in path with
// "~". Pure string transform; paths outside home come back unchanged.
func (fs *FileSystem) AbbreviateHomeDir(path string) string {
	if fs.home == nil {
		return path
	}
	homePath := fs.home.Path()
	if path == homePath {
		return "~"
	}
	if strings.HasPrefix(path, homePath+"/") {
		return "~" + strings.TrimPrefix(path, homePath)
	}
	return path
}

// AddDirNode recursively adds all missing directories in the request's path
// and returns the leaf. It is equivalent to calling `mkdir -p` from a
// shell: existing directories are reused and an existing leaf is not an
// error. A file occupying a path segment fails the whole request.
func (fs *FileSystem) AddDirNode(req *webshell.DirCreateRequest) (*Node, error) {
	logger := util.GetLogger("AddDirNode")

	segs, err := fs.TokenizePath(req.Path)
	if err != nil {
		return nil, err
	}
	cursor := fs.startingCursor(req.Path)
	newCnt := 0
	for i, seg := range segs {
		switch seg {
		case ".":
			continue
		case "..":
			if cursor.parent != nil {
				cursor = cursor.parent
			}
			continue
		}
		if child, ok := cursor.GetChild(seg); ok {
			if !child.IsDir() {
				return nil, fmt.Errorf("%s: %w", child.Path(), ErrNotADirectory)
			}
			cursor = child
			continue
		}
		meta := fs.metaFor(req.NodeRequest, i == len(segs)-1)
		node := NewDir(seg, meta)
		if err := cursor.AddChild(node); err != nil {
			return nil, err
		}
		fs.register(node)
		newCnt++
		cursor = node
	}
	if newCnt > 0 {
		logger.Debug().Str("path", req.Path).Int("created", newCnt).Msg("Created new directories")
	}
	return cursor, nil
}

// AddFileNode adds a new file node to the filesystem, creating any missing
// ancestor directories along the way, and returns the new leaf. Unlike
// AddDirNode an existing node at the leaf path is an error.
func (fs *FileSystem) AddFileNode(req *webshell.FileCreateRequest) (*Node, error) {
	logger := util.GetLogger("AddFileNode")

	segs, err := fs.TokenizePath(req.Path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, &NameError{Name: "", Violations: []NameViolation{NameEmpty}}
	}

	parent := fs.startingCursor(req.Path)
	if len(segs) > 1 {
		dirReq := webshell.DirCreateRequest{NodeRequest: req.NodeRequest}
		dirReq.Path = req.Path[:strings.LastIndex(req.Path, segs[len(segs)-1])]
		dirReq.UUID = "" // identity belongs to the leaf only
		dNode, err := fs.AddDirNode(&dirReq)
		if err != nil {
			logger.Error().Err(err).Str("path", dirReq.Path).Msg("Failed to create file's ancestor directory(s)")
			return nil, err
		}
		parent = dNode
	}

	fullName := segs[len(segs)-1]
	if parent.HasChild(fullName) {
		return nil, fmt.Errorf("%s: %w", req.Path, ErrDuplicateChild)
	}
	name, ft, err := splitFileName(fullName)
	if err != nil {
		return nil, err
	}

	node := NewFile(name, ft, req.Content, fs.metaFor(req.NodeRequest, true))
	if err := parent.AddChild(node); err != nil {
		return nil, err
	}
	fs.register(node)
	logger.Debug().Str("path", req.Path).Msg("Added new file node")
	return node, nil
}

// DeleteNode detaches node from its parent, removing it and, with recursive
// set, its whole subtree from the tree. Children are deleted depth-first
// before the node itself. Rejecting a non-recursive delete of a non-empty
// directory is the caller's responsibility.
//
// If the deletion takes out the current working directory, cwd moves to the
// deleted node's former parent; a deleted home becomes unset.
func (fs *FileSystem) DeleteNode(node *Node, recursive bool) error {
	logger := util.GetLogger("DeleteNode")

	if node.isRoot {
		return ErrRootDeletion
	}
	if recursive && node.IsDir() {
		for _, child := range node.Children() {
			if err := fs.DeleteNode(child, true); err != nil {
				return err
			}
		}
	}
	parent := node.parent
	if parent == nil {
		return fmt.Errorf("%s: %w", node.FullName(), ErrPathNotFound)
	}
	if _, err := parent.RemoveChild(node.FullName()); err != nil {
		return err
	}
	fs.nodeIndex.Delete(node.meta.UUID)

	if !fs.reachable(fs.cwd) {
		fs.cwd = parent
	}
	if fs.home != nil && !fs.reachable(fs.home) {
		fs.home = nil
	}
	logger.Debug().Str("name", node.FullName()).Msg("Deleted node")
	return nil
}

// StringifyTree renders the whole tree as an indented depth-first listing,
// one node per line with indentation proportional to depth. Directories get
// a trailing slash. Diagnostic view only, not meant for parsing.
func (fs *FileSystem) StringifyTree() string {
	var b strings.Builder
	b.WriteString("/\n")
	stringifySubtree(&b, fs.root, 1)
	return b.String()
}

func stringifySubtree(b *strings.Builder, n *Node, depth int) {
	for _, child := range n.Children() {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(child.FullName())
		if child.IsDir() {
			b.WriteString("/")
		}
		b.WriteString("\n")
		if child.IsDir() {
			stringifySubtree(b, child, depth+1)
		}
	}
}

// NodeByID looks a live node up by its UUID.
func (fs *FileSystem) NodeByID(id string) (*Node, bool) {
	return fs.nodeIndex.Load(id)
}

// reachable reports whether n is still connected to the tree root.
func (fs *FileSystem) reachable(n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == fs.root {
			return true
		}
	}
	return false
}

func (fs *FileSystem) register(n *Node) {
	fs.nodeIndex.Store(n.meta.UUID, n)
}

// metaFor builds node metadata from a request, applying defaults. The
// request's pinned UUID, if any, only applies to the leaf node.
func (fs *FileSystem) metaFor(req webshell.NodeRequest, leaf bool) Metadata {
	now := time.Now()
	meta := Metadata{
		UUID:     uuid.NewString(),
		Created:  util.ValueOrDefault(req.Ctime, now),
		Modified: util.ValueOrDefault(req.Mtime, now),
	}
	if leaf && req.UUID != "" {
		meta.UUID = req.UUID
	}
	return meta
}

// splitFileName splits a file's full display name into its base name and
// typed extension. The extension must come from the fixed set; a lone
// leading dot (".bashrc") is not an extension boundary.
func splitFileName(fullName string) (string, webshell.FileType, error) {
	idx := strings.LastIndex(fullName, ".")
	if idx <= 0 || idx == len(fullName)-1 {
		return "", webshell.FileTypeUnknown, fmt.Errorf("%s: %w", fullName, ErrUnknownFileType)
	}
	ft, ok := webshell.FileTypeFromExt(fullName[idx+1:])
	if !ok {
		return "", webshell.FileTypeUnknown, fmt.Errorf("%s: %w", fullName, ErrUnknownFileType)
	}
	return fullName[:idx], ft, nil
}
