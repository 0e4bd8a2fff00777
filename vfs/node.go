package vfs

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/webshell-go/webshell"
)

// NodeKind discriminates directories from typed files.
type NodeKind int

const (
	KindDir NodeKind = iota + 1
	KindFile
)

// Metadata carries the bookkeeping attributes every node owns.
type Metadata struct {
	UUID     string
	Created  time.Time
	Modified time.Time
}

// Node is a single entry in the virtual tree: a directory or a typed file.
// Directories own their children map, keyed by each child's full display
// name. The parent pointer is a non-owning back-reference maintained by
// AddChild and RemoveChild.
type Node struct {
	name     string
	kind     NodeKind
	fileType webshell.FileType // files only
	content  string            // files only
	meta     Metadata
	parent   *Node
	children map[string]*Node // directories only
	isRoot   bool
}

// NewDir creates a detached directory node.
// The parent node is responsible for linking it via AddChild.
func NewDir(name string, meta Metadata) *Node {
	return &Node{
		name:     name,
		kind:     KindDir,
		meta:     meta,
		children: make(map[string]*Node),
	}
}

// NewFile creates a detached file node of the given type.
func NewFile(name string, ft webshell.FileType, content string, meta Metadata) *Node {
	return &Node{
		name:     name,
		kind:     KindFile,
		fileType: ft,
		content:  content,
		meta:     meta,
	}
}

// Name returns the node's base name, without the extension for files.
func (n *Node) Name() string { return n.name }

func (n *Node) Kind() NodeKind { return n.kind }

func (n *Node) IsDir() bool { return n.kind == KindDir }

// FileType returns the typed-file kind; FileTypeUnknown for directories.
func (n *Node) FileType() webshell.FileType { return n.fileType }

func (n *Node) Content() string { return n.content }

// SetContent replaces a file's content and bumps its modified time.
// No-op for directories.
func (n *Node) SetContent(content string, at time.Time) {
	if n.kind != KindFile {
		return
	}
	n.content = content
	n.meta.Modified = at
}

// Size returns the content length in bytes; 0 for directories.
func (n *Node) Size() int { return len(n.content) }

func (n *Node) Meta() Metadata { return n.meta }

// Touch bumps the node's modified time.
func (n *Node) Touch(at time.Time) { n.meta.Modified = at }

// Parent returns the owning directory; nil for the root and for detached
// nodes.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsRoot() bool { return n.isRoot }

// IsHidden reports whether the node's name begins with a dot.
func (n *Node) IsHidden() bool { return strings.HasPrefix(n.name, ".") }

// FullName returns the node's display identifier: the bare name for
// directories, name plus extension for files. It is the key under which the
// node is stored in its parent's children map.
func (n *Node) FullName() string {
	if n.kind == KindFile {
		return n.name + "." + n.fileType.Ext()
	}
	return n.name
}

// Path returns the slash-separated path from the tree root to this node.
// The root itself resolves to "/". A detached node's path is relative to
// its detachment point.
func (n *Node) Path() string {
	if n.isRoot {
		return "/"
	}
	if n.parent == nil {
		return n.FullName()
	}
	parentPath := n.parent.Path()
	if parentPath == "/" {
		return "/" + n.FullName()
	}
	return parentPath + "/" + n.FullName()
}

// GetChild returns the child stored under fullName. Always a miss on file
// nodes. If a kind filter is given the child must match it exactly.
func (n *Node) GetChild(fullName string, kind ...NodeKind) (*Node, bool) {
	if n.kind != KindDir {
		return nil, false
	}
	child, ok := n.children[fullName]
	if !ok {
		return nil, false
	}
	if len(kind) > 0 && child.kind != kind[0] {
		return nil, false
	}
	return child, true
}

// HasChild reports whether GetChild would find fullName.
func (n *Node) HasChild(fullName string, kind ...NodeKind) bool {
	_, ok := n.GetChild(fullName, kind...)
	return ok
}

// AddChild inserts child under this node and sets its parent reference.
// Fails without mutation if this node is a file or a sibling already holds
// the child's full name.
func (n *Node) AddChild(child *Node) error {
	if n.kind != KindDir {
		return fmt.Errorf("%s: %w", n.FullName(), ErrNotADirectory)
	}
	key := child.FullName()
	if _, exists := n.children[key]; exists {
		return fmt.Errorf("%s: %w", key, ErrDuplicateChild)
	}
	n.children[key] = child
	child.parent = n
	return nil
}

// RemoveChild detaches the child stored under fullName, clearing its parent
// reference, and returns it.
func (n *Node) RemoveChild(fullName string) (*Node, error) {
	if n.kind != KindDir {
		return nil, fmt.Errorf("%s: %w", n.FullName(), ErrNotADirectory)
	}
	child, exists := n.children[fullName]
	if !exists {
		return nil, fmt.Errorf("%s: %w", fullName, ErrPathNotFound)
	}
	delete(n.children, fullName)
	child.parent = nil
	return child, nil
}

// Children returns the node's children ordered by full name. Nil for files.
func (n *Node) Children() []*Node {
	if n.kind != KindDir {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// NumChildren returns the child count; 0 for files.
func (n *Node) NumChildren() int { return len(n.children) }
