package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshell-go/webshell"
)

var testTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func testMeta(id string) Metadata {
	return Metadata{UUID: id, Created: testTime, Modified: testTime}
}

func newTestRoot() *Node {
	root := NewDir("", testMeta("root"))
	root.isRoot = true
	return root
}

func TestNode_FullName(t *testing.T) {
	dir := NewDir("Documents", testMeta("d"))
	assert.Equal(t, "Documents", dir.FullName())

	file := NewFile("notes", webshell.FileTypeText, "", testMeta("f"))
	assert.Equal(t, "notes.txt", file.FullName())
}

func TestNode_IsHidden(t *testing.T) {
	assert.True(t, NewDir(".config", testMeta("d")).IsHidden())
	assert.True(t, NewFile(".secrets", webshell.FileTypeText, "", testMeta("f")).IsHidden())
	assert.False(t, NewDir("Documents", testMeta("d2")).IsHidden())
}

func TestNode_AddChild(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	child := NewFile("child", webshell.FileTypeText, "", testMeta("c"))

	require.NoError(t, parent.AddChild(child))

	retrieved, exists := parent.GetChild("child.txt")
	require.True(t, exists)
	assert.Equal(t, child, retrieved)
	assert.Equal(t, parent, child.parent)
}

func TestNode_AddChild_DuplicateFullName(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	first := NewFile("same", webshell.FileTypeText, "one", testMeta("c1"))
	second := NewFile("same", webshell.FileTypeText, "two", testMeta("c2"))

	require.NoError(t, parent.AddChild(first))
	err := parent.AddChild(second)

	require.ErrorIs(t, err, ErrDuplicateChild)
	// No mutation: the original child is still linked, the duplicate is not
	retrieved, exists := parent.GetChild("same.txt")
	require.True(t, exists)
	assert.Equal(t, first, retrieved)
	assert.Nil(t, second.parent)
}

func TestNode_AddChild_ToFile(t *testing.T) {
	file := NewFile("leaf", webshell.FileTypeText, "", testMeta("f"))
	child := NewDir("dir", testMeta("d"))

	err := file.AddChild(child)

	require.ErrorIs(t, err, ErrNotADirectory)
	assert.Nil(t, child.parent)
}

func TestNode_GetChild_KindFilter(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	dir := NewDir("sub", testMeta("d"))
	file := NewFile("notes", webshell.FileTypeText, "", testMeta("f"))
	require.NoError(t, parent.AddChild(dir))
	require.NoError(t, parent.AddChild(file))

	_, ok := parent.GetChild("sub", KindDir)
	assert.True(t, ok)
	_, ok = parent.GetChild("sub", KindFile)
	assert.False(t, ok)
	_, ok = parent.GetChild("notes.txt", KindFile)
	assert.True(t, ok)
	_, ok = parent.GetChild("notes.txt", KindDir)
	assert.False(t, ok)

	assert.True(t, parent.HasChild("sub"))
	assert.False(t, parent.HasChild("missing"))
}

func TestNode_GetChild_OnFile(t *testing.T) {
	file := NewFile("leaf", webshell.FileTypeText, "", testMeta("f"))

	_, ok := file.GetChild("anything")
	assert.False(t, ok)
	assert.False(t, file.HasChild("anything"))
}

func TestNode_RemoveChild(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	child := NewFile("child", webshell.FileTypeText, "", testMeta("c"))
	require.NoError(t, parent.AddChild(child))

	removed, err := parent.RemoveChild("child.txt")

	require.NoError(t, err)
	assert.Equal(t, child, removed)
	assert.False(t, parent.HasChild("child.txt"))
	// Detachment must clear the back-reference
	assert.Nil(t, child.parent)
}

func TestNode_RemoveChild_Missing(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))

	_, err := parent.RemoveChild("ghost.txt")

	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestNode_RemoveChild_OnFile(t *testing.T) {
	file := NewFile("leaf", webshell.FileTypeText, "", testMeta("f"))

	_, err := file.RemoveChild("anything")

	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestNode_AddRemoveRoundTrip(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	child := NewDir("sub", testMeta("c"))

	require.NoError(t, parent.AddChild(child))
	assert.True(t, parent.HasChild("sub"))

	_, err := parent.RemoveChild("sub")
	require.NoError(t, err)
	assert.False(t, parent.HasChild("sub"))
}

func TestNode_Path_Root(t *testing.T) {
	root := newTestRoot()
	assert.Equal(t, "/", root.Path())
}

func TestNode_Path_Nested(t *testing.T) {
	root := newTestRoot()
	home := NewDir("home", testMeta("h"))
	user := NewDir("user", testMeta("u"))
	file := NewFile("readme", webshell.FileTypeText, "", testMeta("f"))

	require.NoError(t, root.AddChild(home))
	require.NoError(t, home.AddChild(user))
	require.NoError(t, user.AddChild(file))

	// Directly under root no doubled slash occurs
	assert.Equal(t, "/home", home.Path())
	assert.Equal(t, "/home/user", user.Path())
	assert.Equal(t, "/home/user/readme.txt", file.Path())
}

func TestNode_Path_ParentComposition(t *testing.T) {
	root := newTestRoot()
	a := NewDir("a", testMeta("a"))
	b := NewDir("b", testMeta("b"))
	require.NoError(t, root.AddChild(a))
	require.NoError(t, a.AddChild(b))

	assert.Equal(t, a.Path()+"/"+b.FullName(), b.Path())
}

func TestNode_SetContent(t *testing.T) {
	file := NewFile("notes", webshell.FileTypeText, "old", testMeta("f"))
	later := testTime.Add(time.Hour)

	file.SetContent("new content", later)

	assert.Equal(t, "new content", file.Content())
	assert.Equal(t, len("new content"), file.Size())
	assert.Equal(t, later, file.Meta().Modified)
}

func TestNode_SetContent_DirIsNoop(t *testing.T) {
	dir := NewDir("d", testMeta("d"))
	dir.SetContent("nope", testTime.Add(time.Hour))

	assert.Equal(t, "", dir.Content())
	assert.Equal(t, testTime, dir.Meta().Modified)
}

func TestNode_Children_Sorted(t *testing.T) {
	parent := NewDir("parent", testMeta("p"))
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, parent.AddChild(NewDir(name, testMeta(name))))
	}

	var names []string
	for _, child := range parent.Children() {
		names = append(names, child.FullName())
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
	assert.Equal(t, 3, parent.NumChildren())
}

func TestNode_Children_NilForFiles(t *testing.T) {
	file := NewFile("leaf", webshell.FileTypeText, "", testMeta("f"))
	assert.Nil(t, file.Children())
	assert.Equal(t, 0, file.NumChildren())
}
