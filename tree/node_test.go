package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTree() (*Node[string], []*Node[string]) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChild(a).AddChild(b).AddChild(c)
	a1 := NewNode("a1")
	a.AddChild(a1)
	return root, []*Node[string]{a, b, c, a1}
}

func TestSiblings(t *testing.T) {
	root, n := buildTree()
	a, b, c := n[0], n[1], n[2]
	assert.Nil(t, root.PrevSibling())
	assert.Nil(t, a.PrevSibling())
	assert.Equal(t, a, b.PrevSibling())
	assert.Equal(t, c, b.NextSibling())
	assert.Nil(t, c.NextSibling())
	pos, cnt := c.Position()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 3, cnt)
}

func TestInsertAndIsolate(t *testing.T) {
	root, n := buildTree()
	x := NewNode("x")
	root.InsertChildAt(1, x)
	assert.Equal(t, 1, root.IndexOfChild(x))
	assert.Equal(t, n[1], x.NextSibling())
	x.Isolate()
	assert.Nil(t, x.Parent())
	assert.Equal(t, 3, root.ChildCount())
	assert.Equal(t, n[0], n[1].PrevSibling(), "isolating must not leave holes")
}

func TestTopDownOrder(t *testing.T) {
	root, _ := buildTree()
	var visited []string
	err := root.TopDown(func(node, parent *Node[string], pos int) error {
		visited = append(visited, node.Payload)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "a1", "b", "c"}, visited)
}

func TestTopDownSkipAndAbort(t *testing.T) {
	root, _ := buildTree()
	var visited []string
	_ = root.TopDown(func(node, parent *Node[string], pos int) error {
		visited = append(visited, node.Payload)
		if node.Payload == "a" {
			return ErrSkipChildren
		}
		return nil
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, visited)
	//
	boom := errors.New("boom")
	err := root.TopDown(func(node, parent *Node[string], pos int) error {
		if node.Payload == "b" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
