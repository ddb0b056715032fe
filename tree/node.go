package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"sync"
)

/*
We manage a tree of mutable nodes. Each nodes carries a payload of type parameter T.
Nodes maintain a slice of children. Widget trees are small compared to documents, and
the styling and layout passes operate synchronously, therefore walking is done in the
calling goroutine. Mutating children is guarded, as hosts may edit the widget tree from
event handlers while a layout pass reads it.
*/

// ErrSkipChildren may be returned by a walk action to prevent descending
// into the children of the current node.
var ErrSkipChildren = errors.New("skip children")

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]         // parent node of this node
	children childrenSlice[T] // mutex-protected slice of children nodes
	Payload  T                // nodes may carry a payload of arbitrary type
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild inserts a new child node into the tree.
// The newly inserted node is connected to this node as its parent.
// It returns the parent node to allow for chaining.
//
// This operation is concurrency-safe.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	if ch != nil {
		node.children.addChild(ch, node)
	}
	return node
}

// InsertChildAt inserts a new child node into the tree.
// The newly inserted node is connected to this node as its parent.
// The child is set at a given position in relation to other children,
// shifting children at later positions.
// It returns the parent node to allow for chaining.
//
// This operation is concurrency-safe.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) *Node[T] {
	if ch != nil {
		node.children.insertChildAt(i, ch, node)
	}
	return node
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node[T]) Isolate() *Node[T] {
	if node != nil && node.parent != nil {
		node.parent.children.remove(node)
	}
	return node
}

// ChildCount returns the number of children-nodes for a node
// (concurrency-safe).
func (node *Node[T]) ChildCount() int {
	return node.children.length()
}

// Child is a concurrency-safe way to get a children-node of a node.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	ch := node.children.child(n)
	return ch, ch != nil
}

// Children returns a slice with all children of a node.
func (node *Node[T]) Children() []*Node[T] {
	return node.children.asSlice()
}

// IndexOfChild returns the index of a child within the list of children
// of its parent. ch may not be nil.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	for i, child := range node.Children() {
		if ch == child {
			return i
		}
	}
	return -1
}

// Position returns the index of node among its siblings and the number of siblings
// (including node). The root node is at position 0 of 1.
func (node *Node[T]) Position() (int, int) {
	if node.parent == nil {
		return 0, 1
	}
	siblings := node.parent.Children()
	for i, ch := range siblings {
		if ch == node {
			return i, len(siblings)
		}
	}
	return 0, len(siblings) // cannot happen for a consistent tree
}

// PrevSibling returns the sibling immediately before node, or nil.
func (node *Node[T]) PrevSibling() *Node[T] {
	if node.parent == nil {
		return nil
	}
	if i, _ := node.Position(); i > 0 {
		ch, _ := node.parent.Child(i - 1)
		return ch
	}
	return nil
}

// NextSibling returns the sibling immediately after node, or nil.
func (node *Node[T]) NextSibling() *Node[T] {
	if node.parent == nil {
		return nil
	}
	i, n := node.Position()
	if i+1 < n {
		ch, _ := node.parent.Child(i + 1)
		return ch
	}
	return nil
}

// Action is a function type to operate on tree nodes during a walk.
// It receives the node, its parent (nil for the start node) and the position of
// the node among its siblings.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) error

// TopDown traverses a tree starting at (and including) node.
// The traversal guarantees that parents are always processed before
// their children, and siblings are processed in order.
//
// If the action returns ErrSkipChildren, the children of the current node are skipped.
// Any other error stops the traversal and is returned.
func (node *Node[T]) TopDown(action Action[T]) error {
	if node == nil || action == nil {
		return nil
	}
	err := walk(node, nil, 0, action)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	return err
}

func walk[T comparable](node, parent *Node[T], position int, action Action[T]) error {
	if err := action(node, parent, position); err != nil {
		return err
	}
	for i, ch := range node.Children() {
		if err := walk(ch, node, i, action); err != nil && !errors.Is(err, ErrSkipChildren) {
			return err
		}
	}
	return nil
}

// --- Slices of concurrency-safe sets of children ----------------------

type childrenSlice[T comparable] struct {
	sync.RWMutex
	slice []*Node[T]
}

func (chs *childrenSlice[T]) length() int {
	chs.RLock()
	defer chs.RUnlock()
	return len(chs.slice)
}

func (chs *childrenSlice[T]) addChild(child *Node[T], parent *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	chs.slice = append(chs.slice, child)
	child.parent = parent
}

func (chs *childrenSlice[T]) insertChildAt(i int, child *Node[T], parent *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	if i < 0 {
		i = 0
	}
	if i >= len(chs.slice) {
		chs.slice = append(chs.slice, child)
	} else {
		chs.slice = append(chs.slice, nil)   // make room for one child
		copy(chs.slice[i+1:], chs.slice[i:]) // shift i+1..n
		chs.slice[i] = child
	}
	child.parent = parent
}

// remove closes the gap, as sibling relations must not see holes.
func (chs *childrenSlice[T]) remove(node *Node[T]) {
	chs.Lock()
	defer chs.Unlock()
	for i, ch := range chs.slice {
		if ch == node {
			chs.slice = append(chs.slice[:i], chs.slice[i+1:]...)
			node.parent = nil
			break
		}
	}
}

func (chs *childrenSlice[T]) child(n int) *Node[T] {
	chs.RLock()
	defer chs.RUnlock()
	if n < 0 || n >= len(chs.slice) {
		return nil
	}
	return chs.slice[n]
}

func (chs *childrenSlice[T]) asSlice() []*Node[T] {
	chs.RLock()
	defer chs.RUnlock()
	children := make([]*Node[T], len(chs.slice))
	copy(children, chs.slice)
	return children
}
