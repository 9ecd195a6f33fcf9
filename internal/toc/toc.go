// Package toc filters flat heading lists and assembles them into nested
// table-of-contents trees.
//
// All functions are pure: inputs are never mutated and every call returns
// freshly allocated slices.
package toc

// Item is a single heading as extracted from a document, in document order.
// Level is the depth the author wrote; it is not guaranteed to be contiguous
// or to start at 1.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Level int    `json:"level" yaml:"level"`
	Value string `json:"value" yaml:"value"`
}

// Node is an Item with its nested headings. Children is never nil.
type Node struct {
	Item     `yaml:",inline"`
	Children []*Node `json:"children" yaml:"children"`
}

func newNode(item Item) *Node {
	return &Node{Item: item, Children: []*Node{}}
}

// Filter keeps the items whose level lies in [minLevel, maxLevel], preserving
// order. Dropped items are not reparented. minLevel > maxLevel yields an
// empty result.
func Filter(items []Item, minLevel, maxLevel int) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Level >= minLevel && item.Level <= maxLevel {
			out = append(out, item)
		}
	}
	return out
}

// Treeify nests a flat heading sequence in a single left-to-right pass.
//
// Each item becomes the last child of the nearest preceding item that is still
// open and has a strictly smaller level; with no such item it is a top-level
// node. Opening an item closes every open item whose level is >= its own.
// No other validation of the level sequence is performed.
func Treeify(items []Item) []*Node {
	roots := make([]*Node, 0)
	stack := make([]*Node, 0, len(items))

	for _, item := range items {
		for len(stack) > 0 && stack[len(stack)-1].Level >= item.Level {
			stack = stack[:len(stack)-1]
		}

		node := newNode(item)
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return roots
}

// FilterTree removes nodes outside [minLevel, maxLevel] from a tree. The
// surviving descendants of a removed node take its place among its siblings,
// in order. The input tree is left untouched.
func FilterTree(nodes []*Node, minLevel, maxLevel int) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		children := FilterTree(n.Children, minLevel, maxLevel)
		if n.Level >= minLevel && n.Level <= maxLevel {
			out = append(out, &Node{Item: n.Item, Children: children})
			continue
		}
		out = append(out, children...)
	}
	return out
}

// FilteredAndTreeified builds the tree from the complete heading list and then
// prunes it to the window. Building before filtering keeps the hierarchy the
// author wrote: a heading whose parent falls outside the window is hoisted to
// the parent's position rather than adopted by an unrelated earlier heading.
func FilteredAndTreeified(items []Item, minLevel, maxLevel int) []*Node {
	return FilterTree(Treeify(items), minLevel, maxLevel)
}

// Flatten returns the items of a tree in document order.
func Flatten(nodes []*Node) []Item {
	out := make([]Item, 0)
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n.Item)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}
