package cache

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
)

// ErrInvalidSegment is returned when a forum path holds an empty segment.
var ErrInvalidSegment = errors.New("invalid path segment")

// ForumTreeNode is a category in the forum tree. The root node has no
// segments and never holds posts.
type ForumTreeNode struct {
	segments []string
	parent   *ForumTreeNode
	children map[string]*ForumTreeNode
	posts    map[string]*PostTreeNode
}

func newForumTreeNode(segments []string, parent *ForumTreeNode) *ForumTreeNode {
	return &ForumTreeNode{
		segments: segments,
		parent:   parent,
		children: make(map[string]*ForumTreeNode),
		posts:    make(map[string]*PostTreeNode),
	}
}

// Segments returns the path of the category.
func (n *ForumTreeNode) Segments() []string { return append([]string(nil), n.segments...) }

// Path returns the encoded path of the category.
func (n *ForumTreeNode) Path() string { return schema.EncodePath(n.segments) }

// Parent returns the enclosing category, nil for the root.
func (n *ForumTreeNode) Parent() *ForumTreeNode { return n.parent }

// IsRoot reports whether n is the synthetic root category.
func (n *ForumTreeNode) IsRoot() bool { return len(n.segments) == 0 }

// Child returns the direct sub category named segment, or nil.
func (n *ForumTreeNode) Child(segment string) *ForumTreeNode { return n.children[segment] }

// ChildNames returns the sub category names in lexical order.
func (n *ForumTreeNode) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Posts returns the thread roots of this category keyed by id.
func (n *ForumTreeNode) Posts() map[string]*PostTreeNode {
	out := make(map[string]*PostTreeNode, len(n.posts))
	for id, p := range n.posts {
		out[id] = p
	}
	return out
}

func (n *ForumTreeNode) childAlways(segment string) (*ForumTreeNode, error) {
	if segment == "" {
		return nil, fmt.Errorf("%w under %q", ErrInvalidSegment, n.Path())
	}
	if child, ok := n.children[segment]; ok {
		return child, nil
	}
	segments := make([]string, len(n.segments), len(n.segments)+1)
	copy(segments, n.segments)
	child := newForumTreeNode(append(segments, segment), n)
	n.children[segment] = child
	return child, nil
}
