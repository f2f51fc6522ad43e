package cache

import (
	"errors"
	"sort"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
)

// ErrEditOfEdit is returned when an edit targets another edit instead of the original post.
var ErrEditOfEdit = errors.New("edits must reference the original post")

// ForumPost is the payload of a post tree node.
type ForumPost struct {
	ID     string
	Tags   map[string]string
	Author string
	// Date is declared by the client and cannot be trusted for ordering
	// across authors. Zero when the item carries no date tags.
	Date    time.Time
	Content *string
}

// Votes is an up/down tally.
type Votes struct {
	Up   int `json:"upVotes"`
	Down int `json:"downVotes"`
}

// Score is the net vote count.
func (v Votes) Score() int { return v.Up - v.Down }

// PostTreeNode is a post, reply or edit in a thread. Edit nodes hang off the
// original in a date ordered list and never have replies or edits of their own.
type PostTreeNode struct {
	post           ForumPost
	chain          schema.RefChain
	forum          *ForumTreeNode
	parent         *PostTreeNode
	replies        map[string]*PostTreeNode
	edits          []*PostTreeNode
	isEdit         bool
	pendingTx      bool
	failedTx       bool
	contentProblem string
	voters         map[string]struct{}
	votes          Votes
}

func newPostTreeNode(post ForumPost, chain schema.RefChain, forum *ForumTreeNode, parent *PostTreeNode, isEdit bool) *PostTreeNode {
	return &PostTreeNode{
		post:    post,
		chain:   chain,
		forum:   forum,
		parent:  parent,
		isEdit:  isEdit,
		replies: make(map[string]*PostTreeNode),
		voters:  make(map[string]struct{}),
	}
}

// ID returns the transaction id of the node.
func (n *PostTreeNode) ID() string { return n.post.ID }

// Post returns the payload. Its Tags map is owned by the cache.
func (n *PostTreeNode) Post() ForumPost { return n.post }

// Forum returns the category the thread lives in.
func (n *PostTreeNode) Forum() *ForumTreeNode { return n.forum }

// Parent returns the replied-to node, the original for an edit, nil for a thread root.
func (n *PostTreeNode) Parent() *PostTreeNode { return n.parent }

// Chain returns the ancestor chain declared by the item.
func (n *PostTreeNode) Chain() schema.RefChain { return n.chain }

// IsEdit reports whether n is a revision of another node.
func (n *PostTreeNode) IsEdit() bool { return n.isEdit }

// IsPendingTx reports whether the transaction is still unconfirmed.
func (n *PostTreeNode) IsPendingTx() bool { return n.pendingTx }

// IsFailedTx reports whether a pending transaction was given up on.
func (n *PostTreeNode) IsFailedTx() bool { return n.failedTx }

// ContentProblem describes why content could not be loaded, empty when fine.
func (n *PostTreeNode) ContentProblem() string { return n.contentProblem }

// HasContent reports whether the post body is loaded.
func (n *PostTreeNode) HasContent() bool { return n.post.Content != nil }

// Votes returns the node's own tally.
func (n *PostTreeNode) Votes() Votes { return n.votes }

// Replies returns the direct replies ordered by declared date then id.
func (n *PostTreeNode) Replies() []*PostTreeNode {
	out := make([]*PostTreeNode, 0, len(n.replies))
	for _, r := range n.replies {
		out = append(out, r)
	}
	sortByDate(out)
	return out
}

// Reply returns a direct reply by id, or nil.
func (n *PostTreeNode) Reply(id string) *PostTreeNode { return n.replies[id] }

// Edits returns the edits ordered by declared date.
func (n *PostTreeNode) Edits() []*PostTreeNode { return append([]*PostTreeNode(nil), n.edits...) }

// Original returns the node an edit revises, or n itself.
func (n *PostTreeNode) Original() *PostTreeNode {
	if n.isEdit && n.parent != nil {
		return n.parent
	}
	return n
}

// LatestEdit returns the most recent edit or the node itself when unedited.
func (n *PostTreeNode) LatestEdit() *PostTreeNode {
	orig := n.Original()
	if len(orig.edits) == 0 {
		return orig
	}
	return orig.edits[len(orig.edits)-1]
}

// IsRootPost reports whether n, or the original it revises, starts a thread.
func (n *PostTreeNode) IsRootPost() bool {
	return n.Original().parent == nil
}

// IsEditOf reports whether an edit declaring id as its original attaches to n.
func (n *PostTreeNode) IsEditOf(id string) bool {
	return !n.isEdit && n.post.ID == id
}

// IsReplyTo reports whether a reply to id attaches to n, either directly or via one of its edits.
func (n *PostTreeNode) IsReplyTo(id string) bool {
	if n.post.ID == id {
		return true
	}
	for _, e := range n.edits {
		if e.post.ID == id {
			return true
		}
	}
	return false
}

// HasVoted reports whether address already voted on n.
func (n *PostTreeNode) HasVoted(address string) bool {
	_, ok := n.voters[address]
	return ok
}

// GetAggregatedVotes sums the node's tally with the tallies of all its edits.
func (n *PostTreeNode) GetAggregatedVotes() Votes {
	total := n.votes
	for _, e := range n.edits {
		total.Up += e.votes.Up
		total.Down += e.votes.Down
	}
	return total
}

func (n *PostTreeNode) addReply(post ForumPost, chain schema.RefChain) *PostTreeNode {
	child := newPostTreeNode(post, chain, n.forum, n, false)
	n.replies[post.ID] = child
	return child
}

func (n *PostTreeNode) addEdit(post ForumPost, chain schema.RefChain) (*PostTreeNode, error) {
	if n.isEdit {
		return nil, ErrEditOfEdit
	}
	edit := newPostTreeNode(post, chain, n.forum, n, true)
	n.edits = append(n.edits, edit)
	sortByDate(n.edits)
	return edit, nil
}

func sortByDate(nodes []*PostTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].post, nodes[j].post
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}
