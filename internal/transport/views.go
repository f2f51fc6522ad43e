package transport

import (
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
)

type errorResponse struct {
	Error string `json:"error"`
}

type blockView struct {
	Hash      string    `json:"hash"`
	Height    uint64    `json:"height"`
	Timestamp time.Time `json:"timestamp"`
	Txs       int       `json:"txs"`
	Tagged    int       `json:"tagged"`
}

type syncView struct {
	Synced    int         `json:"synced"`
	Missed    bool        `json:"missed"`
	Reorg     bool        `json:"reorg"`
	Discarded int         `json:"discarded"`
	Blocks    []blockView `json:"blocks"`
}

func newSyncView(r model.SyncResult) syncView {
	out := syncView{
		Synced:    r.Synced,
		Missed:    r.Missed,
		Reorg:     r.Reorg,
		Discarded: len(r.Discarded),
		Blocks:    make([]blockView, 0, len(r.List)),
	}
	for _, b := range r.List {
		out.Blocks = append(out.Blocks, blockView{
			Hash:      b.Hash,
			Height:    b.Block.Height,
			Timestamp: b.Block.Timestamp,
			Txs:       len(b.Block.TxIDs),
			Tagged:    len(b.Block.TxIDs) - len(b.MissingTags()),
		})
	}
	return out
}

type postSummary struct {
	ID          string      `json:"id"`
	Author      string      `json:"author"`
	Date        *time.Time  `json:"date,omitempty"`
	Description string      `json:"description,omitempty"`
	Votes       cache.Votes `json:"votes"`
	Replies     int         `json:"replies"`
	Edited      bool        `json:"edited"`
	Pending     bool        `json:"pending"`
	Failed      bool        `json:"failed"`
	Hidden      bool        `json:"hidden"`
}

func newPostSummary(n *cache.PostTreeNode) postSummary {
	latest := n.LatestEdit()
	post := n.Post()
	s := postSummary{
		ID:          post.ID,
		Author:      post.Author,
		Description: latest.Post().Tags[schema.TagDescription],
		Votes:       n.GetAggregatedVotes(),
		Replies:     len(n.Replies()),
		Edited:      latest != n,
		Pending:     n.IsPendingTx(),
		Failed:      n.IsFailedTx(),
		Hidden:      cache.IsPostHidden(n),
	}
	if !post.Date.IsZero() {
		d := post.Date
		s.Date = &d
	}
	return s
}

type forumView struct {
	Path     string        `json:"path"`
	Segments []string      `json:"segments"`
	Children []string      `json:"children"`
	Threads  []postSummary `json:"threads"`
}

func newForumView(n *cache.ForumTreeNode, now time.Time) forumView {
	roots := make([]*cache.PostTreeNode, 0)
	for _, p := range n.Posts() {
		roots = append(roots, p)
	}
	out := forumView{
		Path:     n.Path(),
		Segments: n.Segments(),
		Children: n.ChildNames(),
		Threads:  make([]postSummary, 0, len(roots)),
	}
	if out.Segments == nil {
		out.Segments = []string{}
	}
	for _, p := range cache.SortPostsStandard(roots, now) {
		out.Threads = append(out.Threads, newPostSummary(p))
	}
	return out
}

type postView struct {
	postSummary
	Path           string            `json:"path"`
	Parent         string            `json:"parent,omitempty"`
	IsEdit         bool              `json:"isEdit"`
	Content        *string           `json:"content"`
	ContentProblem string            `json:"contentProblem,omitempty"`
	Tags           map[string]string `json:"tags"`
	Edits          []string          `json:"edits"`
	ReplyList      []postSummary     `json:"replyList"`
}

func newPostView(n *cache.PostTreeNode, now time.Time) postView {
	latest := n.LatestEdit()
	out := postView{
		postSummary:    newPostSummary(n),
		IsEdit:         n.IsEdit(),
		Content:        latest.Post().Content,
		ContentProblem: latest.ContentProblem(),
		Tags:           n.Post().Tags,
		Edits:          make([]string, 0),
		ReplyList:      make([]postSummary, 0),
	}
	if f := n.Forum(); f != nil {
		out.Path = f.Path()
	}
	if p := n.Parent(); p != nil {
		out.Parent = p.ID()
	}
	for _, e := range n.Edits() {
		out.Edits = append(out.Edits, e.ID())
	}
	for _, r := range cache.SortPostsStandard(n.Replies(), now) {
		out.ReplyList = append(out.ReplyList, newPostSummary(r))
	}
	return out
}
