package cache

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"go.uber.org/zap"
)

var (
	errReferenceCycle = errors.New("reference cycle")
	errOwnerMismatch  = errors.New("edit owner does not match original author")
	errDepthMismatch  = errors.New("reference chain depth does not match parent")
	errNotAPost       = errors.New("item is not a post or edit")
)

// Orphans groups items that could not attach, keyed by the id of the missing parent.
type Orphans map[string][]model.TransactionInfo

// Items flattens the orphans back into an ingestion batch.
func (o Orphans) Items() map[string]model.TransactionInfo {
	out := make(map[string]model.TransactionInfo)
	for _, items := range o {
		for _, item := range items {
			out[item.ID] = item
		}
	}
	return out
}

// MissingParents returns the ids the orphans wait on, sorted.
func (o Orphans) MissingParents() []string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of orphaned items.
func (o Orphans) Len() int {
	n := 0
	for _, items := range o {
		n += len(items)
	}
	return n
}

type relation int

const (
	relationReply relation = iota
	relationEdit
)

type ingestion struct {
	c        *ForumCache
	batch    map[string]model.TransactionInfo
	orphans  Orphans
	visiting map[string]struct{}
	done     map[string]struct{}
	added    int
	rejected int
}

// AddPosts ingests posts and edits in any order. Items whose parent is
// neither cached nor in the batch are returned as orphans; the cache never
// retries them on its own. Ingesting an id that is already cached is a no-op.
func (c *ForumCache) AddPosts(items map[string]model.TransactionInfo) Orphans {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := &ingestion{
		c:        c,
		batch:    items,
		orphans:  make(Orphans),
		visiting: make(map[string]struct{}),
		done:     make(map[string]struct{}),
	}
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		in.tryAdd(id)
	}

	c.metrics.ObserveAddPosts(in.added, in.orphans.Len(), in.rejected)
	c.logger.Info("added posts",
		zap.Int("batch", len(items)),
		zap.Int("added", in.added),
		zap.Int("orphans", in.orphans.Len()),
		zap.Int("rejected", in.rejected),
		zap.Int("cached", len(c.posts)),
	)
	return in.orphans
}

// tryAdd returns the node an item resolved to. For an edit that is the
// original post, which is where replies via the edit id attach.
func (in *ingestion) tryAdd(id string) *PostTreeNode {
	if node, ok := in.c.posts[id]; ok {
		if node.isEdit {
			return node.parent
		}
		return node
	}
	item, ok := in.batch[id]
	if !ok {
		return nil
	}
	if _, ok := in.done[id]; ok {
		return nil
	}
	if _, ok := in.visiting[id]; ok {
		return nil
	}
	in.visiting[id] = struct{}{}
	defer delete(in.visiting, id)

	node, err := in.add(id, item)
	in.done[id] = struct{}{}
	if err != nil {
		in.discard(id, err)
		return nil
	}
	if node == nil {
		return nil
	}
	in.added++
	if node.isEdit {
		return node.parent
	}
	return node
}

func (in *ingestion) add(id string, item model.TransactionInfo) (*PostTreeNode, error) {
	chain, err := schema.RefChainFromTags(item.Tags)
	if err != nil {
		return nil, err
	}
	switch schema.TxTypeOf(item.Tags) {
	case schema.TxTypePost:
		if chain.IsRoot() {
			return in.c.addRoot(id, item)
		}
		return in.attach(id, item, chain, relationReply)
	case schema.TxTypePostEdit:
		return in.attach(id, item, chain, relationEdit)
	default:
		return nil, fmt.Errorf("%w: txType %q", errNotAPost, item.Tags[schema.TagTxType])
	}
}

// attach links a reply or edit to its parent, recording an orphan when the
// parent cannot be found in the cache or the batch.
func (in *ingestion) attach(id string, item model.TransactionInfo, chain schema.RefChain, rel relation) (*PostTreeNode, error) {
	parentID, err := chain.Parent()
	if err != nil {
		return nil, err
	}
	if _, inBatch := in.batch[parentID]; inBatch {
		in.tryAdd(parentID)
	}
	if _, ok := in.visiting[parentID]; ok {
		return nil, errReferenceCycle
	}

	parent := in.c.posts[parentID]
	if parent == nil {
		in.orphans[parentID] = append(in.orphans[parentID], item)
		in.c.logger.Debug("orphaned item", zap.String("tx_id", id), zap.String("parent_id", parentID))
		return nil, nil
	}
	if parent.chain.Count()+1 != chain.Count() {
		return nil, fmt.Errorf("%w: %d under %d", errDepthMismatch, chain.Count(), parent.chain.Count())
	}

	post := newForumPost(id, item)
	var node *PostTreeNode
	switch rel {
	case relationEdit:
		if item.OwnerAddress != parent.post.Author {
			return nil, fmt.Errorf("%w: %s edits %s", errOwnerMismatch, id, parentID)
		}
		node, err = parent.addEdit(post, chain)
		if err != nil {
			return nil, err
		}
	default:
		node = parent.Original().addReply(post, chain)
	}
	node.pendingTx = item.IsPendingTx
	in.c.posts[id] = node
	return node, nil
}

func (c *ForumCache) addRoot(id string, item model.TransactionInfo) (*PostTreeNode, error) {
	segments, err := schema.SegmentsFromTags(item.Tags)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, ErrEmptyPath
	}
	forum := c.forums
	for _, s := range segments {
		forum, err = forum.childAlways(s)
		if err != nil {
			return nil, err
		}
	}
	node := newPostTreeNode(newForumPost(id, item), schema.RefChain{}, forum, nil, false)
	node.pendingTx = item.IsPendingTx
	forum.posts[id] = node
	c.posts[id] = node
	return node, nil
}

func (in *ingestion) discard(id string, err error) {
	in.done[id] = struct{}{}
	in.rejected++
	in.c.logger.Warn("discarding forum item", zap.String("tx_id", id), zap.Error(err))
}

func newForumPost(id string, item model.TransactionInfo) ForumPost {
	post := ForumPost{
		ID:     id,
		Tags:   item.Tags,
		Author: item.OwnerAddress,
	}
	if date, err := schema.DateFromTags(item.Tags); err == nil {
		post.Date = date
	}
	if item.Content != nil {
		body := *item.Content
		post.Content = &body
	}
	return post
}
