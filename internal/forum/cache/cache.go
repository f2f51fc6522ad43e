// Package cache reconciles unordered forum items into a tree of categories,
// threads, replies and edits.
//
// All methods are synchronous and perform no I/O. Nodes returned by the cache
// are owned by it: read them inside View, or copy what you need, and never
// change them other than through the cache's methods.
package cache

import (
	"errors"
	"sync"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrEmptyPath is returned when looking up a category with no segments.
var ErrEmptyPath = errors.New("cannot find forum with empty path")

// Config holds vote stake thresholds in winston.
type Config struct {
	MinUpvoteStake   decimal.Decimal
	MinDownvoteStake decimal.Decimal
}

// DefaultConfig requires the standard vote cost in both directions.
func DefaultConfig() Config {
	return Config{
		MinUpvoteStake:   schema.VoteCost,
		MinDownvoteStake: schema.VoteCost,
	}
}

// ForumCache is the in-memory forum index.
type ForumCache struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	metrics Metrics
	cfg     Config

	forums       *ForumTreeNode
	posts        map[string]*PostTreeNode
	votesSeen    map[string]struct{}
	pendingVotes map[string]countedVote
}

// NewForumCache builds an empty cache.
func NewForumCache(logger *zap.Logger, metrics Metrics, cfg Config) (*ForumCache, error) {
	if metrics == nil {
		return nil, errors.New("forum cache metrics is required")
	}
	return &ForumCache{
		logger:       logger.Named("forumCache"),
		metrics:      metrics,
		cfg:          cfg,
		forums:       newForumTreeNode(nil, nil),
		posts:        make(map[string]*PostTreeNode),
		votesSeen:    make(map[string]struct{}),
		pendingVotes: make(map[string]countedVote),
	}, nil
}

// View runs fn under the read lock. Nodes reached through r are safe to read
// for the duration of fn.
func (c *ForumCache) View(fn func(r Reader)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(Reader{c: c})
}

// Reader exposes lock-free lookups inside View.
type Reader struct {
	c *ForumCache
}

// Root returns the synthetic root category.
func (r Reader) Root() *ForumTreeNode { return r.c.forums }

// FindForumNode looks up a category.
func (r Reader) FindForumNode(segments []string) (*ForumTreeNode, error) {
	return r.c.findForumNode(segments)
}

// FindPostNode looks up a post, reply or edit by id.
func (r Reader) FindPostNode(id string) *PostTreeNode { return r.c.posts[id] }

// Len returns the number of post nodes held.
func (r Reader) Len() int { return len(r.c.posts) }

// FindForumNode returns the category at segments, nil when it is not cached.
func (c *ForumCache) FindForumNode(segments []string) (*ForumTreeNode, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findForumNode(segments)
}

// HasForum reports whether the category at segments is cached. Empty paths are never cached.
func (c *ForumCache) HasForum(segments []string) bool {
	node, err := c.FindForumNode(segments)
	return err == nil && node != nil
}

// FindPostNode returns the node for id, nil when it is not cached.
func (c *ForumCache) FindPostNode(id string) *PostTreeNode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posts[id]
}

func (c *ForumCache) findForumNode(segments []string) (*ForumTreeNode, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyPath
	}
	node := c.forums
	for _, s := range segments {
		node = node.children[s]
		if node == nil {
			return nil, nil
		}
	}
	return node, nil
}

// IsFullTxPresent reports whether id is cached with its content loaded.
func (c *ForumCache) IsFullTxPresent(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	node := c.posts[id]
	return node != nil && node.HasContent()
}

// IsVoteCounted reports whether the vote id has already been processed.
func (c *ForumCache) IsVoteCounted(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.votesSeen[id]
	return ok
}

// AddPostsContent attaches loaded bodies to cached posts. A nil body marks
// the post as having a content problem. Posts already holding content are left alone.
func (c *ForumCache) AddPostsContent(contents map[string]*string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	added, problems := 0, 0
	for id, content := range contents {
		node := c.posts[id]
		if node == nil || node.HasContent() {
			continue
		}
		if content == nil {
			node.contentProblem = "failed to load content"
			problems++
			continue
		}
		body := *content
		node.post.Content = &body
		node.contentProblem = ""
		added++
	}
	c.logger.Debug("added post content",
		zap.Int("added", added),
		zap.Int("problems", problems),
		zap.Int("total", len(contents)),
	)
}

// ConfirmPendingItem marks a pending post, edit or vote as mined.
func (c *ForumCache) ConfirmPendingItem(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node := c.posts[id]; node != nil {
		node.pendingTx = false
		node.failedTx = false
		return true
	}
	if _, ok := c.pendingVotes[id]; ok {
		delete(c.pendingVotes, id)
		return true
	}
	c.logger.Warn("pending item to confirm not found", zap.String("tx_id", id))
	return false
}

// MarkPendingFailed moves a still pending item into the failed state. A
// failed vote is taken off its post's tally and may be counted again if it
// is mined later.
func (c *ForumCache) MarkPendingFailed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node := c.posts[id]; node != nil {
		if !node.pendingTx {
			return false
		}
		node.pendingTx = false
		node.failedTx = true
		return true
	}
	if v, ok := c.pendingVotes[id]; ok {
		v.revert()
		delete(c.pendingVotes, id)
		delete(c.votesSeen, id)
		return true
	}
	c.logger.Warn("pending item to fail not found", zap.String("tx_id", id))
	return false
}

// RollbackConfirmed returns confirmed posts back to pending after the blocks
// that held them were discarded by a reorganization. It reports the ids changed.
func (c *ForumCache) RollbackConfirmed(ids []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := make([]string, 0)
	for _, id := range ids {
		node := c.posts[id]
		if node == nil || node.pendingTx {
			continue
		}
		node.pendingTx = true
		node.failedTx = false
		changed = append(changed, id)
	}
	if len(changed) > 0 {
		c.logger.Info("rolled back confirmed posts", zap.Int("count", len(changed)))
	}
	return changed
}
