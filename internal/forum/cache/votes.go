package cache

import (
	"errors"
	"sort"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"go.uber.org/zap"
)

var (
	errNotAVote       = errors.New("item is not a vote")
	errTargetNotFound = errors.New("voted post not found")
	errUnknownVote    = errors.New("unknown vote type")
	errLowStake       = errors.New("vote stake below minimum")
	errWrongTarget    = errors.New("upvote not paid to the author")
	errSelfVote       = errors.New("author cannot vote on own post")
	errDuplicateVoter = errors.New("voter already voted on post")
)

type countedVote struct {
	node  *PostTreeNode
	voter string
	up    bool
}

func (v countedVote) revert() {
	if v.up {
		v.node.votes.Up--
	} else {
		v.node.votes.Down--
	}
	delete(v.node.voters, v.voter)
}

// AddVotes validates and tallies votes and returns how many were counted.
//
// A vote is marked as seen as soon as the post it targets is found, before
// the stake, author and duplicate checks run. A vote that fails those checks
// is therefore never reconsidered. Votes whose post is not cached yet stay
// unseen and may be submitted again later.
func (c *ForumCache) AddVotes(items map[string]model.TransactionInfo) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	counted, rejected := 0, 0
	for _, id := range ids {
		if _, seen := c.votesSeen[id]; seen {
			continue
		}
		if err := c.addVote(id, items[id]); err != nil {
			rejected++
			c.logger.Debug("vote not counted", zap.String("tx_id", id), zap.Error(err))
			continue
		}
		counted++
	}

	c.metrics.ObserveAddVotes(counted, rejected)
	c.logger.Info("added votes",
		zap.Int("batch", len(items)),
		zap.Int("counted", counted),
		zap.Int("rejected", rejected),
	)
	return counted
}

func (c *ForumCache) addVote(id string, item model.TransactionInfo) error {
	if schema.TxTypeOf(item.Tags) != schema.TxTypeVote {
		return errNotAVote
	}
	chain, err := schema.RefChainFromTags(item.Tags)
	if err != nil {
		return err
	}
	postID, err := chain.Parent()
	if err != nil {
		return err
	}
	node := c.posts[postID]
	if node == nil {
		return errTargetNotFound
	}
	c.votesSeen[id] = struct{}{}

	up, err := c.validateVote(node, item)
	if err != nil {
		return err
	}
	node.voters[item.OwnerAddress] = struct{}{}
	if up {
		node.votes.Up++
	} else {
		node.votes.Down++
	}
	if item.IsPendingTx {
		c.pendingVotes[id] = countedVote{node: node, voter: item.OwnerAddress, up: up}
	}
	return nil
}

func (c *ForumCache) validateVote(node *PostTreeNode, item model.TransactionInfo) (bool, error) {
	var up bool
	switch schema.VoteType(item.Tags[schema.TagVoteType]) {
	case schema.VoteUp:
		if item.Target != node.post.Author {
			return false, errWrongTarget
		}
		if item.Quantity.LessThan(c.cfg.MinUpvoteStake) {
			return false, errLowStake
		}
		up = true
	case schema.VoteDown:
		if item.Reward.LessThan(c.cfg.MinDownvoteStake) {
			return false, errLowStake
		}
	default:
		return false, errUnknownVote
	}
	if item.OwnerAddress == node.post.Author {
		return false, errSelfVote
	}
	if node.HasVoted(item.OwnerAddress) {
		return false, errDuplicateVoter
	}
	return up, nil
}
