package cache

import (
	"sort"
	"time"
)

const (
	recencyVotesPerHour = 5
	recencyMaxHours     = 10
	hideThreshold       = -2
)

// StandardScore is the net aggregated vote count plus a recency bonus that
// decays from fifty votes for a brand new post to nothing after ten hours.
func StandardScore(n *PostTreeNode, now time.Time) float64 {
	votes := n.GetAggregatedVotes()
	score := float64(votes.Score())
	if n.post.Date.IsZero() {
		return score
	}
	age := now.Sub(n.post.Date).Hours()
	if bonus := recencyMaxHours - age; bonus > 0 {
		score += bonus * recencyVotesPerHour
	}
	return score
}

// SortPostsStandard returns the nodes ordered by StandardScore, highest first.
func SortPostsStandard(nodes []*PostTreeNode, now time.Time) []*PostTreeNode {
	out := append([]*PostTreeNode(nil), nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		return StandardScore(out[i], now) > StandardScore(out[j], now)
	})
	return out
}

// IsPostHidden reports whether a post was voted down far enough to hide.
func IsPostHidden(n *PostTreeNode) bool {
	return n.GetAggregatedVotes().Score() < hideThreshold
}
