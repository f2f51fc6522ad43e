package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cachePosts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "forum_cache",
		Name:      "posts_total",
		Help:      "Count of posts and edits offered to the cache, by outcome.",
	}, []string{"outcome"})

	cacheVotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "forum_cache",
		Name:      "votes_total",
		Help:      "Count of votes offered to the cache, by outcome.",
	}, []string{"outcome"})
)

// ForumCache tracks metrics for cache ingestion.
type ForumCache struct{}

// NewForumCache constructs a ForumCache.
func NewForumCache() *ForumCache {
	return &ForumCache{}
}

// ObserveAddPosts records one ingestion batch.
func (m ForumCache) ObserveAddPosts(added, orphaned, rejected int) {
	cachePosts.WithLabelValues("added").Add(float64(added))
	cachePosts.WithLabelValues("orphaned").Add(float64(orphaned))
	cachePosts.WithLabelValues("rejected").Add(float64(rejected))
}

// ObserveAddVotes records one vote batch.
func (m ForumCache) ObserveAddVotes(counted, rejected int) {
	cacheVotes.WithLabelValues("counted").Add(float64(counted))
	cacheVotes.WithLabelValues("rejected").Add(float64(rejected))
}
