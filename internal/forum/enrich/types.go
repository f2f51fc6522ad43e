package enrich

import (
	"context"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		Transaction(ctx context.Context, txID string) (model.Transaction, error)
	}
	Cache interface {
		IsFullTxPresent(id string) bool
		IsVoteCounted(id string) bool
		AddPosts(items map[string]model.TransactionInfo) cache.Orphans
		AddVotes(items map[string]model.TransactionInfo) int
	}
	Metrics interface {
		ObserveFill(err error, result Result, started time.Time)
	}
)
