package pending

import (
	"context"

	"github.com/goodnatureofminers/decentforum-indexer/internal/arweave"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Cache interface {
		AddPosts(items map[string]model.TransactionInfo) cache.Orphans
		AddVotes(items map[string]model.TransactionInfo) int
		ConfirmPendingItem(id string) bool
		MarkPendingFailed(id string) bool
		RollbackConfirmed(ids []string) []string
	}
	StatusSource interface {
		Status(ctx context.Context, txID string) (arweave.TxStatus, error)
	}
	Metrics interface {
		ObserveTransition(state string)
		SetPending(count int)
	}
)
