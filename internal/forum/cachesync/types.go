package cachesync

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Cache interface {
		HasForum(segments []string) bool
		RollbackConfirmed(ids []string) []string
		ConfirmPendingItem(id string) bool
	}
	Queue interface {
		AddAll(ctx context.Context, ids []string) error
	}
	Metrics interface {
		ObserveNotify(err error, queued, rolledBack int)
	}
)
