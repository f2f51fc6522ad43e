package blockwatch

import (
	"context"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		CurrentTip(ctx context.Context) (string, error)
		RawBlock(ctx context.Context, hash string) (model.Block, error)
		Tags(ctx context.Context, txID string) (map[string]string, error)
	}
	Metrics interface {
		ObserveSync(err error, result model.SyncResult, started time.Time)
		ObserveTagFetch(fetched, failed int, started time.Time)
	}
)
