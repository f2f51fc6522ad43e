package transport

import (
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Cache interface {
		View(fn func(r cache.Reader))
	}
	SyncSource interface {
		LastResult() (model.SyncResult, bool)
	}
)
