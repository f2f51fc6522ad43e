package query

import (
	"context"
	"encoding/json"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		Arql(ctx context.Context, query json.RawMessage) ([]string, error)
		Transaction(ctx context.Context, txID string) (model.Transaction, error)
	}
)
