package compose

import (
	"context"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Signer holds the wallet. Keys never pass through this package.
	Signer interface {
		Sign(ctx context.Context, tx model.UnsignedTransaction) (model.SignedTransaction, error)
	}
	Ledger interface {
		TxAnchor(ctx context.Context) (string, error)
		SubmitTransaction(ctx context.Context, tx model.SignedTransaction) error
	}
	Tracker interface {
		AddPost(ctx context.Context, item model.TransactionInfo) error
		AddEdit(ctx context.Context, item model.TransactionInfo) error
		AddVote(ctx context.Context, item model.TransactionInfo) error
	}
)
