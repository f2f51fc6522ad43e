package arweave

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"go.uber.org/zap"
)

const slowQueryThreshold = 5 * time.Second

// ObservedClient records every gateway call with Metrics.
type ObservedClient struct {
	client  *Client
	metrics Metrics
	logger  *zap.Logger
}

// NewObservedClient wraps client.
func NewObservedClient(client *Client, metrics Metrics, logger *zap.Logger) *ObservedClient {
	return &ObservedClient{
		client:  client,
		metrics: metrics,
		logger:  logger.Named("observedArweave"),
	}
}

func (o *ObservedClient) CurrentTip(ctx context.Context) (hash string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("current_tip", err, started)
	}()
	return o.client.CurrentTip(ctx)
}

func (o *ObservedClient) RawBlock(ctx context.Context, hash string) (block model.Block, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("raw_block", err, started)
	}()
	return o.client.RawBlock(ctx, hash)
}

func (o *ObservedClient) Tags(ctx context.Context, txID string) (tags map[string]string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("tags", err, started)
	}()
	return o.client.Tags(ctx, txID)
}

func (o *ObservedClient) Transaction(ctx context.Context, txID string) (tx model.Transaction, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("transaction", err, started)
	}()
	return o.client.Transaction(ctx, txID)
}

func (o *ObservedClient) Status(ctx context.Context, txID string) (status TxStatus, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("status", err, started)
	}()
	return o.client.Status(ctx, txID)
}

func (o *ObservedClient) Arql(ctx context.Context, query json.RawMessage) (ids []string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("arql", err, started)
		if elapsed := time.Since(started); elapsed > slowQueryThreshold {
			o.logger.Warn("slow arql query",
				zap.Duration("elapsed", elapsed),
				zap.ByteString("query", query),
				zap.Int("results", len(ids)),
			)
		}
	}()
	return o.client.Arql(ctx, query)
}

func (o *ObservedClient) TxAnchor(ctx context.Context) (anchor string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("tx_anchor", err, started)
	}()
	return o.client.TxAnchor(ctx)
}

func (o *ObservedClient) SubmitTransaction(ctx context.Context, tx model.SignedTransaction) (err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("submit_transaction", err, started)
	}()
	return o.client.SubmitTransaction(ctx, tx)
}
