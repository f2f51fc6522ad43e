package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"go.uber.org/zap"
)

// Querier runs filters against a node.
type Querier struct {
	logger  *zap.Logger
	source  Source
	version string
}

// NewQuerier builds a Querier for items of the given schema version.
func NewQuerier(source Source, version string, logger *zap.Logger) (*Querier, error) {
	if source == nil {
		return nil, errors.New("querier source is required")
	}
	if version == "" {
		version = schema.DefaultVersion
	}
	return &Querier{logger: logger.Named("querier"), source: source, version: version}, nil
}

// Run compiles e and returns the matching transaction ids.
func (q *Querier) Run(ctx context.Context, e Expr) ([]string, error) {
	body, err := Compile(e)
	if err != nil {
		return nil, err
	}
	ids, err := q.source.Arql(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("arql query: %w", err)
	}
	return ids, nil
}

// QueryForum returns the thread roots of a category, and their replies down
// to depth, along with their edits and votes.
func (q *Querier) QueryForum(ctx context.Context, segments []string, depth int) ([]string, error) {
	ids, err := q.Run(ctx, Forum(segments, depth, q.version))
	if err != nil {
		return nil, err
	}
	q.logger.Info("queried forum", zap.String("path", schema.EncodePath(segments)), zap.Int("results", len(ids)))
	return ids, nil
}

// QueryThread returns rootID followed by the items below it.
func (q *Querier) QueryThread(ctx context.Context, rootID string, depth int) ([]string, error) {
	if rootID == "" {
		return nil, errors.New("thread root id is required")
	}
	ids, err := q.Run(ctx, Thread(rootID, depth, q.version))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, rootID)
	for _, id := range ids {
		if id != rootID {
			out = append(out, id)
		}
	}
	q.logger.Debug("queried thread", zap.String("root", rootID), zap.Int("results", len(out)))
	return out, nil
}

// QueryArweaveID returns the handle address registered, or "" when it has
// none or the lookup fails.
func (q *Querier) QueryArweaveID(ctx context.Context, address string) string {
	ids, err := q.Run(ctx, ArweaveID(address))
	if err != nil {
		q.logger.Debug("arweave id lookup failed", zap.String("address", address), zap.Error(err))
		return ""
	}
	if len(ids) == 0 {
		return ""
	}
	tx, err := q.source.Transaction(ctx, ids[0])
	if err != nil {
		q.logger.Debug("arweave id transaction not fetched", zap.String("tx_id", ids[0]), zap.Error(err))
		return ""
	}
	return string(tx.Data)
}
