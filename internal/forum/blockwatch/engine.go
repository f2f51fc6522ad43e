// Package blockwatch follows the chain head and keeps a short window of
// recent blocks with their transaction tags.
package blockwatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
)

// ErrInvalidBlock is returned when the node answers with a block that cannot
// be linked into the chain.
var ErrInvalidBlock = errors.New("invalid raw block")

// SyncFromHash walks back from tip until it links to current, the held window
// newest first, and returns the new window capped at max blocks. current is
// never modified. A fetch failure aborts the walk and discards its progress.
func SyncFromHash(ctx context.Context, source Source, tip string, max int, current []model.WatchedBlock) (model.SyncResult, error) {
	if max < 1 {
		return model.SyncResult{}, fmt.Errorf("blocks to sync must be positive, got %d", max)
	}
	if len(current) > 0 && current[0].Hash == tip {
		return model.SyncResult{List: current}, nil
	}
	// The head moved back onto a block we already hold.
	if idx := indexOf(current, tip); idx > 0 {
		return model.SyncResult{
			List:      truncate(current[idx:], max),
			Reorg:     true,
			Discarded: append([]model.WatchedBlock(nil), current[:idx]...),
		}, nil
	}

	walked := make([]model.WatchedBlock, 0, max)
	hash := tip
	for i := 0; i < max; i++ {
		if err := ctx.Err(); err != nil {
			return model.SyncResult{}, err
		}
		block, err := source.RawBlock(ctx, hash)
		if err != nil {
			return model.SyncResult{}, fmt.Errorf("fetch block %s: %w", hash, err)
		}
		if block.Hash == "" {
			block.Hash = hash
		}
		if block.Hash != hash {
			return model.SyncResult{}, fmt.Errorf("%w: asked for %s, got %s", ErrInvalidBlock, hash, block.Hash)
		}
		walked = append(walked, model.NewWatchedBlock(block))

		switch idx := indexOf(current, block.PreviousBlock); {
		case idx == 0:
			return model.SyncResult{
				Synced: len(walked),
				List:   truncate(concat(walked, current), max),
			}, nil
		case idx > 0:
			return model.SyncResult{
				Synced:    len(walked),
				List:      truncate(concat(walked, current[idx:]), max),
				Reorg:     true,
				Discarded: append([]model.WatchedBlock(nil), current[:idx]...),
			}, nil
		}

		if block.PreviousBlock == "" {
			if len(current) > 0 {
				return model.SyncResult{}, fmt.Errorf("%w: block %s has no previous block", ErrInvalidBlock, hash)
			}
			break
		}
		hash = block.PreviousBlock
	}

	// An empty window is an initial fill, not a gap.
	return model.SyncResult{
		Synced: len(walked),
		List:   walked,
		Missed: len(current) > 0,
	}, nil
}

func indexOf(blocks []model.WatchedBlock, hash string) int {
	if hash == "" {
		return -1
	}
	for i, b := range blocks {
		if b.Hash == hash {
			return i
		}
	}
	return -1
}

func concat(head, tail []model.WatchedBlock) []model.WatchedBlock {
	out := make([]model.WatchedBlock, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

func truncate(blocks []model.WatchedBlock, max int) []model.WatchedBlock {
	if len(blocks) > max {
		blocks = blocks[:max]
	}
	return append([]model.WatchedBlock(nil), blocks...)
}
