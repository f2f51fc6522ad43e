// Package model defines domain models shared by the forum indexer.
package model

import "time"

// Block represents a ledger block as returned by the node.
type Block struct {
	Hash          string
	PreviousBlock string
	Height        uint64
	Timestamp     time.Time
	Size          uint64
	TxIDs         []string
}

// WatchedBlock is a block held in the sync window along with the tags
// fetched for its transactions. A present key with a nil map means the
// fetch was attempted and failed, an absent key means it was never attempted.
type WatchedBlock struct {
	Hash  string
	Block Block
	Tags  map[string]map[string]string
}

// NewWatchedBlock wraps a freshly fetched block with an empty tag map.
func NewWatchedBlock(b Block) WatchedBlock {
	return WatchedBlock{
		Hash:  b.Hash,
		Block: b,
		Tags:  make(map[string]map[string]string, len(b.TxIDs)),
	}
}

// MissingTags returns the ids of transactions whose tags were never fetched
// or whose last fetch failed.
func (w WatchedBlock) MissingTags() []string {
	missing := make([]string, 0)
	for _, id := range w.Block.TxIDs {
		if tags, ok := w.Tags[id]; !ok || tags == nil {
			missing = append(missing, id)
		}
	}
	return missing
}

// Clone returns a copy that shares no maps with w.
func (w WatchedBlock) Clone() WatchedBlock {
	out := WatchedBlock{
		Hash:  w.Hash,
		Block: w.Block,
		Tags:  make(map[string]map[string]string, len(w.Tags)),
	}
	out.Block.TxIDs = append([]string(nil), w.Block.TxIDs...)
	for id, tags := range w.Tags {
		if tags == nil {
			out.Tags[id] = nil
			continue
		}
		cp := make(map[string]string, len(tags))
		for k, v := range tags {
			cp[k] = v
		}
		out.Tags[id] = cp
	}
	return out
}

// SyncResult is produced once per sync cycle and handed to subscribers.
type SyncResult struct {
	// Synced is the number of new blocks at the head of List.
	Synced int
	// List is the held window, newest first.
	List   []WatchedBlock
	Missed bool
	Reorg  bool
	// Discarded holds blocks that left the canonical chain on a reorg.
	Discarded []WatchedBlock
}

// NewBlocks returns the blocks added by this cycle.
func (r SyncResult) NewBlocks() []WatchedBlock {
	n := r.Synced
	if n > len(r.List) {
		n = len(r.List)
	}
	return r.List[:n]
}

// Clone deep copies the result so the receiver may keep mutating its own window.
func (r SyncResult) Clone() SyncResult {
	out := SyncResult{
		Synced: r.Synced,
		Missed: r.Missed,
		Reorg:  r.Reorg,
		List:   cloneBlocks(r.List),
	}
	if r.Discarded != nil {
		out.Discarded = cloneBlocks(r.Discarded)
	}
	return out
}

func cloneBlocks(in []WatchedBlock) []WatchedBlock {
	out := make([]WatchedBlock, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
