package schema

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyForumPath is returned when building a thread for no category.
var ErrEmptyForumPath = errors.New("cannot post to empty path")

// PostOptions are the caller supplied post tags.
type PostOptions struct {
	Format      string
	Description string
}

// Target is the original item a reply, edit or vote attaches to.
type Target struct {
	ID   string
	Tags map[string]string
	// ViewedID is the item the user acted on when it was an edit of ID.
	ViewedID string
}

// Builder produces tags for new forum items of one schema version.
type Builder struct {
	version string
}

// NewBuilder returns a Builder writing the given DFV value.
func NewBuilder(version string) Builder {
	if version == "" {
		version = DefaultVersion
	}
	return Builder{version: version}
}

// Version is the DFV value written by the builder.
func (b Builder) Version() string { return b.version }

// Post returns the tags of a new thread in the given category.
func (b Builder) Post(segments []string, opts PostOptions, now time.Time) (map[string]string, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyForumPath
	}
	tags := b.base(TxTypePost, now)
	applyOptions(tags, opts)
	copyTags(tags, PathTags(segments))
	copyTags(tags, RefChain{}.Tags())
	return tags, nil
}

// Reply returns the tags of a reply to target.
func (b Builder) Reply(target Target, opts PostOptions, now time.Time) (map[string]string, error) {
	return b.attached(TxTypePost, target, opts, now)
}

// Edit returns the tags of a new revision of target.
func (b Builder) Edit(target Target, opts PostOptions, now time.Time) (map[string]string, error) {
	return b.attached(TxTypePostEdit, target, opts, now)
}

// Vote returns the tags of a vote on target. Stake travels in the
// transaction quantity or reward, never in a tag.
func (b Builder) Vote(target Target, vote VoteType, now time.Time) (map[string]string, error) {
	tags, err := b.attached(TxTypeVote, target, PostOptions{}, now)
	if err != nil {
		return nil, err
	}
	tags[TagVoteType] = string(vote)
	return tags, nil
}

func (b Builder) attached(txType TxType, target Target, opts PostOptions, now time.Time) (map[string]string, error) {
	if target.ID == "" {
		return nil, errors.New("target id is required")
	}
	chain, err := RefChainFromTags(target.Tags)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", target.ID, err)
	}
	tags := b.base(txType, now)
	applyOptions(tags, opts)
	CopyPathTags(target.Tags, tags)
	copyTags(tags, chain.Append(target.ID).Tags())
	if target.ViewedID != "" && target.ViewedID != target.ID {
		tags[TagWasToPE] = target.ViewedID
	}
	return tags, nil
}

func (b Builder) base(txType TxType, now time.Time) map[string]string {
	tags := DateTags(now)
	tags[TagAppName] = AppName
	tags[TagVersion] = b.version
	tags[TagTxType] = string(txType)
	return tags
}

func applyOptions(tags map[string]string, opts PostOptions) {
	if opts.Format != "" {
		tags[TagFormat] = opts.Format
	}
	if opts.Description != "" {
		tags[TagDescription] = opts.Description
	}
}
