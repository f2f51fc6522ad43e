// Package compose creates, signs and submits new forum items.
package compose

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/arweave"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoAuthor is returned when upvoting a post whose author is unknown.
var ErrNoAuthor = errors.New("cannot upvote without the author's address")

// Publisher turns user actions into signed transactions and registers them as pending.
type Publisher struct {
	logger  *zap.Logger
	ledger  Ledger
	signer  Signer
	tracker Tracker
	builder schema.Builder
	now     func() time.Time
}

// NewPublisher builds a Publisher writing items of the given schema version.
func NewPublisher(ledger Ledger, signer Signer, tracker Tracker, version string, logger *zap.Logger) (*Publisher, error) {
	if ledger == nil {
		return nil, errors.New("publisher ledger is required")
	}
	if signer == nil {
		return nil, errors.New("publisher signer is required")
	}
	if tracker == nil {
		return nil, errors.New("publisher tracker is required")
	}
	return &Publisher{
		logger:  logger.Named("publisher"),
		ledger:  ledger,
		signer:  signer,
		tracker: tracker,
		builder: schema.NewBuilder(version),
		now:     time.Now,
	}, nil
}

// PublishPost starts a thread in the category and returns its id.
func (p *Publisher) PublishPost(ctx context.Context, segments []string, content string, opts schema.PostOptions) (string, error) {
	tags, err := p.builder.Post(segments, opts, p.now())
	if err != nil {
		return "", err
	}
	return p.publish(ctx, tags, draft{data: content}, p.tracker.AddPost)
}

// PublishReply replies to target, which may be an edit of the post replied to.
func (p *Publisher) PublishReply(ctx context.Context, target schema.Target, content string, opts schema.PostOptions) (string, error) {
	tags, err := p.builder.Reply(target, opts, p.now())
	if err != nil {
		return "", err
	}
	return p.publish(ctx, tags, draft{data: content}, p.tracker.AddPost)
}

// PublishEdit submits a new revision of the original post.
func (p *Publisher) PublishEdit(ctx context.Context, original schema.Target, content string, opts schema.PostOptions) (string, error) {
	tags, err := p.builder.Edit(original, opts, p.now())
	if err != nil {
		return "", err
	}
	return p.publish(ctx, tags, draft{data: content}, p.tracker.AddEdit)
}

// PublishVote votes on target. An upvote pays the stake to author, a
// downvote burns it as the transaction reward.
func (p *Publisher) PublishVote(ctx context.Context, target schema.Target, author string, up bool) (string, error) {
	vote := schema.VoteDown
	if up {
		vote = schema.VoteUp
		if author == "" {
			return "", ErrNoAuthor
		}
	}
	tags, err := p.builder.Vote(target, vote, p.now())
	if err != nil {
		return "", err
	}
	d := draft{data: string(vote)}
	if up {
		d.target = author
		d.quantity = schema.VoteCost
	} else {
		d.reward = schema.VoteCost
	}
	return p.publish(ctx, tags, d, p.tracker.AddVote)
}

type draft struct {
	data     string
	target   string
	quantity decimal.Decimal
	reward   decimal.Decimal
}

func (p *Publisher) publish(ctx context.Context, tags map[string]string, d draft, track func(context.Context, model.TransactionInfo) error) (string, error) {
	anchor, err := p.ledger.TxAnchor(ctx)
	if err != nil {
		return "", fmt.Errorf("get tx anchor: %w", err)
	}
	signed, err := p.signer.Sign(ctx, model.UnsignedTransaction{
		Anchor:   anchor,
		Target:   d.target,
		Quantity: d.quantity,
		Reward:   d.reward,
		Tags:     tagList(tags),
		Data:     []byte(d.data),
	})
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	if signed.ID == "" {
		return "", errors.New("signer returned a transaction without id")
	}
	owner, err := arweave.OwnerToAddress(signed.Owner)
	if err != nil {
		return "", fmt.Errorf("signed transaction owner: %w", err)
	}
	if err := p.ledger.SubmitTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("submit transaction %s: %w", signed.ID, err)
	}
	logger := p.logger.With(zap.String("tx_id", signed.ID), zap.String("tx_type", tags[schema.TagTxType]))
	logger.Info("transaction submitted")

	content := d.data
	item := model.TransactionInfo{
		ID:           signed.ID,
		Tags:         tags,
		OwnerAddress: owner,
		Target:       d.target,
		Quantity:     d.quantity,
		Reward:       d.reward,
		Content:      &content,
	}
	if err := track(ctx, item); err != nil {
		// The transaction is out, so it will be picked up once mined.
		logger.Warn("submitted item not shown as pending", zap.Error(err))
	}
	return signed.ID, nil
}

// tagList orders tags by name so signatures are reproducible.
func tagList(tags map[string]string) []model.Tag {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]model.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, model.Tag{Name: name, Value: tags[name]})
	}
	return out
}
