// Package arweave talks to an Arweave gateway over its HTTP API.
package arweave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for unknown blocks and transactions.
	ErrNotFound = errors.New("not found")
	// ErrPending is returned when a transaction is known but not yet mined.
	ErrPending = errors.New("transaction pending")
	// ErrMalformed is returned when the gateway answers with a body that cannot be decoded.
	ErrMalformed = errors.New("malformed response")
)

// TxStatus describes a mined transaction.
type TxStatus struct {
	BlockHeight   uint64
	BlockHash     string
	Confirmations uint64
}

// Client is a thin gateway client. It performs no retries.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a client for the gateway at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("arweave gateway url is required")
	}
	logger = logger.Named("arweave").With(zap.String("gateway", baseURL))
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())
	return &Client{http: rc, logger: logger}, nil
}

// CurrentTip returns the hash of the current chain head.
func (c *Client) CurrentTip(ctx context.Context) (string, error) {
	var info networkInfo
	if err := c.getJSON(ctx, "/info", &info); err != nil {
		return "", fmt.Errorf("get network info: %w", err)
	}
	if info.Current == "" {
		return "", fmt.Errorf("get network info: %w: empty current block", ErrMalformed)
	}
	return info.Current, nil
}

// RawBlock fetches a block by its independent hash.
func (c *Client) RawBlock(ctx context.Context, hash string) (model.Block, error) {
	var b blockDTO
	if err := c.getJSON(ctx, "/block/hash/"+hash, &b); err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	block, err := b.toModel()
	if err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	return block, nil
}

// Tags fetches the decoded tags of a transaction. Later duplicate names win.
func (c *Client) Tags(ctx context.Context, txID string) (map[string]string, error) {
	var raw []tagDTO
	if err := c.getJSON(ctx, "/tx/"+txID+"/tags", &raw); err != nil {
		return nil, fmt.Errorf("get tags %s: %w", txID, err)
	}
	tags, err := decodeTags(raw)
	if err != nil {
		return nil, fmt.Errorf("get tags %s: %w", txID, err)
	}
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		out[t.Name] = t.Value
	}
	return out, nil
}

// Transaction fetches a full transaction including its data.
func (c *Client) Transaction(ctx context.Context, txID string) (model.Transaction, error) {
	var tx transactionDTO
	if err := c.getJSON(ctx, "/tx/"+txID, &tx); err != nil {
		return model.Transaction{}, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	out, err := tx.toModel()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	return out, nil
}

// Status reports where a transaction was mined. Pending transactions return ErrPending.
func (c *Client) Status(ctx context.Context, txID string) (TxStatus, error) {
	var st statusDTO
	if err := c.getJSON(ctx, "/tx/"+txID+"/status", &st); err != nil {
		return TxStatus{}, fmt.Errorf("get status %s: %w", txID, err)
	}
	return TxStatus{
		BlockHeight:   st.BlockHeight,
		BlockHash:     st.BlockIndepHash,
		Confirmations: st.Confirmations,
	}, nil
}

// Arql runs an ARQL query and returns the matching transaction ids.
func (c *Client) Arql(ctx context.Context, query json.RawMessage) ([]string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(query)).
		Post("/arql")
	if err != nil {
		return nil, fmt.Errorf("run arql: %w", err)
	}
	if err := checkStatus(res); err != nil {
		return nil, fmt.Errorf("run arql: %w", err)
	}
	body := strings.TrimSpace(res.String())
	if body == "" || body == "null" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(res.Body(), &ids); err != nil {
		return nil, fmt.Errorf("run arql: %w: %v", ErrMalformed, err)
	}
	return ids, nil
}

// TxAnchor returns the anchor new transactions must reference.
func (c *Client) TxAnchor(ctx context.Context) (string, error) {
	res, err := c.http.R().SetContext(ctx).Get("/tx_anchor")
	if err != nil {
		return "", fmt.Errorf("get tx anchor: %w", err)
	}
	if err := checkStatus(res); err != nil {
		return "", fmt.Errorf("get tx anchor: %w", err)
	}
	anchor := strings.TrimSpace(res.String())
	if anchor == "" {
		return "", fmt.Errorf("get tx anchor: %w: empty anchor", ErrMalformed)
	}
	return anchor, nil
}

// SubmitTransaction posts a signed transaction.
func (c *Client) SubmitTransaction(ctx context.Context, tx model.SignedTransaction) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tx.Body).
		Post("/tx")
	if err != nil {
		return fmt.Errorf("submit transaction %s: %w", tx.ID, err)
	}
	if err := checkStatus(res); err != nil {
		return fmt.Errorf("submit transaction %s: %w", tx.ID, err)
	}
	c.logger.Info("transaction submitted", zap.String("tx_id", tx.ID))
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	res, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return err
	}
	if err := checkStatus(res); err != nil {
		return err
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func checkStatus(res *resty.Response) error {
	switch res.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusAccepted:
		return ErrPending
	case http.StatusNotFound, http.StatusGone:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", res.StatusCode())
	}
}

type networkInfo struct {
	Current string `json:"current"`
}

type blockDTO struct {
	IndepHash     string      `json:"indep_hash"`
	PreviousBlock string      `json:"previous_block"`
	Height        json.Number `json:"height"`
	Timestamp     json.Number `json:"timestamp"`
	Txs           []string    `json:"txs"`
	BlockSize     json.Number `json:"block_size"`
}

func (b blockDTO) toModel() (model.Block, error) {
	if b.IndepHash == "" {
		return model.Block{}, fmt.Errorf("%w: block without hash", ErrMalformed)
	}
	height, err := parseUint(b.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("%w: height: %v", ErrMalformed, err)
	}
	ts, err := parseUint(b.Timestamp)
	if err != nil {
		return model.Block{}, fmt.Errorf("%w: timestamp: %v", ErrMalformed, err)
	}
	size, err := parseUint(b.BlockSize)
	if err != nil {
		return model.Block{}, fmt.Errorf("%w: block_size: %v", ErrMalformed, err)
	}
	txs := b.Txs
	if txs == nil {
		txs = []string{}
	}
	return model.Block{
		Hash:          b.IndepHash,
		PreviousBlock: b.PreviousBlock,
		Height:        height,
		Timestamp:     time.Unix(int64(ts), 0).UTC(),
		Size:          size,
		TxIDs:         txs,
	}, nil
}

func parseUint(n json.Number) (uint64, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.ParseUint(n.String(), 10, 64)
}

type tagDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func decodeTags(raw []tagDTO) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(raw))
	for _, t := range raw {
		name, err := DecodeBase64URL(t.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: tag name: %v", ErrMalformed, err)
		}
		value, err := DecodeBase64URL(t.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: tag value: %v", ErrMalformed, err)
		}
		out = append(out, model.Tag{Name: string(name), Value: string(value)})
	}
	return out, nil
}

type transactionDTO struct {
	ID       string   `json:"id"`
	Owner    string   `json:"owner"`
	Target   string   `json:"target"`
	Quantity string   `json:"quantity"`
	Reward   string   `json:"reward"`
	Tags     []tagDTO `json:"tags"`
	Data     string   `json:"data"`
}

func (t transactionDTO) toModel() (model.Transaction, error) {
	tags, err := decodeTags(t.Tags)
	if err != nil {
		return model.Transaction{}, err
	}
	quantity, err := parseWinston(t.Quantity)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: quantity: %v", ErrMalformed, err)
	}
	reward, err := parseWinston(t.Reward)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: reward: %v", ErrMalformed, err)
	}
	data, err := DecodeBase64URL(t.Data)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: data: %v", ErrMalformed, err)
	}
	return model.Transaction{
		ID:       t.ID,
		Owner:    t.Owner,
		Target:   t.Target,
		Quantity: quantity,
		Reward:   reward,
		Tags:     tags,
		Data:     data,
	}, nil
}

func parseWinston(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

type statusDTO struct {
	BlockHeight    uint64 `json:"block_height"`
	BlockIndepHash string `json:"block_indep_hash"`
	Confirmations  uint64 `json:"number_of_confirmations"`
}
