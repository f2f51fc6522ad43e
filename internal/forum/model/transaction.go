package model

import "github.com/shopspring/decimal"

// Tag is a single name/value pair attached to a ledger transaction.
type Tag struct {
	Name  string
	Value string
}

// Transaction is a ledger transaction body as returned by the node.
type Transaction struct {
	ID       string
	Owner    string
	Target   string
	Quantity decimal.Decimal
	Reward   decimal.Decimal
	Tags     []Tag
	Data     []byte
}

// TagMap flattens the tag list. Later duplicates win.
func (t Transaction) TagMap() map[string]string {
	out := make(map[string]string, len(t.Tags))
	for _, tag := range t.Tags {
		out[tag.Name] = tag.Value
	}
	return out
}

// TransactionInfo is a decoded forum item ready for cache ingestion.
type TransactionInfo struct {
	ID           string
	Tags         map[string]string
	OwnerAddress string
	Target       string
	// Quantity and Reward are winston amounts carrying vote stake.
	Quantity    decimal.Decimal
	Reward      decimal.Decimal
	Content     *string
	IsPendingTx bool
}

// UnsignedTransaction is handed to a signer before submission.
type UnsignedTransaction struct {
	Anchor   string
	Target   string
	Quantity decimal.Decimal
	Reward   decimal.Decimal
	Tags     []Tag
	Data     []byte
}

// SignedTransaction is the signer output. Body is the JSON document the node accepts.
type SignedTransaction struct {
	ID    string
	Owner string
	Body  []byte
}
