// Package query builds ARQL filters for forum items and runs them against a node.
package query

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
)

// ErrEmptyExpr is returned when compiling an expression with no operands.
var ErrEmptyExpr = errors.New("empty arql expression")

const (
	opEquals = "equals"
	opAnd    = "and"
	opOr     = "or"
)

// Expr is a node of an ARQL filter. Equals leaves hold a tag name and
// value, and/or nodes hold two sub expressions.
type Expr struct {
	Op    string `json:"op"`
	Expr1 any    `json:"expr1"`
	Expr2 any    `json:"expr2"`
}

// IsZero reports whether e was built from no operands.
func (e Expr) IsZero() bool { return e.Op == "" }

// Equals matches transactions carrying the tag name with the given value.
func Equals(name, value string) Expr {
	return Expr{Op: opEquals, Expr1: name, Expr2: value}
}

// And matches transactions matched by every operand.
func And(exprs ...Expr) Expr { return fold(opAnd, exprs) }

// Or matches transactions matched by any operand.
func Or(exprs ...Expr) Expr { return fold(opOr, exprs) }

// fold joins operands pairwise from the left: (a, b, c) becomes op(op(a, b), c).
func fold(op string, exprs []Expr) Expr {
	acc := Expr{}
	for _, e := range exprs {
		if e.IsZero() {
			continue
		}
		if acc.IsZero() {
			acc = e
			continue
		}
		acc = Expr{Op: op, Expr1: acc, Expr2: e}
	}
	return acc
}

// Compile renders e as the JSON document the arql endpoint accepts.
func Compile(e Expr) (json.RawMessage, error) {
	if e.IsZero() {
		return nil, ErrEmptyExpr
	}
	return json.Marshal(e)
}

func forumItem(version string) Expr {
	return And(
		Equals(schema.TagAppName, schema.AppName),
		Equals(schema.TagVersion, version),
		Or(
			Equals(schema.TagTxType, string(schema.TxTypePost)),
			Equals(schema.TagTxType, string(schema.TxTypeVote)),
			Equals(schema.TagTxType, string(schema.TxTypePostEdit)),
		),
	)
}

func refCounts(from, to int) Expr {
	counts := make([]Expr, 0, to-from)
	for n := from; n < to; n++ {
		counts = append(counts, Equals(schema.TagRefToCount, strconv.Itoa(n)))
	}
	return Or(counts...)
}

// Forum matches items of one category down to depth levels below the thread
// roots. No segments matches every category; depth below 1 is taken as 1.
func Forum(segments []string, depth int, version string) Expr {
	if depth < 1 {
		depth = 1
	}
	parts := []Expr{forumItem(version)}
	if len(segments) > 0 {
		parts = append(parts, Equals(schema.PathTag(0), schema.EncodePath(segments)))
	}
	parts = append(parts, refCounts(0, depth))
	return And(parts...)
}

// Thread matches replies, edits and votes below rootID down to depth levels.
// A depth below 1 matches the whole thread.
func Thread(rootID string, depth int, version string) Expr {
	parts := []Expr{forumItem(version), Equals(schema.RefToTag(0), rootID)}
	if depth > 0 {
		parts = append(parts, refCounts(1, depth+1))
	}
	return And(parts...)
}

// ArweaveID matches name registrations made by address.
func ArweaveID(address string) Expr {
	return And(Equals(schema.TagAppName, arweaveIDApp), Equals("from", address))
}

const arweaveIDApp = "arweave-id"
