// Package schema holds the tag wire format shared with every other forum client.
package schema

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// TxType is the declared kind of a forum item.
type TxType string

const (
	TxTypePost     TxType = "P"
	TxTypePostEdit TxType = "PE"
	TxTypeVote     TxType = "V"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "+"
	VoteDown VoteType = "-"
)

const (
	TagTxType      = "txType"
	TagVersion     = "DFV"
	TagAppName     = "App-Name"
	TagVoteType    = "voteType"
	TagWasToPE     = "wasToPe"
	TagFormat      = "format"
	TagDescription = "description"
	TagSegCount    = "segCount"
	TagRefToCount  = "refToCount"

	// AppName is the App-Name every forum item carries.
	AppName = "decent-a-forum"
	// DefaultVersion is the DFV value written and accepted unless configured otherwise.
	DefaultVersion = "1"

	// FormatPlaintext is the only post format produced by this module.
	FormatPlaintext = "Plaintext"
)

// WinstonPerAR is the number of winston in one AR.
var WinstonPerAR = decimal.New(1, 12)

// VoteCost is the stake carried by a vote, 0.1 AR in winston.
var VoteCost = ARToWinston(decimal.RequireFromString("0.1"))

// ARToWinston converts an AR amount to winston.
func ARToWinston(ar decimal.Decimal) decimal.Decimal {
	return ar.Mul(WinstonPerAR).Truncate(0)
}

// PathTag returns the name of the k-th path tag.
func PathTag(k int) string { return "path" + strconv.Itoa(k) }

// SegmentTag returns the name of the k-th segment tag.
func SegmentTag(k int) string { return "segment" + strconv.Itoa(k) }

// RefToTag returns the name of the k-th ancestor reference tag.
func RefToTag(k int) string { return "refTo" + strconv.Itoa(k) }

// TxTypeOf returns the declared type of an item.
func TxTypeOf(tags map[string]string) TxType {
	return TxType(tags[TagTxType])
}

// IsForumItem reports whether tags describe a post, edit or vote of the given schema version.
func IsForumItem(tags map[string]string, version string) bool {
	if tags == nil || tags[TagVersion] != version {
		return false
	}
	switch TxTypeOf(tags) {
	case TxTypePost, TxTypePostEdit, TxTypeVote:
		return true
	default:
		return false
	}
}

// UpgradeLegacy rewrites tags written by early clients to the current names.
// The input map is not modified.
func UpgradeLegacy(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	for k, v := range tags {
		if len(k) > len("pathSegement") && k[:len("pathSegement")] == "pathSegement" {
			delete(out, k)
			out["pathSegment"+k[len("pathSegement"):]] = v
		}
	}
	if title, ok := out["title"]; ok {
		if _, has := out[TagDescription]; !has {
			out[TagDescription] = title
		}
		delete(out, "title")
	}
	if out[TagFormat] == "plaintext" {
		out[TagFormat] = FormatPlaintext
		if out[TagTxType] == "" {
			out[TagTxType] = string(TxTypePost)
		}
	}
	return out
}

func copyTags(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
