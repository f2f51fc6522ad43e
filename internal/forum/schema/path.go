package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	pathSeparator = '_'
	pathEscape    = '\\'
)

// ErrInvalidPath is returned when an encoded forum path cannot be tokenized.
var ErrInvalidPath = errors.New("invalid forum path")

// NormalizeSegment trims, NFC-normalizes and collapses whitespace runs to a single space.
func NormalizeSegment(segment string) string {
	s := norm.NFC.String(strings.TrimSpace(segment))
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteRune(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeSegments normalizes every segment of a path.
func NormalizeSegments(segments []string) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = NormalizeSegment(s)
	}
	return out
}

// EncodePath normalizes the segments, escapes separators and joins them.
// A segment ending in a backslash does not survive a round trip.
func EncodePath(segments []string) string {
	escaped := make([]string, len(segments))
	for i, s := range NormalizeSegments(segments) {
		escaped[i] = strings.ReplaceAll(s, string(pathSeparator), string([]rune{pathEscape, pathSeparator}))
	}
	return strings.Join(escaped, string(pathSeparator))
}

// DecodePath splits an encoded path on unescaped separators.
func DecodePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	runes := []rune(path)
	segments := make([]string, 0, 4)
	var cur strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case pathEscape:
			if i == len(runes)-1 {
				return nil, fmt.Errorf("%w: dangling escape in %q", ErrInvalidPath, path)
			}
			if runes[i+1] == pathSeparator {
				cur.WriteRune(pathSeparator)
				i++
				continue
			}
			cur.WriteRune(r)
		case pathSeparator:
			if cur.Len() == 0 {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
			}
			segments = append(segments, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() == 0 {
		return nil, fmt.Errorf("%w: trailing separator in %q", ErrInvalidPath, path)
	}
	return append(segments, cur.String()), nil
}

// PathVariants returns the encoded path at every depth, full path first.
func PathVariants(segments []string) []string {
	out := make([]string, 0, len(segments))
	for k := 0; k < len(segments); k++ {
		out = append(out, EncodePath(segments[:len(segments)-k]))
	}
	return out
}

// PathTags returns the denormalized path tags for the segments.
func PathTags(segments []string) map[string]string {
	normalized := NormalizeSegments(segments)
	tags := make(map[string]string, 2*len(normalized)+1)
	for k, p := range PathVariants(normalized) {
		tags[PathTag(k)] = p
	}
	for k, s := range normalized {
		tags[SegmentTag(k)] = s
	}
	tags[TagSegCount] = strconv.Itoa(len(normalized))
	return tags
}

// CopyPathTags copies every path, segment and segCount tag from src to dst.
func CopyPathTags(src, dst map[string]string) {
	for k, v := range src {
		if strings.HasPrefix(k, "path") || strings.HasPrefix(k, "segment") || k == TagSegCount {
			dst[k] = v
		}
	}
}

// SegmentsFromTags reads the forum path of an item, preferring the segment
// tags and falling back to decoding path0.
func SegmentsFromTags(tags map[string]string) ([]string, error) {
	if raw, ok := tags[TagSegCount]; ok {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: segCount %q", ErrInvalidPath, raw)
		}
		segments := make([]string, 0, count)
		for k := 0; k < count; k++ {
			s, ok := tags[SegmentTag(k)]
			if !ok {
				break
			}
			segments = append(segments, s)
		}
		if count > 0 && len(segments) == count {
			return segments, nil
		}
	}
	path, ok := tags[PathTag(0)]
	if !ok {
		return nil, fmt.Errorf("%w: no path tags", ErrInvalidPath)
	}
	return DecodePath(path)
}
