package schema

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrRootReference is returned when asking a root chain for its parent.
	ErrRootReference = errors.New("root reference has no parent")
	// ErrMalformedRefChain is returned when refTo tags disagree with refToCount.
	ErrMalformedRefChain = errors.New("malformed reference chain")
)

// RefChain is the ordered list of ancestor ids of an item, thread root first.
type RefChain struct {
	refs []string
}

// NewRefChain builds a chain from ancestor ids, root first.
func NewRefChain(refs ...string) RefChain {
	return RefChain{refs: append([]string(nil), refs...)}
}

// Count is the depth of the item in its thread.
func (c RefChain) Count() int { return len(c.refs) }

// Refs returns a copy of the ancestor ids.
func (c RefChain) Refs() []string { return append([]string(nil), c.refs...) }

// IsRoot reports whether the chain has no ancestors.
func (c RefChain) IsRoot() bool { return len(c.refs) == 0 }

// Append returns a new chain one level deeper.
func (c RefChain) Append(id string) RefChain {
	refs := make([]string, len(c.refs), len(c.refs)+1)
	copy(refs, c.refs)
	return RefChain{refs: append(refs, id)}
}

// Parent returns the immediate ancestor.
func (c RefChain) Parent() (string, error) {
	if len(c.refs) == 0 {
		return "", ErrRootReference
	}
	return c.refs[len(c.refs)-1], nil
}

// Root returns the thread root id.
func (c RefChain) Root() (string, error) {
	if len(c.refs) == 0 {
		return "", ErrRootReference
	}
	return c.refs[0], nil
}

// Tags serializes the chain into refTo tags.
func (c RefChain) Tags() map[string]string {
	tags := make(map[string]string, len(c.refs)+1)
	for i, id := range c.refs {
		tags[RefToTag(i)] = id
	}
	tags[TagRefToCount] = strconv.Itoa(len(c.refs))
	return tags
}

// RefChainFromTags decodes refTo0..refTo{n-1} using refToCount as the depth.
// Missing refToCount means a root item.
func RefChainFromTags(tags map[string]string) (RefChain, error) {
	raw, ok := tags[TagRefToCount]
	if !ok || raw == "" {
		if _, has := tags[RefToTag(0)]; has {
			return RefChain{}, fmt.Errorf("%w: refTo0 without refToCount", ErrMalformedRefChain)
		}
		return RefChain{}, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return RefChain{}, fmt.Errorf("%w: refToCount %q", ErrMalformedRefChain, raw)
	}
	refs := make([]string, count)
	for i := 0; i < count; i++ {
		id, ok := tags[RefToTag(i)]
		if !ok || id == "" {
			return RefChain{}, fmt.Errorf("%w: missing %s", ErrMalformedRefChain, RefToTag(i))
		}
		refs[i] = id
	}
	return RefChain{refs: refs}, nil
}
