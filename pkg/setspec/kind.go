package setspec

import "fmt"

// Kind identifies the type of entity a handle points at.
type Kind string

const (
	// KindCommunity identifies a top-level organizational node.
	KindCommunity Kind = "community"

	// KindCollection identifies a collection of items.
	KindCollection Kind = "collection"

	// KindItem identifies a single item. Items are never advertised as sets.
	KindItem Kind = "item"
)

// SetKinds returns the kinds that may be advertised as sets, in listing
// order.
func SetKinds() []Kind {
	return []Kind{KindCommunity, KindCollection}
}

// IsSetKind returns true if entities of this kind can be advertised as sets.
func (k Kind) IsSetKind() bool {
	switch k {
	case KindCommunity, KindCollection:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// prefix returns the spec prefix for a set kind.
func (k Kind) prefix() (string, error) {
	switch k {
	case KindCommunity:
		return CommunityPrefix, nil
	case KindCollection:
		return CollectionPrefix, nil
	default:
		return "", fmt.Errorf("kind %q cannot be encoded as a set spec (valid: %v)",
			k, SetKinds())
	}
}
