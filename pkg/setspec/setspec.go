package setspec

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CommunityPrefix is prepended to community set specs.
	CommunityPrefix = "com_"

	// CollectionPrefix is prepended to collection set specs.
	CollectionPrefix = "col_"

	// LegacyPrefix is the kind-less prefix used by older releases. It is only
	// accepted when decoding.
	LegacyPrefix = "hdl_"

	// handleSeparator separates the naming authority from the local name.
	handleSeparator = "/"

	// separatorFiller replaces handleSeparator inside a spec.
	separatorFiller = "_"
)

var (
	// ErrEmptySpec is returned by Parse for an empty spec.
	ErrEmptySpec = errors.New("set spec cannot be empty")

	// ErrUnknownPrefix is returned by Parse when a spec carries none of the
	// known prefixes.
	ErrUnknownPrefix = errors.New("set spec has no recognized prefix")
)

// Spec is a parsed set spec. Specs are immutable once created.
type Spec struct {
	kind   Kind
	handle string
}

// New creates a spec for a handle of the given kind.
func New(kind Kind, handle string) (Spec, error) {
	if handle == "" {
		return Spec{}, fmt.Errorf("handle cannot be empty")
	}
	if _, err := kind.prefix(); err != nil {
		return Spec{}, err
	}
	return Spec{kind: kind, handle: handle}, nil
}

// Kind returns the entity kind encoded in the spec. Legacy specs return an
// empty kind.
func (s Spec) Kind() Kind {
	return s.kind
}

// Handle returns the decoded handle.
func (s Spec) Handle() string {
	return s.handle
}

// IsZero returns true if this is a zero Spec.
func (s Spec) IsZero() bool {
	return s.kind == "" && s.handle == ""
}

// String returns the encoded set spec. Legacy specs are re-encoded with the
// legacy prefix.
func (s Spec) String() string {
	if s.IsZero() {
		return ""
	}
	return Format(s.kind, s.handle)
}

// Encode returns the set spec for a handle of the given kind.
func Encode(kind Kind, handle string) (string, error) {
	s, err := New(kind, handle)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// Format returns the set spec for a handle without validating it. Kinds
// that cannot be advertised as sets get the legacy prefix.
func Format(kind Kind, handle string) string {
	prefix, err := kind.prefix()
	if err != nil {
		prefix = LegacyPrefix
	}
	return prefix + encodeHandle(handle)
}

// Decode recovers a candidate handle from a set spec. It strips one known
// prefix and restores the handle separators. Decode never fails; the result
// may name a handle that does not exist.
func Decode(spec string) string {
	_, rest := splitPrefix(spec)
	return decodeHandle(rest)
}

// Parse parses a set spec, returning ErrUnknownPrefix if the spec does not
// start with a known prefix.
func Parse(spec string) (Spec, error) {
	if spec == "" {
		return Spec{}, ErrEmptySpec
	}

	kind, rest := splitPrefix(spec)
	if rest == spec {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownPrefix, spec)
	}
	if rest == "" {
		return Spec{}, fmt.Errorf("set spec %q has an empty handle", spec)
	}

	return Spec{kind: kind, handle: decodeHandle(rest)}, nil
}

// splitPrefix removes a known prefix from spec, returning the kind it
// encodes. Legacy prefixes return an empty kind. If no prefix matches, the
// spec is returned unchanged.
func splitPrefix(spec string) (Kind, string) {
	switch {
	case strings.HasPrefix(spec, CommunityPrefix):
		return KindCommunity, strings.TrimPrefix(spec, CommunityPrefix)
	case strings.HasPrefix(spec, CollectionPrefix):
		return KindCollection, strings.TrimPrefix(spec, CollectionPrefix)
	case strings.HasPrefix(spec, LegacyPrefix):
		return "", strings.TrimPrefix(spec, LegacyPrefix)
	default:
		return "", spec
	}
}

func encodeHandle(handle string) string {
	return strings.ReplaceAll(handle, handleSeparator, separatorFiller)
}

func decodeHandle(s string) string {
	return strings.ReplaceAll(s, separatorFiller, handleSeparator)
}
