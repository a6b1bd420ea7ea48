package person

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the category of a person on the roster.
type Kind uint8

const (
	KindUnknown Kind = iota
	Member
	Friend
)

// Wire labels. LabelVisitor is the historical spelling of LabelFriend.
const (
	LabelMember  = "member"
	LabelFriend  = "friend"
	LabelVisitor = "visitor"
)

// ErrUnknownKind is returned when a label is neither a member nor a friend label.
var ErrUnknownKind = errors.New("tipo must be 'member', 'friend' or 'visitor'")

// ParseKind maps a wire label to its Kind. Both "friend" and "visitor" map to Friend.
// PRE: none
// POST: Returns Member or Friend, or ErrUnknownKind
func ParseKind(label string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case LabelMember:
		return Member, nil
	case LabelFriend, LabelVisitor:
		return Friend, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, label)
}

// String returns the canonical label persisted and emitted on the wire.
func (k Kind) String() string {
	switch k {
	case Member:
		return LabelMember
	case Friend:
		return LabelFriend
	}
	return "unknown"
}

// Valid reports whether k is Member or Friend.
func (k Kind) Valid() bool {
	return k == Member || k == Friend
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, ErrUnknownKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting legacy labels.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Key identifies one person on the roster independent of the label used to reference them.
type Key struct {
	Kind     Kind
	PersonID string
}

// NewKey builds a Key.
func NewKey(kind Kind, personID string) Key {
	return Key{Kind: kind, PersonID: personID}
}

// String renders the key as "<kind>-<person_id>".
func (k Key) String() string {
	return k.Kind.String() + "-" + k.PersonID
}

// ParseKey parses "<label>-<person_id>", accepting either friend label.
func ParseKey(s string) (Key, error) {
	label, id, ok := strings.Cut(s, "-")
	if !ok || id == "" {
		return Key{}, fmt.Errorf("invalid person key %q", s)
	}
	kind, err := ParseKind(label)
	if err != nil {
		return Key{}, err
	}
	return Key{Kind: kind, PersonID: id}, nil
}
