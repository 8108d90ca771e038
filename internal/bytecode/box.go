package bytecode

import (
	"errors"
	"math"

	"hop/internal/token"
)

// LengthKey is the synthesized read-only key holding the element count.
const LengthKey = "độdài"

var (
	// ErrIndexOutOfRange is returned for numeric indexes that are negative,
	// fractional or beyond the append position.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrReadOnlyKey is returned when assigning to LengthKey.
	ErrReadOnlyKey = errors.New("read-only key")
)

// Box is the language's composite value: an ordered sequence plus a map
// keyed by folded (NFC, lower-case) strings. Boxes are shared by pointer;
// every alias sees mutations.
type Box struct {
	items  []Value
	fields map[string]Value
	keys   []string // insertion order of fields
}

// NewBox creates a box whose sequence holds items in order.
func NewBox(items []Value) *Box {
	return &Box{items: items}
}

// Len returns the number of sequence elements.
func (b *Box) Len() int { return len(b.items) }

// Items returns the sequence. Callers must not modify it.
func (b *Box) Items() []Value { return b.items }

// Keys returns field keys in insertion order. Callers must not modify it.
func (b *Box) Keys() []string { return b.keys }

// Index reads the sequence element at a numeric index.
func (b *Box) Index(n float64) (Value, error) {
	i, ok := toIndex(n)
	if !ok || i >= len(b.items) {
		return Nil, ErrIndexOutOfRange
	}
	return b.items[i], nil
}

// SetIndex writes the sequence element at a numeric index. Writing exactly
// at Len appends.
func (b *Box) SetIndex(n float64, v Value) error {
	i, ok := toIndex(n)
	switch {
	case !ok || i > len(b.items):
		return ErrIndexOutOfRange
	case i == len(b.items):
		b.items = append(b.items, v)
	default:
		b.items[i] = v
	}
	return nil
}

// Get reads a field. The length key always resolves.
func (b *Box) Get(key string) (Value, bool) {
	key = token.Fold(key)
	if key == LengthKey {
		return NumberValue(float64(len(b.items))), true
	}
	v, ok := b.fields[key]
	return v, ok
}

// Set creates or overwrites a field.
func (b *Box) Set(key string, v Value) error {
	key = token.Fold(key)
	if key == LengthKey {
		return ErrReadOnlyKey
	}
	if b.fields == nil {
		b.fields = make(map[string]Value)
	}
	if _, exists := b.fields[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.fields[key] = v
	return nil
}

func toIndex(n float64) (int, bool) {
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
