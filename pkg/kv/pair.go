package kv

import "strings"

// Pair is a single key/value record flowing through a MapReduce pipeline.
// Ordering and equality are defined by the key alone.
type Pair struct {
	Key   string // Grouping and sort key, compared bytewise
	Value []byte // Opaque payload
}

// NewPair builds a pair from a key and a string value
func NewPair(key, value string) Pair {
	return Pair{Key: key, Value: []byte(value)}
}

// Clone returns a deep copy of the pair.
// The value bytes are copied so the clone shares no memory with p.
func (p Pair) Clone() Pair {
	if p.Value == nil {
		return Pair{Key: p.Key}
	}
	value := make([]byte, len(p.Value))
	copy(value, p.Value)
	return Pair{Key: p.Key, Value: value}
}

// String returns the value as a string
func (p Pair) String() string {
	return string(p.Value)
}

// Compare orders two pairs by key.
// Returns -1, 0 or +1 like strings.Compare.
func Compare(a, b Pair) int {
	return strings.Compare(a.Key, b.Key)
}
