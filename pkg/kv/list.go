package kv

import (
	"golang.org/x/exp/slices"
)

// List is an ordered sequence of pairs.
//
// A List has no internal locking. It must be owned by a single goroutine
// at a time; ownership is handed over, never shared.
type List struct {
	pairs []Pair // Records in insertion (or sorted) order
}

// NewList creates a list holding the given pairs in order.
// The pairs are stored as given, not cloned.
func NewList(pairs ...Pair) *List {
	l := &List{}
	if len(pairs) > 0 {
		l.pairs = make([]Pair, len(pairs))
		copy(l.pairs, pairs)
	}
	return l
}

// Append adds p to the end of the list
func (l *List) Append(p Pair) {
	l.pairs = append(l.pairs, p)
}

// Extend appends a clone of every pair in other, preserving order.
// other is not modified.
func (l *List) Extend(other *List) {
	if other == nil {
		return
	}
	l.pairs = slices.Grow(l.pairs, len(other.pairs))
	for _, p := range other.pairs {
		l.pairs = append(l.pairs, p.Clone())
	}
}

// Sort orders the list by key. Records with equal keys keep their
// relative order.
func (l *List) Sort() {
	slices.SortStableFunc(l.pairs, Compare)
}

// Len returns the number of records in the list
func (l *List) Len() int {
	return len(l.pairs)
}

// Clone returns a deep copy of the list
func (l *List) Clone() *List {
	c := &List{pairs: make([]Pair, 0, len(l.pairs))}
	for _, p := range l.pairs {
		c.pairs = append(c.pairs, p.Clone())
	}
	return c
}

// Pairs returns a copy of the records in order.
// The returned slice can be modified without affecting the list, but the
// value bytes are shared; use Clone on a pair before mutating it.
func (l *List) Pairs() []Pair {
	return slices.Clone(l.pairs)
}

// Keys returns the key of every record in order, duplicates included
func (l *List) Keys() []string {
	keys := make([]string, 0, len(l.pairs))
	for _, p := range l.pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// Iterator returns a forward iterator positioned before the first record
func (l *List) Iterator() *Iterator {
	return &Iterator{list: l}
}

// Iterator walks a List front to back.
// Appending to the list while iterating is allowed; new records are seen
// by the iterator if it has not yet reached the end.
type Iterator struct {
	list *List
	pos  int
}

// Next returns the next record. The boolean is false once the list is
// exhausted, in which case the returned pair is the zero value.
func (it *Iterator) Next() (Pair, bool) {
	if it.pos >= len(it.list.pairs) {
		return Pair{}, false
	}
	p := it.list.pairs[it.pos]
	it.pos++
	return p, true
}
