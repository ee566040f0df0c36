// Package kv provides the key/value record container the MapReduce engine
// moves data through.
//
// # Overview
//
// A Pair is an immutable-by-convention record with a string key and an opaque
// byte value. A List is an ordered, append-only sequence of pairs with a
// forward Iterator, deep Clone, Extend and key Sort.
//
// # Ownership
//
// Lists carry no locks. The engine keeps them race free by ownership rather
// than synchronization:
//
//	input ──clone──▶ shard[i]   (owned by mapper goroutine i)
//	mapped[i] ──clone──▶ bucket[j]   (owned by reducer goroutine j)
//	bucket[j] ──clone──▶ group   (owned by reducer goroutine j)
//	reduced[j] ──clone──▶ output   (owned by the caller)
//
// Every time a record crosses into a list owned by another goroutine it is
// cloned, so no two goroutines ever reference the same value bytes.
//
// # Usage Example
//
//	l := kv.NewList(kv.NewPair("b", "2"), kv.NewPair("a", "1"))
//	l.Sort()
//	it := l.Iterator()
//	for p, ok := it.Next(); ok; p, ok = it.Next() {
//	    fmt.Printf("%s=%s\n", p.Key, p.Value)
//	}
package kv
