// Package shard partitions records between the stages of a MapReduce run.
//
// # Overview
//
// Two partitioning schemes are used, one on each side of the map stage:
//
//	input ──Split (round-robin)──▶ shard[0..N)  ──map──▶ mapped[0..N)
//	mapped[0..N) ──Shuffle (hash(key) mod M)──▶ bucket[0..M)
//
// Split assigns records by position only. Record i goes to shard i mod N, so
// shards differ in size by at most one record regardless of key skew.
//
// Shuffle assigns records by key. Every record with a given key lands in the
// same bucket, which is what lets a single reducer see the whole group for
// that key.
//
// # Key Space Partitioning
//
// Keys are hashed with FNV-1a into a 32-bit space and mapped to a bucket by
// modulo:
//
//	bucket = FNV32a(key) % M
//
// Any deterministic HashFunc can replace FNV32a. It need not be stable across
// processes, only within one run.
//
// # Ownership
//
// Both functions allocate fresh lists and clone every record they place, so
// the returned lists share no memory with their inputs and can be handed to
// worker goroutines without locking.
package shard
