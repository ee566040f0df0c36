package shard

import (
	"fmt"
	"hash/fnv"

	"github.com/dreamware/mapreduce/pkg/kv"
)

// HashFunc maps a key to a non-negative integer.
// It must be deterministic for the duration of a run so that equal keys
// always land in the same bucket.
type HashFunc func(key string) uint32

// FNV32a hashes a key with 32-bit FNV-1a.
// This is the default shuffle hash: fast, non-cryptographic and evenly spread.
func FNV32a(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// Bucket returns the bucket index in [0, n) that owns key
func Bucket(key string, n int, hash HashFunc) int {
	if hash == nil {
		hash = FNV32a
	}
	return int(uint64(hash(key)) % uint64(n))
}

// Split deals the input records round-robin into n shards.
//
// Record i goes to shard i mod n, so the split depends only on position and
// never on key content. Order is preserved within each shard and every
// record is cloned, leaving input untouched. An empty input yields n empty
// shards.
//
// Split panics if n < 1.
func Split(input *kv.List, n int) []*kv.List {
	shards := newLists(n)

	it := input.Iterator()
	next := 0
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		shards[next].Append(p.Clone())
		next++
		if next == n {
			next = 0
		}
	}

	return shards
}

// Shuffle routes every mapped record into one of m buckets by key hash.
//
// Outputs are scanned in increasing index order and each record is cloned
// into bucket Bucket(key, m, hash). Within a bucket, records keep the order
// in which they were encountered. Shuffle is single-threaded.
//
// Shuffle panics if m < 1.
func Shuffle(outputs []*kv.List, m int, hash HashFunc) []*kv.List {
	buckets := newLists(m)

	for _, out := range outputs {
		it := out.Iterator()
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			b := Bucket(p.Key, m, hash)
			buckets[b].Append(p.Clone())
		}
	}

	return buckets
}

// newLists allocates n empty lists
func newLists(n int) []*kv.List {
	if n < 1 {
		panic(fmt.Sprintf("shard: invalid partition count %d, must be >= 1", n))
	}
	lists := make([]*kv.List, n)
	for i := range lists {
		lists[i] = kv.NewList()
	}
	return lists
}
