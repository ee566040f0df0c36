// Package mapreduce is a single-process, in-memory MapReduce engine.
//
// # Overview
//
// A run takes a Mapper, a Reducer, an input kv.List and fixed worker counts
// N (mappers) and M (reducers), and fills an output kv.List:
//
//	        ┌──────── split (round-robin) ────────┐
//	input ──┤ shard 0   shard 1   ...   shard N-1 │
//	        └────┬─────────┬───────────────┬──────┘
//	           map       map     ...     map        N goroutines
//	             └─────────┴───── barrier ─┘
//	        ┌──────── shuffle (hash(key) % M) ────┐
//	        │ bucket 0  bucket 1  ...  bucket M-1 │
//	        └────┬─────────┬───────────────┬──────┘
//	      sort+reduce  sort+reduce ... sort+reduce  M goroutines
//	             └─────────┴───── barrier ─┘
//	output ◀── merge in bucket order
//
// Stages never overlap. The map goroutines all finish before the shuffle
// starts, and the reduce goroutines all finish before the merge.
//
// # Grouping
//
// Each reducer sorts its bucket by key and scans it once. Consecutive
// records with the same key are collected into a group, and the Reducer is
// called once per distinct key with exactly the records carrying that key.
// The order of records inside a group is unspecified.
//
// # Concurrency Model
//
// Goroutines are created fresh for each stage, one per shard or bucket, and
// joined with a sync.WaitGroup. Lists carry no locks; instead every list is
// owned by a single goroutine and records are cloned when they move between
// owners. Mappers and reducers are shared between goroutines, so any state
// they keep is theirs to synchronize.
//
// There is no cancellation: a callback that never returns blocks its stage.
//
// # Error Handling
//
// Invalid arguments are rejected before any goroutine starts. A panicking
// callback is recovered in its goroutine and reported as a *StageError once
// the whole stage has finished. A failed run leaves the output list
// untouched; there are no partial results.
//
// # Usage Example
//
//	wordCount := mapreduce.MapFunc(func(p kv.Pair, out *kv.List) {
//	    for _, w := range strings.Fields(p.String()) {
//	        out.Append(kv.NewPair(w, "1"))
//	    }
//	})
//	sum := mapreduce.ReduceFunc(func(key string, group, out *kv.List) {
//	    out.Append(kv.NewPair(key, strconv.Itoa(group.Len())))
//	})
//
//	input := kv.NewList(kv.NewPair("doc1", "the cat the dog"))
//	output := kv.NewList()
//	if err := mapreduce.Run(wordCount, 2, sum, 2, input, output); err != nil {
//	    log.Fatalf("word count: %v", err)
//	}
package mapreduce
