package mapreduce

import (
	"errors"
	"runtime/debug"
	"sync"

	"github.com/dreamware/mapreduce/pkg/kv"
)

// runWorkers starts one goroutine per index and waits for all of them.
// A panic in work(i), or a goroutine exit before work(i) returns, becomes
// a *StageError for that index.
// The returned error joins all failures in index order, or is nil.
func runWorkers(stage Stage, n int, work func(i int)) error {
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			finished := false
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = &StageError{
						Stage:  stage,
						Worker: i,
						Cause:  &PanicError{Value: r, Stack: debug.Stack()},
					}
					return
				}
				// runtime.Goexit unwinds without a panic value
				if !finished {
					errs[i] = &StageError{Stage: stage, Worker: i, Cause: ErrWorkerExited}
				}
			}()
			work(i)
			finished = true
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// mapStage applies mapper to every record of every shard, one goroutine
// per shard. Worker i owns shards[i] and writes only to outputs[i].
func mapStage(mapper Mapper, shards []*kv.List) ([]*kv.List, error) {
	outputs := make([]*kv.List, len(shards))
	for i := range outputs {
		outputs[i] = kv.NewList()
	}

	err := runWorkers(StageMap, len(shards), func(i int) {
		it := shards[i].Iterator()
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			mapper.Map(p, outputs[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

// reduceStage groups and reduces every bucket, one goroutine per bucket.
// It returns the per-bucket outputs and the total number of groups.
func reduceStage(reducer Reducer, buckets []*kv.List) ([]*kv.List, int, error) {
	outputs := make([]*kv.List, len(buckets))
	groups := make([]int, len(buckets))
	for i := range outputs {
		outputs[i] = kv.NewList()
	}

	err := runWorkers(StageReduce, len(buckets), func(j int) {
		groups[j] = reduceBucket(reducer, buckets[j], outputs[j])
	})
	if err != nil {
		return nil, 0, err
	}

	total := 0
	for _, g := range groups {
		total += g
	}
	return outputs, total, nil
}

// reduceBucket sorts bucket by key and calls reducer once per run of equal
// keys. Each group holds clones of exactly the records sharing its key.
// Returns the number of reducer calls; an empty bucket makes none.
func reduceBucket(reducer Reducer, bucket, out *kv.List) int {
	bucket.Sort()

	it := bucket.Iterator()
	first, ok := it.Next()
	if !ok {
		return 0
	}

	calls := 0
	key := first.Key
	group := kv.NewList(first.Clone())
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if p.Key == key {
			group.Append(p.Clone())
			continue
		}
		reducer.Reduce(key, group, out)
		calls++

		key = p.Key
		group = kv.NewList(p.Clone())
	}
	reducer.Reduce(key, group, out)
	calls++

	return calls
}

// merge appends the reducer outputs to output in bucket-index order
func merge(output *kv.List, reduced []*kv.List) {
	for _, r := range reduced {
		output.Extend(r)
	}
}
