package mapreduce

import (
	"io"
	"log"
	"sync/atomic"

	"github.com/dreamware/mapreduce/internal/shard"
	"github.com/dreamware/mapreduce/pkg/kv"
)

// Mapper transforms one input record into zero or more records appended
// to out. Implementations must not retain p or out after returning.
type Mapper interface {
	Map(p kv.Pair, out *kv.List)
}

// MapFunc wraps a function into a Mapper
type MapFunc func(p kv.Pair, out *kv.List)

// Map implements the Mapper interface
func (f MapFunc) Map(p kv.Pair, out *kv.List) {
	f(p, out)
}

// Reducer folds every record sharing key into zero or more records
// appended to out. Implementations must not retain group or out after
// returning.
type Reducer interface {
	Reduce(key string, group, out *kv.List)
}

// ReduceFunc wraps a function into a Reducer
type ReduceFunc func(key string, group, out *kv.List)

// Reduce implements the Reducer interface
func (f ReduceFunc) Reduce(key string, group, out *kv.List) {
	f(key, group, out)
}

// HashFunc maps a key to a non-negative integer used to pick its bucket
type HashFunc = shard.HashFunc

// Option configures an Engine
type Option func(*Engine)

// WithHash replaces the default FNV-1a shuffle hash.
// The function must be deterministic for the duration of a run.
func WithHash(h HashFunc) Option {
	return func(e *Engine) {
		if h != nil {
			e.hash = h
		}
	}
}

// WithLogger sets the logger stage progress is written to.
// By default the engine logs nothing.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Stats holds cumulative counters across all runs of an Engine
type Stats struct {
	Runs          uint64 // Runs that passed validation and started
	FailedRuns    uint64 // Runs aborted by a failing callback
	InputRecords  uint64 // Records read from input lists
	MappedRecords uint64 // Records emitted by mappers
	Groups        uint64 // Reducer invocations
	OutputRecords uint64 // Records merged into output lists
}

// Engine runs MapReduce jobs in memory.
// An Engine holds no per-run state and is safe for concurrent use.
type Engine struct {
	hash   shard.HashFunc // Shuffle hash
	logger *log.Logger    // Stage progress logger
	stats  Stats          // Updated atomically
}

// New creates an Engine with the given options applied
func New(opts ...Option) *Engine {
	e := &Engine{
		hash:   shard.FNV32a,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes a job with a default Engine.
// See Engine.Run.
func Run(mapper Mapper, numMappers int, reducer Reducer, numReducers int, input, output *kv.List) error {
	return New().Run(mapper, numMappers, reducer, numReducers, input, output)
}

// Run executes split, map, shuffle, reduce and merge over input and
// appends the result to output.
//
// input is only read; its records are cloned before any worker sees them.
// output must be empty. On success it holds every reducer's output, bucket 0
// first, each bucket in the order its reducer emitted records.
//
// If a mapper or reducer panics, the remaining workers of that stage are
// still waited for, no later stage runs, output is left empty, and the
// returned error wraps a *StageError per failed worker.
func (e *Engine) Run(mapper Mapper, numMappers int, reducer Reducer, numReducers int, input, output *kv.List) error {
	if err := validate(mapper, numMappers, reducer, numReducers, input, output); err != nil {
		return err
	}

	atomic.AddUint64(&e.stats.Runs, 1)

	if err := e.run(mapper, numMappers, reducer, numReducers, input, output); err != nil {
		atomic.AddUint64(&e.stats.FailedRuns, 1)
		e.logger.Printf("run aborted: %v", err)
		return err
	}
	return nil
}

// Stats returns a snapshot of the engine's counters
func (e *Engine) Stats() Stats {
	return Stats{
		Runs:          atomic.LoadUint64(&e.stats.Runs),
		FailedRuns:    atomic.LoadUint64(&e.stats.FailedRuns),
		InputRecords:  atomic.LoadUint64(&e.stats.InputRecords),
		MappedRecords: atomic.LoadUint64(&e.stats.MappedRecords),
		Groups:        atomic.LoadUint64(&e.stats.Groups),
		OutputRecords: atomic.LoadUint64(&e.stats.OutputRecords),
	}
}

func (e *Engine) run(mapper Mapper, numMappers int, reducer Reducer, numReducers int, input, output *kv.List) error {
	shards := shard.Split(input, numMappers)
	atomic.AddUint64(&e.stats.InputRecords, uint64(input.Len()))
	e.logger.Printf("split %d records into %d shards", input.Len(), numMappers)

	mapped, err := mapStage(mapper, shards)
	if err != nil {
		return err
	}
	mappedCount := totalLen(mapped)
	atomic.AddUint64(&e.stats.MappedRecords, uint64(mappedCount))
	e.logger.Printf("map stage done: %d workers emitted %d records", numMappers, mappedCount)

	buckets := shard.Shuffle(mapped, numReducers, e.hash)
	e.logger.Printf("shuffled %d records into %d buckets", mappedCount, numReducers)

	reduced, groups, err := reduceStage(reducer, buckets)
	if err != nil {
		return err
	}
	atomic.AddUint64(&e.stats.Groups, uint64(groups))
	e.logger.Printf("reduce stage done: %d workers reduced %d groups", numReducers, groups)

	merge(output, reduced)
	atomic.AddUint64(&e.stats.OutputRecords, uint64(output.Len()))
	e.logger.Printf("merged %d records", output.Len())

	return nil
}

func validate(mapper Mapper, numMappers int, reducer Reducer, numReducers int, input, output *kv.List) error {
	switch {
	case mapper == nil:
		return ErrNilMapper
	case reducer == nil:
		return ErrNilReducer
	case numMappers < 1:
		return ErrInvalidMappers
	case numReducers < 1:
		return ErrInvalidReducers
	case input == nil || output == nil:
		return ErrNilList
	case output.Len() != 0:
		return ErrOutputNotEmpty
	}
	return nil
}

func totalLen(lists []*kv.List) int {
	n := 0
	for _, l := range lists {
		n += l.Len()
	}
	return n
}
