package mapreduce

import (
	"errors"
	"fmt"
)

// Precondition errors. Run returns these before any worker is started
var (
	// ErrInvalidMappers is returned when the mapper count is below 1
	ErrInvalidMappers = errors.New("mapreduce: mapper count must be at least 1")
	// ErrInvalidReducers is returned when the reducer count is below 1
	ErrInvalidReducers = errors.New("mapreduce: reducer count must be at least 1")
	// ErrNilMapper is returned when no mapper is supplied
	ErrNilMapper = errors.New("mapreduce: mapper is nil")
	// ErrNilReducer is returned when no reducer is supplied
	ErrNilReducer = errors.New("mapreduce: reducer is nil")
	// ErrNilList is returned when the input or output list is nil
	ErrNilList = errors.New("mapreduce: input and output lists must be non-nil")
	// ErrOutputNotEmpty is returned when the output list already holds records
	ErrOutputNotEmpty = errors.New("mapreduce: output list must be empty")
)

// ErrWorkerExited is the cause recorded when a callback ends its goroutine
// (for example with runtime.Goexit) instead of returning
var ErrWorkerExited = errors.New("mapreduce: worker goroutine exited before finishing")

// Stage names a pipeline stage that runs user callbacks
type Stage string

const (
	// StageMap is the parallel map stage
	StageMap Stage = "map"
	// StageReduce is the parallel reduce stage
	StageReduce Stage = "reduce"
)

// StageError reports a worker that failed inside a stage.
// Use errors.As to inspect it and errors.Unwrap to reach the cause.
type StageError struct {
	Cause  error // Underlying failure, usually a *PanicError
	Stage  Stage // Stage the worker belonged to
	Worker int   // Shard or bucket index of the worker
}

func (e *StageError) Error() string {
	return fmt.Sprintf("mapreduce: %s worker %d failed: %v", e.Stage, e.Worker, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// PanicError carries a value recovered from a panicking mapper or reducer
type PanicError struct {
	Value any    // Value passed to panic
	Stack []byte // Stack of the panicking goroutine
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
