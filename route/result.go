package route

import (
	"context"
	"iter"
)

// Request is what a handler receives for one operation.
type Request struct {
	Op     OpKind
	Path   string
	Params Params
}

// Handler implements one (template, operation kind) pair.
type Handler func(ctx context.Context, req Request) Result

// Result is a handler outcome. Exactly one of the fields is meaningful:
// Entries for LIST, Data for READ, NotFound for absence and Err for any
// other failure. The zero Result means "exists" for STAT.
type Result struct {
	Entries  iter.Seq[string]
	Data     []byte
	NotFound bool
	Err      error
}

// Entries wraps a finite, restartable sequence of entry names.
func Entries(seq iter.Seq[string]) Result {
	return Result{Entries: seq}
}

// Data wraps file content.
func Data(b []byte) Result {
	return Result{Data: b}
}

// Exists signals existence to a STAT.
func Exists() Result {
	return Result{}
}

// NotFound signals absence. The dispatcher turns it into ENOENT-style replies.
func NotFound() Result {
	return Result{NotFound: true}
}

// Fail carries a failure that is not absence.
func Fail(err error) Result {
	return Result{Err: err}
}
