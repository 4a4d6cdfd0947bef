package route

import (
	"context"
	"errors"
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/dendrascience/xkcdfs/util"
)

// Reply is the filesystem-level answer to one operation.
type Reply struct {
	Entries []string // LIST
	Exists  bool     // STAT
	Data    []byte   // READ
	Err     error    // wraps util.ErrIO on failure; util.ErrNotFound alone for READ misses
}

// Dispatcher resolves operations through a Router and shapes handler results
// into replies. It does no I/O itself.
type Dispatcher struct {
	router *Router
}

// NewDispatcher returns a dispatcher over router.
func NewDispatcher(router *Router) *Dispatcher {
	return &Dispatcher{router: router}
}

// Handle runs the handler matching (op, path) and translates its result.
func (d *Dispatcher) Handle(ctx context.Context, op OpKind, path string) Reply {
	h, ps, ok := d.router.Match(path, op)
	if !ok {
		log.Debugf("%s %s: no route", op, path)
		return noRoute(op)
	}

	res := invoke(ctx, h, Request{Op: op, Path: path, Params: ps})
	reply := shape(op, res)
	if errors.Is(reply.Err, util.ErrIO) {
		log.Errorf("%s %s: %v", op, path, reply.Err)
	} else {
		log.Debugf("%s %s: exists=%v entries=%d bytes=%d", op, path, reply.Exists, len(reply.Entries), len(reply.Data))
	}
	return reply
}

// List returns the entry names under path. No route yields an empty listing.
func (d *Dispatcher) List(ctx context.Context, path string) ([]string, error) {
	r := d.Handle(ctx, List, path)
	return r.Entries, r.Err
}

// Stat reports whether path exists. Absence is not an error.
func (d *Dispatcher) Stat(ctx context.Context, path string) (bool, error) {
	r := d.Handle(ctx, Stat, path)
	return r.Exists, r.Err
}

// Read returns the content at path, or util.ErrNotFound.
func (d *Dispatcher) Read(ctx context.Context, path string) ([]byte, error) {
	r := d.Handle(ctx, Read, path)
	return r.Data, r.Err
}

func noRoute(op OpKind) Reply {
	switch op {
	case List:
		return Reply{Entries: []string{}}
	case Read:
		return Reply{Err: util.ErrNotFound}
	}
	return Reply{}
}

// invoke confines a panicking handler to its own request.
func invoke(ctx context.Context, h Handler, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail(fmt.Errorf("%w: %s %s: %v", util.ErrHandlerPanic, req.Op, req.Path, r))
		}
	}()
	return h(ctx, req)
}

func shape(op OpKind, res Result) Reply {
	if res.Err != nil {
		return Reply{Err: errors.Join(util.ErrIO, res.Err)}
	}
	switch op {
	case List:
		if res.NotFound || res.Entries == nil {
			return Reply{Entries: []string{}}
		}
		entries := slices.Collect(res.Entries)
		if entries == nil {
			entries = []string{}
		}
		return Reply{Entries: entries}
	case Stat:
		return Reply{Exists: !res.NotFound}
	case Read:
		if res.NotFound || len(res.Data) == 0 {
			return Reply{Err: util.ErrNotFound}
		}
		return Reply{Data: res.Data}
	}
	return Reply{Err: fmt.Errorf("%w: unknown operation %s", util.ErrIO, op)}
}
