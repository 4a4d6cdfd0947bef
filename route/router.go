package route

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dendrascience/xkcdfs/util"
)

// ParamMarker prefixes a template segment that binds a named parameter.
const ParamMarker = ":"

// OpKind is the filesystem operation a route answers.
type OpKind int

const (
	List OpKind = iota
	Stat
	Read
)

func (k OpKind) String() string {
	switch k {
	case List:
		return "LIST"
	case Stat:
		return "STAT"
	case Read:
		return "READ"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Params maps parameter names to the raw request segments they matched.
type Params map[string]string

// Get returns the value bound to name, or "" when the pattern has no such parameter.
func (p Params) Get(name string) string {
	return p[name]
}

type segment struct {
	value string
	param bool
}

type entry struct {
	template string
	op       OpKind
	segments []segment
	handler  Handler
}

type routeKey struct {
	template string
	op       OpKind
}

// Router holds (template, operation kind, handler) triples in registration order.
// Routes are registered once at startup; Match is safe for concurrent use.
type Router struct {
	entries []entry
	keys    map[routeKey]struct{}
	mu      sync.RWMutex
}

// NewRouter creates an empty route table.
func NewRouter() *Router {
	return &Router{keys: make(map[routeKey]struct{})}
}

// Register adds pattern for op. Registering the same template twice for one
// operation kind is a configuration error.
func (r *Router) Register(pattern string, op OpKind, h Handler) error {
	if h == nil {
		return fmt.Errorf("%w: nil handler for %s %s", util.ErrInvalidPattern, op, pattern)
	}
	segs, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	template := "/" + strings.Join(splitPath(pattern), "/")
	key := routeKey{template: template, op: op}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[key]; exists {
		return fmt.Errorf("%w: %s %s", util.ErrDuplicateRoute, op, template)
	}
	r.keys[key] = struct{}{}
	r.entries = append(r.entries, entry{
		template: template,
		op:       op,
		segments: segs,
		handler:  h,
	})
	return nil
}

// Match finds the first route of kind op whose shape fits path. A miss is
// reported through ok and is not an error.
func (r *Router) Match(path string, op OpKind) (h Handler, ps Params, ok bool) {
	parts := splitPath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.op != op || len(e.segments) != len(parts) {
			continue
		}
		if ps, ok := e.bind(parts); ok {
			return e.handler, ps, true
		}
	}
	return nil, nil, false
}

// Len reports the number of registered routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (e entry) bind(parts []string) (Params, bool) {
	ps := Params{}
	for i, seg := range e.segments {
		if seg.param {
			ps[seg.value] = parts[i]
			continue
		}
		if seg.value != parts[i] {
			return nil, false
		}
	}
	return ps, true
}

func parsePattern(pattern string) ([]segment, error) {
	parts := splitPath(pattern)
	segs := make([]segment, 0, len(parts))
	names := make(map[string]bool)
	for _, p := range parts {
		name, isParam := strings.CutPrefix(p, ParamMarker)
		if !isParam {
			segs = append(segs, segment{value: p})
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", util.ErrInvalidPattern, pattern)
		}
		if names[name] {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", util.ErrInvalidPattern, pattern, name)
		}
		names[name] = true
		segs = append(segs, segment{value: name, param: true})
	}
	return segs, nil
}

// splitPath breaks a slash-delimited path into segments. Surrounding slashes
// are ignored, so "/" has no segments and "/3/" equals "/3".
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
