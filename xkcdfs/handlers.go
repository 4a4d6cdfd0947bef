package xkcdfs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/dendrascience/xkcdfs/content"
	"github.com/dendrascience/xkcdfs/route"
	"github.com/dendrascience/xkcdfs/util"
)

// readEntry serves the image of one record.
func (s *Service) readEntry(ctx context.Context, req route.Request) route.Result {
	raw := req.Params.Get("identifier")
	n, inRange, err := parseIdentifier(raw)
	if err != nil {
		return route.Fail(err)
	}
	if !inRange {
		// No record is numbered beyond the int range.
		return route.NotFound()
	}

	rec, err := s.cache.Record(ctx, content.Num(n))
	if errors.Is(err, util.ErrNotFound) {
		return route.NotFound()
	}
	if err != nil {
		return route.Fail(err)
	}

	img, err := s.cache.Blob(ctx, rec.Img)
	if err != nil {
		return route.Fail(err)
	}
	return route.Data(img)
}

// listEntries names every identifier from 1 to the latest one.
func (s *Service) listEntries(ctx context.Context, req route.Request) route.Result {
	latest, err := s.cache.Record(ctx, content.Latest())
	if err != nil {
		return route.Fail(err)
	}
	return route.Entries(identifiers(latest.Num))
}

// statEntry bounds identifiers by the latest one learned at startup. It never
// fetches. Non-numeric names are reported as existing; READ rejects them.
func (s *Service) statEntry(ctx context.Context, req route.Request) route.Result {
	n, _, err := parseIdentifier(req.Params.Get("identifier"))
	if err == nil && n > s.latest.Num {
		return route.NotFound()
	}
	return route.Exists()
}

// parseIdentifier reads raw as a decimal integer. Integers outside the int
// range are still integers: n saturates at math.MaxInt or math.MinInt and
// inRange is false. Only non-numbers return util.ErrInvalidIdentifier.
func parseIdentifier(raw string) (n int, inRange bool, err error) {
	n, err = strconv.Atoi(raw)
	switch {
	case err == nil:
		return n, true, nil
	case errors.Is(err, strconv.ErrRange):
		return n, false, nil
	}
	return 0, false, fmt.Errorf("%w: %q", util.ErrInvalidIdentifier, raw)
}

func identifiers(last int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 1; i <= last; i++ {
			if !yield(strconv.Itoa(i)) {
				return
			}
		}
	}
}
