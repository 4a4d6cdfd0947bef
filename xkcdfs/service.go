package xkcdfs

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/dendrascience/xkcdfs/content"
	"github.com/dendrascience/xkcdfs/route"
)

// Route templates served by the filesystem.
const (
	RootPattern  = "/"
	EntryPattern = "/:identifier"
)

// Service owns the route table and the content cache for one mount.
type Service struct {
	cache      *content.Cache
	router     *route.Router
	dispatcher *route.Dispatcher

	// latest is learned once at startup and bounds STAT.
	latest content.Record
}

// NewService learns the most recent record, registers the routes and builds
// the dispatcher. Failing to reach the archive here is fatal for the mount.
func NewService(ctx context.Context, cache *content.Cache) (*Service, error) {
	latest, err := cache.Record(ctx, content.Latest())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest record: %w", err)
	}

	s := &Service{
		cache:  cache,
		router: route.NewRouter(),
		latest: latest,
	}

	routes := []struct {
		pattern string
		op      route.OpKind
		handler route.Handler
	}{
		{EntryPattern, route.Read, s.readEntry},
		{RootPattern, route.List, s.listEntries},
		{EntryPattern, route.Stat, s.statEntry},
	}
	for _, r := range routes {
		if err := s.router.Register(r.pattern, r.op, r.handler); err != nil {
			return nil, err
		}
	}

	s.dispatcher = route.NewDispatcher(s.router)
	log.Infof("Serving %d entries over %d routes (latest: %q)", latest.Num, s.router.Len(), latest.Title)
	return s, nil
}

// Dispatcher is the entry point for the mount loop.
func (s *Service) Dispatcher() *route.Dispatcher {
	return s.dispatcher
}

// Latest returns the record learned at startup.
func (s *Service) Latest() content.Record {
	return s.latest
}
