package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/dendrascience/xkcdfs/util"
)

// Metric names registered by Cache.
const (
	RecordHitCounter      = "cache.record.hit"
	RecordMissCounter     = "cache.record.miss"
	BlobHitCounter        = "cache.blob.hit"
	BlobMissCounter       = "cache.blob.miss"
	RemoteFetchCounter    = "remote.fetch"
	RemoteNotFoundCounter = "remote.not_found"
	RemoteFailureCounter  = "remote.failure"
	RemoteLatencyTimer    = "remote.latency"
	RecordCountGauge      = "cache.record.count"
	BlobCountGauge        = "cache.blob.count"
)

// Cache memoizes records by Ref and blobs by URL for the life of the
// process. Entries are never evicted, refreshed or revalidated: remote
// content is immutable once published under an identifier or URL.
// Failed lookups are never stored, so a miss is retried on the next call.
type Cache struct {
	client  Client
	baseURL string

	records   map[Ref]Record
	recordsMu sync.RWMutex

	blobs   map[string][]byte
	blobsMu sync.RWMutex

	// flights collapses concurrent misses on one key into one fetch.
	flights singleflight.Group

	recordHit, recordMiss  metrics.Counter
	blobHit, blobMiss      metrics.Counter
	fetches, notFound, bad metrics.Counter
	latency                metrics.Timer
}

// NewCache creates an empty cache fetching through client. Metrics go to
// registry; a nil registry gets a private one.
func NewCache(client Client, baseURL string, registry metrics.Registry) *Cache {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Cache{
		client:     client,
		baseURL:    baseURL,
		records:    make(map[Ref]Record),
		blobs:      make(map[string][]byte),
		recordHit:  metrics.GetOrRegisterCounter(RecordHitCounter, registry),
		recordMiss: metrics.GetOrRegisterCounter(RecordMissCounter, registry),
		blobHit:    metrics.GetOrRegisterCounter(BlobHitCounter, registry),
		blobMiss:   metrics.GetOrRegisterCounter(BlobMissCounter, registry),
		fetches:    metrics.GetOrRegisterCounter(RemoteFetchCounter, registry),
		notFound:   metrics.GetOrRegisterCounter(RemoteNotFoundCounter, registry),
		bad:        metrics.GetOrRegisterCounter(RemoteFailureCounter, registry),
		latency:    metrics.GetOrRegisterTimer(RemoteLatencyTimer, registry),
	}
	registry.GetOrRegister(RecordCountGauge, metrics.NewFunctionalGauge(func() int64 {
		records, _ := c.Len()
		return int64(records)
	}))
	registry.GetOrRegister(BlobCountGauge, metrics.NewFunctionalGauge(func() int64 {
		_, blobs := c.Len()
		return int64(blobs)
	}))
	return c
}

// Record returns the metadata for ref, fetching it on first use.
// It returns an error wrapping util.ErrNotFound when the remote has no such
// record.
func (c *Cache) Record(ctx context.Context, ref Ref) (Record, error) {
	if rec, ok := c.cachedRecord(ref); ok {
		c.recordHit.Inc(1)
		return rec, nil
	}
	c.recordMiss.Inc(1)

	v, err, _ := c.flights.Do("record:"+ref.String(), func() (any, error) {
		if rec, ok := c.cachedRecord(ref); ok {
			return rec, nil
		}
		data, err := c.fetch(ctx, RecordURL(c.baseURL, ref))
		if err != nil {
			return Record{}, err
		}
		rec, err := ParseRecord(data)
		if err != nil {
			return Record{}, fmt.Errorf("record %s: %w", ref, err)
		}

		c.recordsMu.Lock()
		c.records[ref] = rec
		c.recordsMu.Unlock()

		log.Infof("Cached record %s (num %d, %q)", ref, rec.Num, rec.Title)
		return rec, nil
	})
	if err != nil {
		return Record{}, err
	}
	return v.(Record), nil
}

// Blob returns the bytes published at url, fetching them on first use.
// The returned slice is shared with the cache and must not be modified.
func (c *Cache) Blob(ctx context.Context, url string) ([]byte, error) {
	if b, ok := c.cachedBlob(url); ok {
		c.blobHit.Inc(1)
		return b, nil
	}
	c.blobMiss.Inc(1)

	v, err, _ := c.flights.Do("blob:"+url, func() (any, error) {
		if b, ok := c.cachedBlob(url); ok {
			return b, nil
		}
		b, err := c.fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		c.blobsMu.Lock()
		c.blobs[url] = b
		c.blobsMu.Unlock()

		log.Infof("Cached %d bytes from %s", len(b), url)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Len reports how many records and blobs are held.
func (c *Cache) Len() (records, blobs int) {
	c.recordsMu.RLock()
	records = len(c.records)
	c.recordsMu.RUnlock()

	c.blobsMu.RLock()
	blobs = len(c.blobs)
	c.blobsMu.RUnlock()
	return records, blobs
}

func (c *Cache) cachedRecord(ref Ref) (Record, bool) {
	c.recordsMu.RLock()
	defer c.recordsMu.RUnlock()
	rec, ok := c.records[ref]
	return rec, ok
}

func (c *Cache) cachedBlob(url string) ([]byte, bool) {
	c.blobsMu.RLock()
	defer c.blobsMu.RUnlock()
	b, ok := c.blobs[url]
	return b, ok
}

// fetch runs detached from the caller's cancellation: once issued, a fetch
// completes and may populate the cache for whoever asks next.
func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	c.fetches.Inc(1)
	start := time.Now()
	defer c.latency.UpdateSince(start)

	data, err := c.client.Get(context.WithoutCancel(ctx), url)
	switch {
	case errors.Is(err, util.ErrNotFound):
		c.notFound.Inc(1)
		return nil, err
	case err != nil:
		c.bad.Inc(1)
		log.Errorf("Fetch of %s failed: %v", url, err)
		return nil, err
	}
	return data, nil
}
