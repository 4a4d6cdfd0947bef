package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/dendrascience/xkcdfs/util"
	"github.com/dendrascience/xkcdfs/version"
)

// DefaultBaseURL is the archive the filesystem mounts when none is configured.
const DefaultBaseURL = "https://xkcd.com"

// DefaultTimeout bounds a single remote round trip.
const DefaultTimeout = 30 * time.Second

// Client performs remote fetches. Get returns util.ErrNotFound when the
// remote reports absence; any other failure is a transport failure.
type Client interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Doer is satisfied by *http.Client and *pester.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MakePesterClient builds the default transport: one attempt per request,
// bounded by timeout, with failures logged. Transport failures are not
// retried.
func MakePesterClient(timeout time.Duration) *pester.Client {
	client := pester.New()
	client.Backoff = noBackoff
	client.MaxRetries = 1
	client.Timeout = timeout
	client.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Remote request failed: %+v", e)
	}
	return client
}

func noBackoff(int) time.Duration { return 0 }

// HTTPClient fetches documents and blobs over HTTP.
type HTTPClient struct {
	doer      Doer
	userAgent string
}

// NewHTTPClient wraps doer. A nil doer gets MakePesterClient(DefaultTimeout).
func NewHTTPClient(doer Doer) *HTTPClient {
	if doer == nil {
		doer = MakePesterClient(DefaultTimeout)
	}
	return &HTTPClient{
		doer:      doer,
		userAgent: version.UserAgent(),
	}
}

// Get issues a GET for url and returns the whole body.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	log.Debugf("Fetching %s", url)
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		log.Infof("Remote reports %s missing", url)
		return nil, fmt.Errorf("%w: %s", util.ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return body, nil
}

// RecordURL derives the metadata URL for ref under base.
func RecordURL(base string, ref Ref) string {
	base = strings.TrimSuffix(base, "/")
	if ref.IsLatest() {
		return base + "/info.0.json"
	}
	return fmt.Sprintf("%s/%d/info.0.json", base, ref.Num())
}
