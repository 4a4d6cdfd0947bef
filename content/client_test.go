package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dendrascience/xkcdfs/util"
)

func newArchiveServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := new(atomic.Int32)
	mux := http.NewServeMux()
	mux.HandleFunc("/info.0.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"num":5,"img":"x"}`))
	})
	mux.HandleFunc("/broken/info.0.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("User-Agent")))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestHTTPClient_Get(t *testing.T) {
	srv, _ := newArchiveServer(t)
	client := NewHTTPClient(MakePesterClient(5 * time.Second))

	body, err := client.Get(context.Background(), srv.URL+"/info.0.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rec, err := ParseRecord(body)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec.Num != 5 {
		t.Errorf("num = %d, want 5", rec.Num)
	}
}

func TestHTTPClient_NotFound(t *testing.T) {
	srv, _ := newArchiveServer(t)
	client := NewHTTPClient(nil)

	_, err := client.Get(context.Background(), srv.URL+"/77/info.0.json")
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Get of missing record = %v, want ErrNotFound", err)
	}
}

func TestHTTPClient_ServerErrorIsNotRetried(t *testing.T) {
	srv, hits := newArchiveServer(t)
	client := NewHTTPClient(MakePesterClient(5 * time.Second))

	_, err := client.Get(context.Background(), srv.URL+"/broken/info.0.json")
	if err == nil || errors.Is(err, util.ErrNotFound) {
		t.Fatalf("Get of failing endpoint = %v, want transport failure", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv, _ := newArchiveServer(t)
	url := srv.URL + "/info.0.json"
	srv.Close()

	_, err := NewHTTPClient(http.DefaultClient).Get(context.Background(), url)
	if err == nil || errors.Is(err, util.ErrNotFound) {
		t.Errorf("Get against closed server = %v, want transport failure", err)
	}
}

func TestHTTPClient_UserAgent(t *testing.T) {
	srv, _ := newArchiveServer(t)

	body, err := NewHTTPClient(http.DefaultClient).Get(context.Background(), srv.URL+"/ua")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.HasPrefix(string(body), "xkcdfs/") {
		t.Errorf("User-Agent = %q, want xkcdfs/ prefix", body)
	}
}
