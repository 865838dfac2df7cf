// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

type (
	// CollectedHit is what the fake endpoint saw for one request.
	CollectedHit struct {
		Query     url.Values
		Method    string
		UserAgent string
	}
	CollectEndpoint struct {
		server *httptest.Server
		hits   []*CollectedHit
		mx     sync.Mutex
	}
)

// NewCollectEndpoint starts a fake collection endpoint that records every request and answers with an empty 200,
// the same way the real one does. It is closed with tb.Cleanup.
func NewCollectEndpoint(tb testing.TB) *CollectEndpoint {
	tb.Helper()
	endpoint := new(CollectEndpoint)
	endpoint.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint.mx.Lock()
		endpoint.hits = append(endpoint.hits, &CollectedHit{
			Query:     r.URL.Query(),
			Method:    r.Method,
			UserAgent: r.Header.Get("User-Agent"),
		})
		endpoint.mx.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	tb.Cleanup(endpoint.server.Close)

	return endpoint
}

func (e *CollectEndpoint) URL() string {
	return e.server.URL + "/collect"
}

func (e *CollectEndpoint) Hits() []*CollectedHit {
	e.mx.Lock()
	defer e.mx.Unlock()

	return append(make([]*CollectedHit, 0, len(e.hits)), e.hits...)
}

func (e *CollectEndpoint) LastHit(tb testing.TB) *CollectedHit {
	tb.Helper()
	hits := e.Hits()
	if len(hits) == 0 {
		tb.Fatal("no hit was collected")
	}

	return hits[len(hits)-1]
}
