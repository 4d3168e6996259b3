package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPage = `<!DOCTYPE html>
<html>
<head><title>Careers</title><style>body { color: red }</style></head>
<body>
  <script>trackVisit();</script>
  <h1>Backend Engineer</h1>
  <p>We are hiring a backend engineer to work on Go and PostgreSQL services.</p>
  <noscript>Please enable JavaScript.</noscript>
</body>
</html>`

func newScraper() *Scraper { return New(2 * time.Second) }

func TestFetchExtractsVisibleText(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(jobPage))
	}))
	defer srv.Close()

	text, ok := newScraper().Fetch(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Go and PostgreSQL")
	// Non-rendered subtrees must not leak into the extraction.
	assert.NotContains(t, text, "trackVisit")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Careers")
	assert.NotContains(t, text, "enable JavaScript")
	// Sites block unidentified bots; we must look like a browser.
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetchRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	_, ok := newScraper().Fetch(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestFetchRejectsNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(status)
		}))
		_, ok := newScraper().Fetch(context.Background(), srv.URL)
		srv.Close()
		assert.False(t, ok, "status %d must be treated as absent", status)
	}
}

func TestFetchAbsentOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, ok := newScraper().Fetch(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestFetchAbsentOnEmptyOrBadURL(t *testing.T) {
	s := newScraper()
	_, ok := s.Fetch(context.Background(), "")
	assert.False(t, ok)
	_, ok = s.Fetch(context.Background(), "://not-a-url")
	assert.False(t, ok)
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := newScraper().Fetch(ctx, srv.URL)
	assert.False(t, ok)
}
