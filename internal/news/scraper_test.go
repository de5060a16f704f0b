package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"crypto-trade-journal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const deskPage = `<html><body>
<article><h2> Bitcoin   reclaims 70k </h2><a href="/markets/btc-70k">read</a></article>
<article><h2>ETH ETF flows turn positive</h2><a href="https://other.example/eth">read</a></article>
<article><h2></h2><a href="/empty-title">read</a></article>
<article><h2>No link here</h2></article>
<article><h2>Bitcoin reclaims 70k (update)</h2><a href="/markets/btc-70k">read</a></article>
</body></html>`

const wirePage = `<ul><li class="story"><a href="/wire/1">Funding rates cool off</a></li>
<li class="story"><a href="/wire/2">Solana outage resolved</a></li></ul>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/desk", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(deskPage))
	})
	mux.HandleFunc("/wire", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(wirePage))
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func sources(base string) []config.NewsSource {
	return []config.NewsSource{
		{Name: "down", URL: base + "/down", ItemSelector: "article"},
		{Name: "desk", URL: base + "/desk", ItemSelector: "article", TitleSelector: "h2", LinkSelector: "a"},
		{Name: "wire", URL: base + "/wire", ItemSelector: "li.story a"},
	}
}

func TestHeadlines(t *testing.T) {
	server := newTestServer(t)
	s := NewScraper(config.News{Sources: sources(server.URL)}, zap.NewNop())

	items, err := s.Headlines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Headline{
		{Source: "desk", Title: "Bitcoin reclaims 70k", URL: server.URL + "/markets/btc-70k"},
		{Source: "desk", Title: "ETH ETF flows turn positive", URL: "https://other.example/eth"},
		{Source: "wire", Title: "Funding rates cool off", URL: server.URL + "/wire/1"},
		{Source: "wire", Title: "Solana outage resolved", URL: server.URL + "/wire/2"},
	}, items)
}

func TestHeadlines_Capped(t *testing.T) {
	server := newTestServer(t)
	s := NewScraper(config.News{MaxItems: 3, Sources: sources(server.URL)}, zap.NewNop())

	items, err := s.Headlines(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "Funding rates cool off", items[2].Title)
}

func TestHeadlines_NoSources(t *testing.T) {
	s := NewScraper(config.News{}, zap.NewNop())

	items, err := s.Headlines(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
