package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const quotePage = `<html><body>
<table class="fullview-news-outer">
<tr><td>Mar-04-24 09:30AM</td><td><div><a href="https://example.com/a">  Chipmaker   beats estimates </a><span>(Reuters)</span></div></td></tr>
<tr><td>08:10AM</td><td><div><a href="https://example.com/b">Analysts raise targets</a><span>(Barron's)</span></div></td></tr>
<tr><td>07:00AM</td><td><div><span>no link</span></div></td></tr>
</table></body></html>`

func newServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("t") {
		case "NVDA":
			w.Write([]byte(quotePage))
		case "EMPTY":
			w.Write([]byte(`<html><body><table class="fullview-news-outer"></table></body></html>`))
		case "GONE":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFinvizLookup_LatestHeadline(t *testing.T) {
	srv := newServer(t)
	f := &FinvizLookup{BaseURL: srv.URL, Client: srv.Client()}

	h, err := f.LatestHeadline(context.Background(), "NVDA")
	require.NoError(t, err)
	require.Equal(t, "Chipmaker beats estimates", h)

	h, err = f.LatestHeadline(context.Background(), "EMPTY")
	require.NoError(t, err)
	require.Empty(t, h)

	h, err = f.LatestHeadline(context.Background(), "GONE")
	require.NoError(t, err)
	require.Empty(t, h)

	_, err = f.LatestHeadline(context.Background(), "FAIL")
	require.Error(t, err)
}

func TestFinvizLookup_Headlines(t *testing.T) {
	srv := newServer(t)
	f := &FinvizLookup{BaseURL: srv.URL, Client: srv.Client()}

	items, err := f.Headlines(context.Background(), "NVDA", 10)
	require.NoError(t, err)
	require.Equal(t, []Headline{
		{Title: "Chipmaker beats estimates", Source: "(Reuters)", URL: "https://example.com/a"},
		{Title: "Analysts raise targets", Source: "(Barron's)", URL: "https://example.com/b"},
	}, items)
}
