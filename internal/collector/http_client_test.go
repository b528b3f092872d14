package collector

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hc, err := NewHTTPClient(srv.URL+"/common/jobs", "jobfeed-test", 0, time.Second, quietLogger())
	require.NoError(t, err)
	return hc
}

func TestFetchPageSendsPageParam(t *testing.T) {
	var gotPage, gotUA string
	hc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "/common/jobs", r.URL.Path)
		io.WriteString(w, `{"results":[{"id":1,"title":"Cook"},{"id":2}]}`)
	})

	got, err := hc.FetchPage(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "3", gotPage)
	assert.Equal(t, "jobfeed-test", gotUA)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].Decode().ID)
}

func TestFetchPageShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantLen  int
		wantErr  error
		wantFail bool
	}{
		{name: "empty results", status: 200, body: `{"results":[]}`, wantLen: 0},
		{name: "missing results", status: 200, body: `{"count":0}`, wantErr: domain.ErrMalformedPage},
		{name: "null results", status: 200, body: `{"results":null}`, wantErr: domain.ErrMalformedPage},
		{name: "results not an array", status: 200, body: `{"results":{"id":1}}`, wantErr: domain.ErrMalformedPage},
		{name: "non-object entries skipped", status: 200, body: `{"results":[1,"x",null,{"id":9}]}`, wantLen: 1},
		{name: "invalid json", status: 200, body: `{"results":[`, wantFail: true},
		{name: "server error", status: 500, body: `oops`, wantFail: true},
		{name: "server error with results body", status: 500, body: `{"results":[{"id":1}]}`, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			got, err := hc.FetchPage(context.Background(), 1)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFail:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
			}
		})
	}
}

func TestFetchPageHonoursContext(t *testing.T) {
	release := make(chan struct{})
	hc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hc.FetchPage(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPClientRejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com/jobs", "ua", 0, 0, nil)
	assert.Error(t, err)
}

func TestMockClientPages(t *testing.T) {
	mc := &MockClient{PageSize: 4, Pages: 2}

	first, err := mc.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.Equal(t, int64(1), first[0].Decode().ID)

	second, err := mc.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), second[0].Decode().ID)

	past, err := mc.FetchPage(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestNewCollector(t *testing.T) {
	c, err := NewCollector(&config.Config{CollectorMode: config.ModeMock}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, c)

	c, err = NewCollector(&config.Config{
		CollectorMode: config.ModeHTTP,
		APIURL:        "https://example.com/jobs",
		UserAgent:     "ua",
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPClient{}, c)

	_, err = NewCollector(&config.Config{CollectorMode: "api"}, nil)
	assert.Error(t, err)
}
