package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerTokenAndJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/things", r.URL.Path)
		assert.Equal(t, "a b", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"id":"t-1"}`))
	}))
	t.Cleanup(server.Close)

	client := Client{
		BaseURL:    server.URL + "/v1",
		HTTPClient: server.Client(),
		Header:     http.Header{"Notion-Version": {"2022-06-28"}},
	}

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/things",
		Query:  url.Values{"q": {"a b"}},
		Body:   map[string]string{"text": "hello"},
		Token:  "tok-1",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "t-1", resp.Object()["id"])
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	resp, err := Client{BaseURL: server.URL, HTTPClient: server.Client()}.Do(context.Background(), Request{Path: "/ping"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Object())
}

func TestClientWrapsNonJSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(server.Close)

	resp, err := Client{BaseURL: server.URL, HTTPClient: server.Client()}.Do(context.Background(), Request{Path: "/x"})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, map[string]any{"text": "upstream exploded"}, resp.Body)
}

func TestClientRetriesRateLimitedCalls(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	resp, err := Client{BaseURL: server.URL, HTTPClient: server.Client(), MaxAttempts: 3}.
		Do(context.Background(), Request{Method: http.MethodPost, Path: "/post", Body: map[string]string{}})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		// Clamped to MaxWait so the test does not sleep.
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"ok":false,"error":"ratelimited"}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client(), MaxAttempts: 2, MaxWait: time.Millisecond}

	started := time.Now()
	resp, err := client.Do(context.Background(), Request{Path: "/post"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.Equal(t, "ratelimited", resp.Object()["error"])
	assert.Equal(t, int32(2), attempts.Load())
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestClientReportsTransportFailureWithoutRetry(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := Client{BaseURL: baseURL, MaxAttempts: 3}.Do(context.Background(), Request{Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /x")
}

func TestClientTimesOutSlowCalls(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}
	_, err := client.Do(context.Background(), Request{Path: "/slow"})
	require.Error(t, err)
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		path    string
		want    string
		wantErr string
	}{
		{name: "root", base: "https://slack.com", path: "/api/auth.test", want: "https://slack.com/api/auth.test"},
		{name: "keeps base path", base: "https://www.googleapis.com/calendar/v3", path: "/calendars/primary/events", want: "https://www.googleapis.com/calendar/v3/calendars/primary/events"},
		{name: "base with trailing slash", base: "https://api.notion.com/v1/", path: "blocks/x/children", want: "https://api.notion.com/v1/blocks/x/children"},
		{name: "empty base", base: "", path: "/x", wantErr: "api base url is required"},
		{name: "bad scheme", base: "ftp://example.com", path: "/x", wantErr: "http or https"},
		{name: "empty path", base: "https://example.com", path: "", wantErr: "api path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.base, tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
