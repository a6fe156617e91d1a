package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bnema/agentgate/internal/adapters/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slackServer struct {
	mu    sync.Mutex
	calls []string
}

func (s *slackServer) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, method)
}

func (s *slackServer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newSlackServer(t *testing.T, handle func(s *slackServer, w http.ResponseWriter, r *http.Request)) (*slackServer, *Messenger) {
	t.Helper()

	state := &slackServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
		state.record(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		handle(state, w, r)
	}))
	t.Cleanup(server.Close)

	return state, NewMessenger(apiclient.Client{BaseURL: server.URL + "/api", HTTPClient: server.Client()})
}

func decodeJSON(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestPostMessageRejectsNonSlackToken(t *testing.T) {
	t.Parallel()

	messenger := NewMessenger(apiclient.Client{BaseURL: "http://127.0.0.1:1"})

	result, err := messenger.PostMessage(context.Background(), "ghp_wrong", "C123", "hi")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, http.StatusUnauthorized, result.Status)
}

func TestPostMessageChecksAuthThenPosts(t *testing.T) {
	t.Parallel()

	state, messenger := newSlackServer(t, func(s *slackServer, w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth.test":
			_, _ = w.Write([]byte(`{"ok":true,"user_id":"U1"}`))
		case "/api/chat.postMessage":
			body := decodeJSON(t, r)
			assert.Equal(t, "C0123ABCD", body["channel"])
			assert.Equal(t, "standup", body["text"])
			assert.Equal(t, false, body["unfurl_links"])
			assert.InDelta(t, 1, body["link_names"], 0)
			_, _ = w.Write([]byte(`{"ok":true,"ts":"1.2"}`))
		default:
			t.Errorf("unexpected call %s", r.URL.Path)
		}
	})

	result, err := messenger.PostMessage(context.Background(), "xoxb-test", "C0123ABCD", "standup")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, []string{"/api/auth.test", "/api/chat.postMessage"}, state.Calls())
}

func TestPostMessageStopsWhenAuthFails(t *testing.T) {
	t.Parallel()

	state, messenger := newSlackServer(t, func(s *slackServer, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
	})

	result, err := messenger.PostMessage(context.Background(), "xoxb-test", "C0123ABCD", "x")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, map[string]any{"ok": false, "error": "invalid_auth"}, result.Payload)
	assert.Equal(t, []string{"/api/auth.test"}, state.Calls())
}

func TestPostMessageResolvesChannelNameAcrossPages(t *testing.T) {
	t.Parallel()

	_, messenger := newSlackServer(t, func(s *slackServer, w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth.test":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/api/conversations.list":
			assert.Equal(t, "true", r.URL.Query().Get("exclude_archived"))
			if r.URL.Query().Get("cursor") == "" {
				_, _ = w.Write([]byte(`{"ok":true,"channels":[{"id":"C111","name":"random"}],"response_metadata":{"next_cursor":"page2"}}`))
				return
			}
			assert.Equal(t, "page2", r.URL.Query().Get("cursor"))
			_, _ = w.Write([]byte(`{"ok":true,"channels":[{"id":"C222","name":"general"}],"response_metadata":{"next_cursor":""}}`))
		case "/api/chat.postMessage":
			assert.Equal(t, "C222", decodeJSON(t, r)["channel"])
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	})

	result, err := messenger.PostMessage(context.Background(), "xoxb-test", "#general", "hi")
	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestPostMessageJoinsAndRetriesOnce(t *testing.T) {
	t.Parallel()

	var posts atomic.Int32
	state, messenger := newSlackServer(t, func(s *slackServer, w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth.test":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/api/conversations.join":
			assert.Equal(t, "C0123ABCD", decodeJSON(t, r)["channel"])
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/api/chat.postMessage":
			if posts.Add(1) == 1 {
				_, _ = w.Write([]byte(`{"ok":false,"error":"not_in_channel"}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	})

	result, err := messenger.PostMessage(context.Background(), "xoxb-test", "C0123ABCD", "hi")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"/api/auth.test", "/api/chat.postMessage", "/api/conversations.join", "/api/chat.postMessage"}, state.Calls())
}

func TestPostMessageDoesNotJoinForOtherErrors(t *testing.T) {
	t.Parallel()

	state, messenger := newSlackServer(t, func(s *slackServer, w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth.test" {
			_, _ = w.Write([]byte(`{"ok":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":false,"error":"msg_too_long"}`))
	})

	result, err := messenger.PostMessage(context.Background(), "xoxb-test", "C0123ABCD", "hi")
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, []string{"/api/auth.test", "/api/chat.postMessage"}, state.Calls())
}
