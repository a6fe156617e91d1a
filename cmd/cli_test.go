package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestAgentsListShowsBuiltInDefaults(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Agent Authorization")
	assert.Contains(t, stdout, "agents: 4")
	assert.Contains(t, stdout, "agent_slackbot")
	assert.Contains(t, stdout, "built-in defaults")
}

func TestAgentsListJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAgentsFixture(home))

	stdout, _, err := executeCLI(t, home, "agents", "list", "--json")
	require.NoError(t, err)

	var grants []agentGrantOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &grants))
	assert.Equal(t, []agentGrantOutput{
		{Agent: "agent_ops", Actions: []string{"create_issue", "create_event"}},
	}, grants)
}

func TestAgentsGrantThenCheck(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "agents", "check", "--agent", "agent_ops", "--action", "create_issue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized agent or action")

	stdout, _, err := executeCLI(t, home, "agents", "grant", "--agent", "agent_ops", "--action", "create_issue")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, ".agentgate", "agents.toml"))

	stdout, _, err = executeCLI(t, home, "agents", "check", "--agent", "agent_ops", "--action", "create_issue")
	require.NoError(t, err)
	assert.Contains(t, stdout, "allowed")

	// Granting materialized the defaults as well.
	stdout, _, err = executeCLI(t, home, "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agents: 5")
	assert.NotContains(t, stdout, "built-in defaults")
}

func TestAgentsGrantRejectsUnknownAction(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "agents", "grant", "--agent", "agent_ops", "--action", "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestAgentsCheckRequiresFlags(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "agents", "check", "--agent", "agent_ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"action\" not set")
}

func TestTokenSetWritesTokenFileAndRemoveDeletesIt(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PATH", t.TempDir())

	stdout, _, err := executeCLI(t, home, "token", "set", "--provider", "google-calendar", "--value", " ya29.token ")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stored Google Calendar token")

	tokenPath := filepath.Join(home, ".agentgate", "tokens", "gcal")
	data, err := os.ReadFile(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", string(bytes.TrimSpace(data)))

	_, _, err = executeCLI(t, home, "token", "remove", "--provider", "gcal")
	require.NoError(t, err)
	_, err = os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(err))
}

func TestTokenSetRejectsUnknownProvider(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "token", "set", "--provider", "jira", "--value", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestConnectRequiresBrokerConfiguration(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "connect", "--provider", "slack")
	require.ErrorIs(t, err, errBrokerNotConfigured)
}

func TestConnectPrintsBrokerURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/outbound/oauth/connect/start", r.URL.Path)
		assert.Equal(t, "P1", r.Header.Get("x-descope-project-id"))
		assert.Equal(t, "Bearer K1", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"appId": "notion", "loginId": "alice", "tenantId": "acme"}, body)

		_, _ = fmt.Fprint(w, `{"url":"https://auth.example/consent?x=1"}`)
	}))
	defer server.Close()

	t.Setenv("DESCOPE_PROJECT_ID", "P1")
	t.Setenv("DESCOPE_AUTH_MANAGEMENT_KEY", "K1")
	t.Setenv("AGENTGATE_BROKER_BASE_URL", server.URL)

	stdout, _, err := executeCLI(t, t.TempDir(), "connect", "--provider", "notion", "--user", "alice", "--tenant", "acme")
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example/consent?x=1\n", stdout)
}

func TestSignPrintsFreshHeaders(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "sign", "--json")
	require.NoError(t, err)

	var headers map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &headers))

	ts, err := strconv.ParseInt(headers["X-Timestamp"], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), ts, 5)
	_, err = uuid.Parse(headers["X-Nonce"])
	assert.NoError(t, err)
}

func TestCallSendsSignedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trigger-summary", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Timestamp"))
		assert.NotEmpty(t, r.Header.Get("X-Nonce"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"agent":"agent_slackbot","messages":"hi"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"summary":"- hi"}`)
	}))
	defer server.Close()

	stdout, _, err := executeCLI(t, t.TempDir(), "call", "/trigger-summary", "-q",
		"--url", server.URL,
		"--data", `{"agent":"agent_slackbot","messages":"hi"}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"summary": "- hi"`)
}

func TestCallShowsSpinnerAndReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"error":"Unauthorized agent or action","code":"unauthorized"}`)
	}))
	defer server.Close()

	stdout, stderr, err := executeCLI(t, t.TempDir(), "call", "/slack/post", "--url", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway answered 403")
	assert.Contains(t, stdout, "unauthorized")
	assert.Contains(t, stderr, "Calling /slack/post")
}

func TestCallSpinnerShowsElapsedTimeForSlowCalls(t *testing.T) {
	model := newCallSpinnerModel("Calling /calendar/create...", nil)
	assert.NotContains(t, model.View(), "(")

	model.started = time.Now().Add(-3500 * time.Millisecond)
	assert.Contains(t, model.View(), "Calling /calendar/create... (3s)")

	model.done = true
	assert.Empty(t, model.View())
}

func TestCallRejectsNonObjectBody(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "call", "/health", "--data", "[1,2]")
	require.ErrorIs(t, err, errInvalidCallBody)
}

func TestServeAnswersHealthAndStopsOnCancel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGENTGATE_CONFIG", "")
	t.Setenv("GEMINI_API_KEY", "")

	app, err := wireApp()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bound := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, "127.0.0.1:0", func(addr net.Addr) { bound <- addr })
	}()

	var addr net.Addr
	select {
	case addr = <-bound:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true,"broker":false,"summarizer":false}`, string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestDialAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:5001", dialAddr("0.0.0.0:5001"))
	assert.Equal(t, "127.0.0.1:5001", dialAddr(":5001"))
	assert.Equal(t, "127.0.0.1:5001", dialAddr("[::]:5001"))
	assert.Equal(t, "10.0.0.2:80", dialAddr("10.0.0.2:80"))
	assert.Equal(t, "weird", dialAddr("weird"))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("AGENTGATE_CONFIG", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeAgentsFixture(home string) error {
	configDir := filepath.Join(home, ".agentgate")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	agents := `version = 1

[[agents]]
id = "agent_ops"
actions = ["create_issue", "create_event"]
`

	return os.WriteFile(filepath.Join(configDir, "agents.toml"), []byte(agents), 0o600)
}
