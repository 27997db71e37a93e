package judge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJudgeServer(t *testing.T, wireStatus string, authCalls, submitCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		authCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"token":     "tkn-123",
			"expiresIn": 3600,
		})
	})
	mux.HandleFunc("/submissions", func(w http.ResponseWriter, r *http.Request) {
		submitCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tkn-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":          wireStatus,
			"executionTimeMs": 250,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *HttpClient {
	return NewHttpClient(HttpClientConfig{
		BaseURL:  baseURL,
		Username: "engine",
		Password: "secret",
		Timeout:  5 * time.Second,
	}, slog.Default())
}

func TestSubmitReturnsMappedVerdict(t *testing.T) {
	var authCalls, submitCalls atomic.Int32
	server := newJudgeServer(t, "ACCEPTED", &authCalls, &submitCalls)
	client := newTestClient(server.URL)

	verdict, err := client.Submit(context.Background(), "code", "go", "ex-1")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, verdict.Status)
	assert.True(t, verdict.Accepted())
	assert.Equal(t, int64(250), verdict.ExecTimeMs)
}

func TestTokenIsCachedAcrossSubmits(t *testing.T) {
	var authCalls, submitCalls atomic.Int32
	server := newJudgeServer(t, "WRONG_ANSWER", &authCalls, &submitCalls)
	client := newTestClient(server.URL)

	for i := 0; i < 3; i++ {
		verdict, err := client.Submit(context.Background(), "code", "go", "ex-1")
		require.NoError(t, err)
		assert.Equal(t, StatusWrongAnswer, verdict.Status)
	}

	assert.Equal(t, int32(1), authCalls.Load(), "token must be fetched once and cached")
	assert.Equal(t, int32(3), submitCalls.Load())
}

func TestTransportFailureResolvesToRuntimeError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1") // nothing listens here

	verdict, err := client.Submit(context.Background(), "code", "go", "ex-1")
	require.NoError(t, err, "transport failures must not propagate as errors")
	assert.Equal(t, StatusRuntimeError, verdict.Status)
}

func TestUnknownWireVerdictResolvesToRuntimeError(t *testing.T) {
	var authCalls, submitCalls atomic.Int32
	server := newJudgeServer(t, "SOMETHING_NEW", &authCalls, &submitCalls)
	client := newTestClient(server.URL)

	verdict, err := client.Submit(context.Background(), "code", "go", "ex-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRuntimeError, verdict.Status)
}

func TestCancelledContextPropagates(t *testing.T) {
	var authCalls, submitCalls atomic.Int32
	server := newJudgeServer(t, "ACCEPTED", &authCalls, &submitCalls)
	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Submit(ctx, "code", "go", "ex-1")
	assert.ErrorIs(t, err, context.Canceled)
}
