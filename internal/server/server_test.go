package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/ledger"
	"github.com/roehl/interlog/internal/notify"
	"github.com/roehl/interlog/internal/testutil"
)

const (
	testWaitTimeout = 2 * time.Second
	testWaitTick    = 10 * time.Millisecond
)

type testEnv struct {
	ts      *httptest.Server
	capture *testutil.CaptureSink
}

// newTestEnv wires a server over an in-memory log with a capturing
// notification dispatcher and a two-actor keyring.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kr := &identity.Keyring{Keys: map[string]string{
		"key-alice": "alice",
		"key-bob":   "bob",
	}}

	capture := testutil.NewCaptureSink()
	dispatcher := notify.NewDispatcher(capture, 16)
	t.Cleanup(dispatcher.Close)

	log := ledger.NewLog(ledger.WithClock(testutil.NewFixedClock(1700000000)))

	srv, err := New(log, kr, dispatcher, ":0")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, capture: capture}
}

func (e *testEnv) record(t *testing.T, key, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/v1/interactions", bytes.NewBufferString(body))
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServer_RequiresKeyring(t *testing.T) {
	_, err := New(ledger.NewLog(), nil, nil, ":0")
	assert.Error(t, err)
}

func TestRecord_RejectsMissingOrUnknownKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.record(t, "", `{"action":"x"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.record(t, "wrong-key", `{"action":"x"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecord_AppendsAndReturnsIndex(t *testing.T) {
	env := newTestEnv(t)

	resp := env.record(t, "key-alice", `{"action":"Article Posted"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Index int64 `json:"index"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, int64(0), body.Index)

	resp = env.record(t, "key-bob", `{"action":"Comment Added"}`)
	decodeJSON(t, resp, &body)
	assert.Equal(t, int64(1), body.Index)
}

func TestRecord_ActorComesFromKeyNotPayload(t *testing.T) {
	env := newTestEnv(t)

	// A forged actor field in the body must be ignored.
	resp := env.record(t, "key-alice", `{"action":"Spoof Attempt","actor":"mallory"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	getResp, err := http.Get(env.ts.URL + "/v1/interactions/0")
	require.NoError(t, err)

	var rec ledger.Interaction
	decodeJSON(t, getResp, &rec)
	assert.Equal(t, "alice", rec.Actor)
}

func TestRecord_EmitsNotification(t *testing.T) {
	env := newTestEnv(t)

	resp := env.record(t, "key-alice", `{"action":"Article Posted"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Dispatcher delivery is asynchronous; Close drains it.
	assert.Eventually(t, func() bool {
		events := env.capture.Events()
		return len(events) == 1 &&
			events[0].Actor == "alice" &&
			events[0].Action == "Article Posted"
	}, testWaitTimeout, testWaitTick)
}

func TestCount_PublicRead(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.ts.URL + "/v1/interactions/count")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count int64 `json:"count"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, int64(0), body.Count)

	env.record(t, "key-alice", `{"action":"x"}`).Body.Close()

	resp, err = http.Get(env.ts.URL + "/v1/interactions/count")
	require.NoError(t, err)
	decodeJSON(t, resp, &body)
	assert.Equal(t, int64(1), body.Count)
}

func TestGet_OutOfRangeIs404(t *testing.T) {
	env := newTestEnv(t)
	env.record(t, "key-alice", `{"action":"x"}`).Body.Close()

	resp, err := http.Get(env.ts.URL + "/v1/interactions/5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(ledger.ErrCodeIndexOutOfRange), body.Error.Code)
}

func TestGet_NonIntegerIndexIs400(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.ts.URL + "/v1/interactions/abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestList_FiltersByActor(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "key-alice", `{"action":"One"}`).Body.Close()
	env.record(t, "key-bob", `{"action":"Two"}`).Body.Close()
	env.record(t, "key-alice", `{"action":"Three"}`).Body.Close()

	resp, err := http.Get(env.ts.URL + "/v1/interactions?actor=alice")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Interactions []ledger.Interaction `json:"interactions"`
	}
	decodeJSON(t, resp, &body)
	require.Len(t, body.Interactions, 2)
	assert.Equal(t, "One", body.Interactions[0].Action)
	assert.Equal(t, "Three", body.Interactions[1].Action)
}

func TestList_RequiresActor(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.ts.URL + "/v1/interactions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodDelete, env.ts.URL+"/v1/interactions", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	req, err = http.NewRequest(http.MethodPost, fmt.Sprintf("%s/v1/interactions/0", env.ts.URL), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
