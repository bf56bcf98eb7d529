package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polyroots/internal/config"
	"github.com/njchilds90/polyroots/internal/server"
)

func newTestServer(t *testing.T) (*server.Server, *httptest.Server) {
	t.Helper()
	srv := server.New(config.Default(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postTool(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

// ============================================================
// HTTP tool endpoint
// ============================================================

func TestTool(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := postTool(t, ts.URL, `{"tool":"to_vector","params":{"expr":"x^2-4"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []interface{}{"1", "0", "-4"}, out["result"])

	_, out = postTool(t, ts.URL, `{"tool":"solve","params":{"expr":"x^3-2x^2-5x+6"}}`)
	assert.Equal(t, "[-2 1 3]", out["string"])

	_, out = postTool(t, ts.URL, `{"tool":"analyze_forms","params":{"expr":"x^11"}}`)
	assert.Contains(t, out["error"], "degree")
}

func TestTool_BadRequests(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := postTool(t, ts.URL, `{"tool":"solve","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "unknown field")

	resp, out = postTool(t, ts.URL, `{"tool":"solve"} {}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "trailing data")

	getResp, err := http.Get(ts.URL + "/tool")
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, getResp.StatusCode)
}

func TestSchemaAndHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	var schema struct {
		Tools []map[string]interface{} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	assert.NotEmpty(t, schema.Tools)

	hresp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer hresp.Body.Close()
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(hresp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(0), health["sessions"])
}

// ============================================================
// WebSocket tutorial
// ============================================================

type reply struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Payload   json.RawMessage `json:"payload"`
}

type view struct {
	Stage     string   `json:"stage"`
	Completed []string `json:"completed"`
	NoRoots   bool     `json:"no_roots"`
	RZT       *struct {
		PValues []int64 `json:"p_values"`
	} `json:"rzt"`
	Synthetic *struct {
		State         string   `json:"state"`
		Remaining     []string `json:"remaining"`
		RationalRoots []string `json:"rational_roots"`
	} `json:"synthetic"`
	Report *struct {
		Outcome       string   `json:"outcome"`
		RationalRoots []string `json:"rational_roots"`
	} `json:"report"`
}

type errPayload struct {
	Code string `json:"code"`
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/session"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, typ string, payload interface{}) reply {
	t.Helper()
	msg := map[string]interface{}{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	require.NoError(t, ws.WriteJSON(msg))
	var r reply
	require.NoError(t, ws.ReadJSON(&r))
	return r
}

func stateOf(t *testing.T, r reply) view {
	t.Helper()
	require.Equal(t, "state", r.Type, string(r.Payload))
	var v view
	require.NoError(t, json.Unmarshal(r.Payload, &v))
	return v
}

func codeOf(t *testing.T, r reply) string {
	t.Helper()
	require.Equal(t, "error", r.Type)
	var e errPayload
	require.NoError(t, json.Unmarshal(r.Payload, &e))
	return e.Code
}

func TestSession_FullWalkThrough(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dial(t, ts)

	assert.Equal(t, "pong", send(t, ws, "ping", nil).Type)
	assert.Equal(t, "no_tutorial", codeOf(t, send(t, ws, "next", nil)))

	r := send(t, ws, "start", map[string]string{"polynomial": "x^3-2x^2-5x+6"})
	v := stateOf(t, r)
	assert.NotEmpty(t, r.SessionID)
	assert.Equal(t, "forms", v.Stage)

	v = stateOf(t, send(t, ws, "next", nil))
	assert.Equal(t, "rzt", v.Stage)
	require.NotNil(t, v.RZT)
	assert.Equal(t, []int64{1, 2, 3, 6}, v.RZT.PValues)

	assert.Equal(t, "stage_locked", codeOf(t, send(t, ws, "goto", map[string]string{"stage": "synthetic"})))

	v = stateOf(t, send(t, ws, "next", nil))
	assert.Equal(t, "descartes", v.Stage)
	v = stateOf(t, send(t, ws, "next", nil))
	assert.Equal(t, "synthetic", v.Stage)
	require.NotNil(t, v.Synthetic)
	assert.Equal(t, "awaiting_guess", v.Synthetic.State)

	assert.Equal(t, "unknown_candidate", codeOf(t, send(t, ws, "guess", map[string]string{"candidate": "5/7"})))
	assert.Equal(t, "stage_locked", codeOf(t, send(t, ws, "final", nil)))

	for _, c := range []string{"3", "-2", "1"} {
		v = stateOf(t, send(t, ws, "guess", map[string]string{"candidate": c}))
	}
	assert.Equal(t, "complete", v.Synthetic.State)
	assert.Equal(t, []string{"3", "-2", "1"}, v.Synthetic.RationalRoots)

	v = stateOf(t, send(t, ws, "final", nil))
	assert.Equal(t, "final", v.Stage)
	require.NotNil(t, v.Report)
	assert.Equal(t, "complete", v.Report.Outcome)
	assert.Len(t, v.Completed, 5)

	v = stateOf(t, send(t, ws, "goto", map[string]string{"stage": "forms"}))
	assert.Equal(t, "forms", v.Stage)
}

func TestSession_Errors(t *testing.T) {
	srv, ts := newTestServer(t)
	ws := dial(t, ts)

	assert.Equal(t, "parse_failure", codeOf(t, send(t, ws, "start", map[string]string{"polynomial": "x^2+y"})))
	assert.Equal(t, "degree_limit", codeOf(t, send(t, ws, "start", map[string]string{"polynomial": "x^12"})))
	assert.Equal(t, "unknown_type", codeOf(t, send(t, ws, "hello", nil)))

	stateOf(t, send(t, ws, "start", map[string]string{"polynomial": "8"}))
	assert.Equal(t, "unknown_stage", codeOf(t, send(t, ws, "goto", map[string]string{"stage": "integrate"})))
	assert.Equal(t, 1, srv.ActiveSessions())
}

func TestSession_NoRoots(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dial(t, ts)

	v := stateOf(t, send(t, ws, "start", map[string]string{"polynomial": "8"}))
	assert.True(t, v.NoRoots)
}
