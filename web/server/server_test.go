package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/panyam/ramtool/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesBody = `{
  "id": "demo",
  "structure": {"kind": "series"},
  "components": [
    {"id": "a", "name": "A", "distribution": {"type": "exponential", "lambda": 0.001}, "mttr": 5, "enabled": true},
    {"id": "b", "name": "B", "distribution": {"type": "exponential", "mtbf": 1000}, "mttr": 5, "enabled": true}
  ],
  "plotSettings": {"tMax": 1000, "samples": 3}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cache, err := services.NewResultCache(8)
	require.NoError(t, err)
	svc := services.NewRamService(services.NewMemoryStore(), cache)
	ts := httptest.NewServer(NewServer("", svc).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		var raw bytes.Buffer
		_, _ = raw.ReadFrom(resp.Body)
		if strings.HasPrefix(strings.TrimSpace(raw.String()), "{") {
			require.NoError(t, json.Unmarshal(raw.Bytes(), &out), raw.String())
		}
	}
	return resp.StatusCode, out
}

func TestHealthAndConvert(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, "GET", "/api/health", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])

	status, body = do(t, ts, "POST", "/api/convert", `{"mtbf": 1000, "mttr": 10}`)
	assert.Equal(t, 200, status)
	assert.InDelta(t, 0.001, body["lambda"], 1e-15)
	assert.InDelta(t, 1000.0/1010.0, body["A"], 1e-12)
	assert.Equal(t, "ok", body["notes"])

	status, body = do(t, ts, "POST", "/api/convert", `{"lambda": 0.5}`)
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "A")
	assert.Nil(t, body["A"])

	status, body = do(t, ts, "POST", "/api/convert", `{}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Provide either lambda or MTBF (both > 0).", body["detail"])

	status, body = do(t, ts, "POST", "/api/convert", `not json`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid request body.", body["detail"])
}

func TestSolveEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, "POST", "/api/solve/rbd", seriesBody)
	require.Equal(t, 200, status, body)
	kpis := body["kpis"].(map[string]any)
	assert.Equal(t, 1.0, kpis["R_t0"])
	assert.InDelta(t, 0.1353352832366127, kpis["R_tmax"], 1e-12)
	assert.Equal(t, []any{0.001, 0.001}, body["lambdas"])

	status, body = do(t, ts, "POST", "/api/solve/availability", seriesBody)
	require.Equal(t, 200, status, body)
	assert.Len(t, body["warnings"], 1)

	status, body = do(t, ts, "POST", "/api/solve/weibull", seriesBody)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Unknown solve kind 'weibull'.", body["detail"])

	status, body = do(t, ts, "POST", "/api/solve/rbd", `{"id":"x","structure":{"kind":"bridge"},"components":[{"id":"a","name":"A","distribution":{"type":"exponential","lambda":1},"enabled":true}],"plotSettings":{"tMax":1,"samples":2}}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Unsupported structure kind.", body["detail"])

	status, body = do(t, ts, "POST", "/api/distribution/r", `{"distribution":{"type":"exponential","lambda":0.5},"t":[0,2]}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "exponential", body["notes"])

	status, body = do(t, ts, "POST", "/api/distribution/r", `{"distribution":{"type":"exponential","lambda":0.5},"t":[-1]}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Time values must be non-negative.", body["detail"])
}

func TestSolveAcceptsIntegralNumbers(t *testing.T) {
	ts := newTestServer(t)
	scenario := func(k, samples string) string {
		return `{"id":"x","structure":{"kind":"kofn","k":` + k + `},"components":[` +
			`{"id":"a","name":"A","distribution":{"type":"exponential","lambda":0.1},"enabled":true},` +
			`{"id":"b","name":"B","distribution":{"type":"exponential","lambda":0.1},"enabled":true}],` +
			`"plotSettings":{"tMax":10,"samples":` + samples + `}}`
	}

	status, body := do(t, ts, "POST", "/api/solve/rbd", scenario("1.0", "3.0"))
	require.Equal(t, 200, status, body)
	assert.Len(t, body["r_curve"].(map[string]any)["t"], 3)

	status, body = do(t, ts, "POST", "/api/solve/rbd", scenario("1.5", "3"))
	assert.Equal(t, 400, status)
	assert.Equal(t, "k-of-n requires an integer k >= 1.", body["detail"])

	status, body = do(t, ts, "POST", "/api/solve/rbd", scenario("1", "2.5"))
	assert.Equal(t, 400, status)
	assert.Equal(t, "Samples must be >= 2.", body["detail"])

	status, body = do(t, ts, "POST", "/api/solve/rbd", `{"id":`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid request body.", body["detail"])
}

func TestValidateFormulasTemplates(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, "POST", "/api/validate", `{"id":"x","structure":{"kind":"series"},"components":[],"plotSettings":{"tMax":0,"samples":1}}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["isValid"])
	assert.Len(t, body["errors"], 3)

	status, body = do(t, ts, "POST", "/api/formulas/rbd", seriesBody)
	assert.Equal(t, 200, status)
	assert.Equal(t, "rbd", body["kind"])
	assert.Equal(t, "series", body["structure"])

	status, body = do(t, ts, "POST", "/api/formulas/convert", `{"mtbf": 100}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "converter", body["kind"])

	resp, err := http.Get(ts.URL + "/api/templates")
	require.NoError(t, err)
	defer resp.Body.Close()
	var templates []services.Template
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&templates))
	assert.Len(t, templates, 4)

	status, _ = do(t, ts, "GET", "/api/templates/two-of-three", "")
	assert.Equal(t, 200, status)
	status, body = do(t, ts, "GET", "/api/templates/none", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Unknown template 'none'.", body["detail"])
}

func TestScenarioCRUD(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, "POST", "/api/scenarios", `{"name": "Plant A", "scenario": `+seriesBody+`}`)
	require.Equal(t, 200, status, body)
	assert.Equal(t, "demo", body["id"])
	assert.Equal(t, "Plant A", body["name"])

	status, body = do(t, ts, "GET", "/api/scenarios/demo", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Plant A", body["name"])

	status, body = do(t, ts, "POST", "/api/scenarios/demo/solve/rbd", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "r_curve")

	resp, err := http.Get(ts.URL + "/api/scenarios")
	require.NoError(t, err)
	var list []services.ScenarioRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)

	status, _ = do(t, ts, "DELETE", "/api/scenarios/demo", "")
	assert.Equal(t, 204, status)

	status, body = do(t, ts, "GET", "/api/scenarios/demo", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Scenario not found.", body["detail"])

	status, body = do(t, ts, "POST", "/api/scenarios", `{"name": "x"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Scenario is required.", body["detail"])
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	status, body := do(t, ts, "GET", "/api/nothing", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Not found.", body["detail"])
}

func dialLive(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello liveOutbound
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)
	return conn
}

// liveReply decodes the untyped result payload of an outbound message.
type liveReply struct {
	Type    string `json:"type"`
	Seq     uint64 `json:"seq"`
	Message string `json:"message"`
	Result  struct {
		Data   map[string]any `json:"data"`
		Error  *string        `json:"error"`
		Status int            `json:"status"`
	} `json:"result"`
}

func TestLiveSession(t *testing.T) {
	ts := newTestServer(t)
	conn := dialLive(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	var pong liveReply
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, "pong", pong.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"solve","kind":"rbd","seq":1,"scenario":`+seriesBody+`}`)))
	var reply liveReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "result", reply.Type)
	assert.Equal(t, uint64(1), reply.Seq)
	assert.Equal(t, 200, reply.Result.Status)
	assert.Contains(t, reply.Result.Data, "r_curve")

	bad := strings.Replace(seriesBody, `"samples": 3`, `"samples": 1`, 1)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"solve","kind":"availability","seq":2,"scenario":`+bad+`}`)))
	reply = liveReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, uint64(2), reply.Seq)
	require.NotNil(t, reply.Result.Error)
	assert.Equal(t, "Samples must be >= 2.", *reply.Result.Error)
	assert.Equal(t, 400, reply.Result.Status)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "teleport"}))
	reply = liveReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "unsupported type: teleport", reply.Message)
}

func TestLiveSessionDropsStaleRequests(t *testing.T) {
	ts := newTestServer(t)
	conn := dialLive(t, ts)

	// seq 5 first, then an older seq 3 that must be ignored, then a ping
	// so the test has something to wait on.
	for _, msg := range []string{
		`{"type":"solve","kind":"rbd","seq":5,"scenario":` + seriesBody + `}`,
		`{"type":"solve","kind":"rbd","seq":3,"scenario":` + seriesBody + `}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	}

	var reply liveReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "result", reply.Type)
	assert.Equal(t, uint64(5), reply.Seq)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	reply = liveReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "pong", reply.Type)
}
