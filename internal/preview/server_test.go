package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflow-ui/reflow/internal/config"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.Default(), zerolog.Nop())
}

func TestIndexServesShell(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHealthReportsLiveNodes(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var health struct {
		Status    string `json:"status"`
		Clients   int    `json:"clients"`
		LiveNodes int    `json:"live_nodes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Clients)
	assert.Greater(t, health.LiveNodes, 0, "demo tree should be mounted")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSnapshotContainsDemo(t *testing.T) {
	srv := newTestServer(t)

	html := srv.doc.HTML()
	assert.Contains(t, html, "Counter")
	assert.Contains(t, html, "Todos")
	assert.Contains(t, html, "data-rid=")
}

func TestDispatchEventRerendersTree(t *testing.T) {
	srv := newTestServer(t)

	before := srv.doc.HTML()
	require.Contains(t, before, "count: 0, doubled: 0")

	// The first button in the tree is the counter increment.
	node := findButton(t, srv, "+1")
	require.NoError(t, srv.dispatchEvent(node, vdom.Event{Type: "click"}))

	after := srv.doc.HTML()
	assert.Contains(t, after, "count: 1, doubled: 2")
}

func TestDispatchToUnknownNodeFails(t *testing.T) {
	srv := newTestServer(t)
	err := srv.dispatchEvent(999999, vdom.Event{Type: "click"})
	assert.Error(t, err)
}

// findButton scans node ids for a button whose snapshot label matches.
func findButton(t *testing.T, srv *Server, label string) int {
	t.Helper()
	for id := 1; id < 200; id++ {
		n := srv.doc.NodeByID(id)
		if n == nil || n.Tag() != "button" {
			continue
		}
		kids := n.Children()
		if len(kids) > 0 && kids[0].IsText() && strings.Contains(kids[0].Text(), label) {
			return id
		}
	}
	t.Fatalf("no button labeled %q", label)
	return 0
}
