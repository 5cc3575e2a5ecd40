// Package preview runs a local HTTP server that mounts the demo
// application into an in-memory host and mirrors it to browsers over
// WebSocket. Clients receive a full HTML snapshot after every render and
// send events back addressed by node id.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/reflow-ui/reflow/internal/config"
	"github.com/reflow-ui/reflow/internal/metrics"
	"github.com/reflow-ui/reflow/internal/telemetry"
	"github.com/reflow-ui/reflow/pkg/memdom"
	"github.com/reflow-ui/reflow/pkg/mount"
	"github.com/reflow-ui/reflow/pkg/vdom"
)

// Server hosts the preview application.
type Server struct {
	cfg config.Config
	log zerolog.Logger

	doc *memdom.Document
	hub *Hub

	// renderMu serializes event dispatch and the renders it triggers.
	renderMu sync.Mutex
	lastOps  int

	dispose mount.Disposer
	httpSrv *http.Server
}

// NewServer builds the preview server and mounts the demo application.
func NewServer(cfg config.Config, log zerolog.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		doc: memdom.NewDocument(),
	}
	s.hub = NewHub(log, s.dispatchEvent, s.doc.HTML)

	app := newDemo()
	s.renderMu.Lock()
	s.dispose = mount.RenderScoped(app.view, s.doc, s.doc.Root(),
		mount.AfterRender(s.afterRender))
	s.renderMu.Unlock()

	return s
}

// afterRender runs once per reconciliation pass with the live tree
// settled. It accounts for the host mutations the pass performed and
// pushes the fresh snapshot to connected clients.
func (s *Server) afterRender() {
	total := s.doc.Ops().Total()
	metrics.RecordHostOps(total - s.lastOps)
	s.lastOps = total

	s.hub.Broadcast(s.doc.HTML())
}

// dispatchEvent delivers a client event to the live tree. Dispatch and
// the synchronous re-render it triggers run under renderMu, so concurrent
// clients see consistent snapshots.
func (s *Server) dispatchEvent(node int, ev vdom.Event) (err error) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	opsBefore := s.doc.Ops().Total()
	_, span := telemetry.StartEvent(context.Background(), ev.Type, node)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panic: %v", r)
		}
		telemetry.EndEvent(span, s.doc.Ops().Total()-opsBefore, err)
		metrics.RecordEvent(ev.Type, time.Since(start), err)
	}()

	return s.doc.Dispatch(node, ev)
}

// Handler returns the HTTP routes for the preview server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("preview server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()

	err := s.httpSrv.Shutdown(shutdownCtx)
	s.hub.Close()
	s.dispose()
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","clients":%d,"live_nodes":%d}`, s.hub.ClientCount(), s.doc.Live())
}

// indexPage is the preview shell. It renders snapshots into #root and
// forwards DOM events to the server, addressing nodes by data-rid.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>reflow preview</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
.todo.done span { text-decoration: line-through; color: #888; }
#status { color: #888; font-size: 0.8rem; }
</style>
</head>
<body>
<div id="status">connecting...</div>
<div id="root"></div>
<script>
(function() {
    'use strict';

    var root = document.getElementById('root');
    var status = document.getElementById('status');
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            status.textContent = 'connected';
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'snapshot') {
                root.innerHTML = msg.html;
            } else if (msg.type === 'error') {
                status.textContent = 'error: ' + msg.error;
            }
        };

        ws.onclose = function() {
            status.textContent = 'disconnected, reconnecting...';
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function send(node, event, value, key) {
        if (!ws || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        ws.send(JSON.stringify({
            type: 'event',
            node: parseInt(node, 10),
            event: event,
            value: value || '',
            key: key || ''
        }));
    }

    function targetID(e) {
        var el = e.target.closest('[data-rid]');
        return el ? el.getAttribute('data-rid') : null;
    }

    root.addEventListener('click', function(e) {
        var id = targetID(e);
        if (id !== null) {
            send(id, 'click');
        }
    });

    root.addEventListener('input', function(e) {
        var id = targetID(e);
        if (id !== null) {
            send(id, 'input', e.target.value);
        }
    });

    root.addEventListener('change', function(e) {
        var id = targetID(e);
        if (id !== null) {
            send(id, 'change', e.target.value);
        }
    });

    root.addEventListener('keydown', function(e) {
        var id = targetID(e);
        if (id !== null) {
            send(id, 'keydown', e.target.value, e.key);
        }
    });

    connect();
})();
</script>
</body>
</html>
`
