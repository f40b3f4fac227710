// FILE: src/internal/service/status.go
package service

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"daqingest/src/internal/client"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// StatusOptions configures the status HTTP endpoint.
type StatusOptions struct {
	Host string
	Port int64

	// PHC-format Argon2id hash of the bearer token. Empty disables auth.
	TokenHash string
}

// StatusServer exposes the client's counters over HTTP. It reads only
// atomic counters and snapshots, never the ingestion hot path.
type StatusServer struct {
	client *client.Client
	opts   StatusOptions
	logger *log.Logger
	server *fasthttp.Server

	ln        net.Listener
	wg        sync.WaitGroup
	startTime time.Time

	// Statistics
	totalRequests atomic.Uint64
	authFailures  atomic.Uint64
}

func NewStatusServer(c *client.Client, opts StatusOptions, logger *log.Logger) *StatusServer {
	s := &StatusServer{
		client:    c,
		opts:      opts,
		logger:    logger,
		startTime: time.Now(),
	}
	s.server = &fasthttp.Server{
		Handler:         s.handleRequest,
		CloseOnShutdown: true,
	}
	return s
}

// Start binds the listener and serves in the background. The bind happens
// synchronously so address conflicts surface to the caller.
func (s *StatusServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status server listen on %s: %w", addr, err)
	}

	s.logger.Info("msg", "Status server started",
		"component", "status_server",
		"address", addr,
		"auth", s.opts.TokenHash != "")

	s.serveAsync(ln)
	return nil
}

// Serve runs the server on a caller-supplied listener, for tests.
func (s *StatusServer) Serve(ln net.Listener) {
	s.serveAsync(ln)
}

func (s *StatusServer) serveAsync(ln net.Listener) {
	s.ln = ln
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error("msg", "Status server failed",
				"component", "status_server",
				"error", err)
		}
	}()
}

// Stop shuts the server down and waits for the serve goroutine.
func (s *StatusServer) Stop() {
	if s.ln == nil {
		return
	}
	if err := s.server.Shutdown(); err != nil {
		s.logger.Warn("msg", "Status server shutdown error",
			"component", "status_server",
			"error", err)
	}
	s.wg.Wait()

	s.logger.Info("msg", "Status server stopped",
		"component", "status_server")
}

func (s *StatusServer) handleRequest(ctx *fasthttp.RequestCtx) {
	s.totalRequests.Add(1)

	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")

	case "/status":
		if !s.authorize(ctx) {
			return
		}
		s.handleStatus(ctx)

	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *StatusServer) handleStatus(ctx *fasthttp.RequestCtx) {
	snapshot := struct {
		client.Stats
		ServerUptime  string `json:"server_uptime"`
		TotalRequests uint64 `json:"total_requests"`
	}{
		Stats:         s.client.Stats(),
		ServerUptime:  time.Since(s.startTime).Round(time.Second).String(),
		TotalRequests: s.totalRequests.Load(),
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func (s *StatusServer) authorize(ctx *fasthttp.RequestCtx) bool {
	if s.opts.TokenHash == "" {
		return true
	}

	header := string(ctx.Request.Header.Peek("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	if ok && VerifyToken(token, s.opts.TokenHash) {
		return true
	}

	s.authFailures.Add(1)
	s.logger.Warn("msg", "Status request rejected",
		"component", "status_server",
		"remote", ctx.RemoteAddr().String())

	ctx.Response.Header.Set("WWW-Authenticate", `Bearer realm="daqingest"`)
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	return false
}
