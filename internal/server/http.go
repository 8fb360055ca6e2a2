package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServer serves the MCP streamable-http transport together with a
// health endpoint.
type HTTPServer struct {
	httpServer *http.Server
	addr       string
}

// NewHTTPServer mounts the MCP server at /mcp.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, addr string) (*HTTPServer, error) {
	if mcpSrv == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	if addr == "" {
		addr = ":8080"
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &HTTPServer{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Start serves until the listener fails or Shutdown is called. Blocking.
func (s *HTTPServer) Start() error {
	slog.Info("starting http server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bind address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
