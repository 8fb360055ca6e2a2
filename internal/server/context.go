// Package server holds the shared state behind the MCP server mode: the
// per-account Gmail client cache, the metrics recorder and the dedicated
// Prometheus endpoint.
package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/draftpatch/draftpatch/internal/gmail"
	"github.com/draftpatch/draftpatch/internal/instrumentation"
	"github.com/draftpatch/draftpatch/internal/logging"
)

// ServerContext carries the state shared by all tool handlers.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	// gmailClients maps account name to an authenticated client.
	gmailClients map[string]*gmail.Client

	// readOnly blocks tools that mutate mailbox state.
	readOnly bool

	metrics *instrumentation.Metrics

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext builds the server state. A client for the default
// account is created eagerly when a token is already cached; other
// accounts are initialized lazily on first use.
func NewServerContext(ctx context.Context, readOnly bool) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	clients := make(map[string]*gmail.Client)
	if gmail.HasToken() {
		client, err := gmail.NewClient(shutdownCtx)
		if err != nil {
			// Re-attempted on first use.
			slog.Warn("failed to create client for default account", logging.Err(err))
		} else {
			clients["default"] = client
		}
	}

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		gmailClients: clients,
		readOnly:     readOnly,
		metrics:      &instrumentation.Metrics{},
	}, nil
}

// Context returns the server lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ReadOnly reports whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// SetMetrics installs the metrics recorder once instrumentation is up.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if m != nil {
		sc.metrics = m
	}
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// GmailClientForAccount returns a cached client for the account, creating
// one when a token is available. Returns nil for unauthenticated accounts.
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	if !gmail.HasTokenForAccount(account) {
		return nil
	}

	client, err := gmail.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create client",
			logging.Account(logging.AnonymizeEmail(account)),
			logging.Err(err))
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the client for the default account.
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// SetGmailClientForAccount caches a client for the account. Used after a
// tool-driven authentication completes.
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
