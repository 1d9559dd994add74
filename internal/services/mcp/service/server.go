package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
	"github.com/atelierfolio/atelier/internal/services/mcp/domain"
	"github.com/atelierfolio/atelier/internal/services/site/resume"
)

const (
	serverName    = "atelier MCP"
	serverVersion = "0.1.0"

	defaultHTTPAddr = "localhost:8089"
)

// TransportKind identifies the MCP transport type.
type TransportKind string

const (
	// TransportStdio serves MCP over the process stdin and stdout.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP service.
type Config struct {
	Transport TransportKind
	// HTTPAddr is only used by TransportHTTP.
	HTTPAddr string
	// Content is the workspace scanned for portfolio and resume content. A
	// nil source serves the sample content.
	Content  content.Source
	CacheTTL time.Duration
	Now      func() time.Time
}

// Server hosts the MCP server and the caches its tools share.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer registers every portfolio tool and resource.
func NewServer(cfg Config) *Server {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = timeouts.ContentCache
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: "Read-only access to the atelier portfolio: list portfolio items, read the living resume and describe scene rooms.",
	})

	resumeCache := resume.NewCache(ttl, now)
	mcp.AddTool(mcpServer, domain.PortfolioListTool(), domain.PortfolioListHandler(cfg.Content))
	mcp.AddTool(mcpServer, domain.ResumeGetTool(), domain.ResumeGetHandler(resumeCache, resume.LoaderFor(cfg.Content, now)))
	mcp.AddTool(mcpServer, domain.RoomDescribeTool(), domain.RoomDescribeHandler())
	mcpServer.AddResource(domain.RoomsResource(), domain.RoomsResourceHandler())

	return &Server{mcpServer: mcpServer}
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := NewServer(cfg)
	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// ParseTransport maps a transport flag value to its kind.
func ParseTransport(raw string) (TransportKind, error) {
	switch kind := TransportKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case "":
		return TransportStdio, nil
	case TransportStdio, TransportHTTP:
		return kind, nil
	default:
		return "", fmt.Errorf("transport %q is not supported", raw)
	}
}

// serveWithTransport runs the MCP server on transport until the session or
// the context ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP exposes the MCP server over streamable HTTP and shuts down when
// ctx ends.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP transport listening on %s", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP transport: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP transport: %w", err)
	}
}

func (s *Server) httpHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" /up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil))
	return mux
}
