package server

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
	"github.com/atelierfolio/atelier/internal/services/site/storage"
)

// Config defines the inputs for the site HTTP boundary.
type Config struct {
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Services          Services
}

// Services are the collaborators behind the site API. Every field is
// optional: a nil content source serves samples, a nil vitals store disables
// vitals collection.
type Services struct {
	Content content.Source
	Pages   content.PageFetcher
	// PageIDs maps each page kind to its workspace page id.
	PageIDs map[content.PageKind]string
	// NotionConfigured reports whether a workspace API key was supplied.
	NotionConfigured bool
	Vitals           storage.VitalsStore
	CacheTTL         time.Duration
	SceneTick        time.Duration
	Now              func() time.Time
}

func (s Services) normalized() Services {
	if s.CacheTTL <= 0 {
		s.CacheTTL = timeouts.ContentCache
	}
	if s.SceneTick <= 0 {
		s.SceneTick = timeouts.SceneTick
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// Server owns the site listener and, once serving, the vitals store.
type Server struct {
	addr     string
	drain    time.Duration
	http     *http.Server
	vitals   storage.VitalsStore
	listener net.Listener
}

// NewServer validates config and prepares the HTTP server without binding.
func NewServer(config Config) (*Server, error) {
	addr := strings.TrimSpace(config.HTTPAddr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	readHeader := cmp.Or(max(config.ReadHeaderTimeout, 0), timeouts.ReadHeader)
	return &Server{
		addr:  addr,
		drain: cmp.Or(max(config.ShutdownTimeout, 0), timeouts.Shutdown),
		http: &http.Server{
			Handler:           NewHandler(config.Services),
			ReadHeaderTimeout: readHeader,
		},
		vitals: config.Services.Vitals,
	}, nil
}

// Run serves config until ctx ends, then releases the vitals store.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init site server: %w", err)
	}
	defer server.Close()
	return server.ListenAndServe(ctx)
}

// Listen binds the configured address. ListenAndServe calls it when the
// caller has not.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	return nil
}

// Addr is the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ListenAndServe serves until ctx ends and drains in-flight requests for
// the shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := s.Listen(); err != nil {
		return err
	}

	var shutdownErr error
	stopped := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(stopped)
		drainCtx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()
		shutdownErr = s.http.Shutdown(drainCtx)
	})

	log.Printf("site listening on %s", s.Addr())
	err := s.http.Serve(s.listener)
	if !stop() {
		<-stopped
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	if shutdownErr != nil {
		return fmt.Errorf("shutdown http server: %w", shutdownErr)
	}
	return nil
}

// Close releases the vitals store. Safe on a nil server.
func (s *Server) Close() {
	if s == nil || s.vitals == nil {
		return
	}
	if err := s.vitals.Close(); err != nil {
		log.Printf("close vitals store: %v", err)
	}
}
