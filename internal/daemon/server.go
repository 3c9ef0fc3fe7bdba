package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/config"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/ollama"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/internal/tools"
	"github.com/ShadovvSinger/Ollama-MCP-Guidance/templates"
)

const (
	ServerName = "Ollama-MCP-Guidance"
	Version    = "1.0.0"
)

// Options select how the server talks to its MCP client.
type Options struct {
	// Transport is "stdio" or "sse".
	Transport string
	// Host and Port are the SSE bind parameters; ignored for stdio.
	Host string
	Port int
	// MetricsAddr is the Prometheus listener address; empty disables it.
	MetricsAddr string
}

// Server wires the tool catalogue to an MCP transport.
type Server struct {
	cfg      config.Config
	opts     Options
	registry *tools.Registry
	logger   zerolog.Logger
}

// NewServer assembles the registry and backend plumbing from
// configuration. The embedded guide is checked here so a broken build
// fails at startup, not on first use.
func NewServer(cfg config.Config, opts Options, logger zerolog.Logger) (*Server, error) {
	guide, err := templates.Guide()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded guide: %w", err)
	}
	if !json.Valid([]byte(guide)) {
		return nil, fmt.Errorf("embedded guide is not valid JSON")
	}

	client := ollama.NewClient(cfg.Ollama.Host, cfg.Ollama.UserAgent, cfg.Ollama.TimeoutDuration())
	svc := ollama.NewService(client, logger)

	registry := tools.NewRegistry()
	tools.RegisterBackendTools(registry, svc)
	registry.Register(tools.NewGuideTool())
	registry.Register(tools.NewDocSectionTool(cfg.APIDoc))

	return &Server{
		cfg:      cfg,
		opts:     opts,
		registry: registry,
		logger:   logger,
	}, nil
}

// Registry exposes the assembled catalogue, mainly for in-process
// dispatch from the CLI.
func (s *Server) Registry() *tools.Registry {
	return s.registry
}

// Run starts the selected transport and blocks until shutdown
func (s *Server) Run() error {
	mcpServer := s.buildMCP()

	var metricsServer *http.Server
	if s.opts.MetricsAddr != "" {
		metricsServer = s.metricsServer()
		go func() {
			s.logger.Info().Str("addr", s.opts.MetricsAddr).Msg("metrics listener started")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}
	defer func() {
		if metricsServer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("metrics listener shutdown error")
		}
	}()

	switch s.opts.Transport {
	case "sse":
		return s.runSSE(mcpServer)
	case "", "stdio":
		return s.runStdio(mcpServer)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", s.opts.Transport)
	}
}

func (s *Server) runStdio(m *server.MCPServer) error {
	s.logger.Info().
		Str("transport", "stdio").
		Str("backend", s.cfg.Ollama.Host).
		Msg("starting MCP server")

	// ServeStdio returns when the client closes stdin or on SIGINT/SIGTERM.
	if err := server.ServeStdio(m); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func (s *Server) runSSE(m *server.MCPServer) error {
	baseURL := fmt.Sprintf("http://%s:%d", s.opts.Host, s.opts.Port)
	addr := fmt.Sprintf(":%d", s.opts.Port)
	sse := server.NewSSEServer(m, server.WithBaseURL(baseURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("transport", "sse").
			Str("addr", addr).
			Str("backend", s.cfg.Ollama.Host).
			Msg("starting MCP server")
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("sse server error: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sse.Shutdown(ctx); err != nil {
			return fmt.Errorf("sse shutdown error: %w", err)
		}
		s.logger.Info().Msg("server stopped")
		return nil
	}
}

func (s *Server) metricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	return &http.Server{
		Addr:         s.opts.MetricsAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
