// Package mcp implements the Model Context Protocol server that exposes
// DaVinci Resolve to LLM clients. Resources answer read-only questions
// about the open project; tools change host state.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/resolvemcp/extension"
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/format"
	"github.com/jpl-au/resolvemcp/internal/log"
	"github.com/jpl-au/resolvemcp/internal/resolve"
	"github.com/jpl-au/resolvemcp/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Options configures Serve.
type Options struct {
	Config  *config.Config
	Verbose bool // log bridge output and connection details at debug level
}

// Serve starts the MCP server over stdio.
//
// The server starts even when DaVinci Resolve is not running. Every
// resource and tool answers with the not-connected text until the
// application appears, and the client re-dials on its own.
func Serve(opts Options) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	if err := log.Open(); err != nil {
		slog.Warn("audit log unavailable", "path", log.DBPath(), "error", err)
	}
	defer log.Close()

	client := resolve.New(ClientOptions(cfg, logger))
	defer client.Close()

	extCtx := extension.NewContext(client, cfg)
	exts := extension.All()
	for _, ext := range exts {
		if ie, ok := ext.(extension.Initializable); ok {
			if err := ie.Init(extCtx); err != nil {
				slog.Error("extension init failed", "extension", ext.Name(), "error", err)
				return err
			}
		}
	}

	s := NewServer(client, cfg, extCtx, exts)

	if client.Connected(context.Background()) {
		info := client.Info()
		slog.Info("connected to DaVinci Resolve", "product", info.Product, "version", info.Version)
	} else {
		slog.Warn("DaVinci Resolve not reachable, will retry on demand", "error", client.Info().Error)
	}

	slog.Info("MCP server ready", "name", version.Name, "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// ClientOptions maps configuration onto bridge client options.
func ClientOptions(cfg *config.Config, logger *slog.Logger) resolve.Options {
	return resolve.Options{
		Python:        cfg.PythonPath(),
		ScriptAPI:     cfg.Resolve.ScriptAPI,
		ScriptLib:     cfg.Resolve.ScriptLib,
		Timeout:       cfg.Timeout(),
		RetryInterval: cfg.RetryInterval(),
		Logger:        logger,
	}
}

// NewServer builds the MCP server with every resource, built-in tool and
// extension tool registered against host.
func NewServer(host resolve.Host, cfg *config.Config, extCtx extension.Context, exts []extension.Extension) *server.MCPServer {
	s := server.NewMCPServer(
		version.Name,
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	h := &handlers{host: host, clipLimit: cfg.ClipLimit()}
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, extCtx, exts)
	return s
}

// registerExtensionTools binds each extension tool handler to extCtx.
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context, exts []extension.Extension) {
	for _, ext := range exts {
		for _, t := range ext.MCPTools() {
			handler := t.Handler
			s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, extCtx, req)
			})
		}
	}
}

// handlers provides MCP request handlers with access to the host.
type handlers struct {
	host      resolve.Host
	clipLimit int
}

// requireConnected returns an error result if DaVinci Resolve is not
// reachable. Tools call this first so that argument errors are never
// reported for a host that is not there.
func (h *handlers) requireConnected(ctx context.Context) *mcp.CallToolResult {
	if !h.host.Connected(ctx) {
		return mcp.NewToolResultError(format.MsgNotConnected)
	}
	return nil
}
