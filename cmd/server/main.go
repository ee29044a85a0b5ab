// Command server is the main entry point for the Edu Bridge MCP server.
// It registers the Canvas and Ed Discussion tools and serves them over
// stdio (the default) or streamable HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/campuskit/mcp-server-edu-bridge/core"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/config"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools/canvas"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools/ed"
)

func main() {
	root := &cobra.Command{
		Use:   "mcp-server-edu-bridge",
		Short: "MCP server bridging Canvas LMS and Ed Discussion",
		RunE:  run,
	}
	root.Flags().String("transport", "stdio", "Transport to serve on: 'stdio' or 'http'")
	root.Flags().String("addr", ":8000", "Listen address for the http transport")

	if err := root.Execute(); err != nil {
		log.Fatal("command failed", "error", err)
	}
}

// ToolRegistry manages tool registration with the MCP server.
type ToolRegistry struct {
	server *server.MCPServer
	tools  map[string]core.Tool
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry(mcpServer *server.MCPServer) *ToolRegistry {
	return &ToolRegistry{
		server: mcpServer,
		tools:  make(map[string]core.Tool),
	}
}

// Register registers a tool with the server.
func (r *ToolRegistry) Register(tool core.Tool) {
	r.tools[tool.Handle().Name] = tool
	r.server.AddTool(tool.Handle(), tool.Handler)
}

func run(cmd *cobra.Command, args []string) error {
	// Stdio transport carries the protocol, so logs go to stderr.
	log.SetOutput(os.Stderr)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Warn("configuration incomplete", "error", err)
	}

	mcpServer := server.NewMCPServer(
		"Edu Bridge MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)
	registry := NewToolRegistry(mcpServer)

	canvasClient := canvas.NewClient(cfg.Canvas.BaseURL, cfg.Canvas.APIToken, cfg.HTTP.Timeout)
	registry.Register(canvas.NewListCoursesTool(canvasClient))
	registry.Register(canvas.NewGetCourseTool(canvasClient))
	registry.Register(canvas.NewListAnnouncementsTool(canvasClient))
	registry.Register(canvas.NewListAssignmentsTool(canvasClient))

	edClient := ed.NewClient(cfg.Ed.BaseURL, cfg.Ed.APIToken, cfg.HTTP.Timeout)
	registry.Register(ed.NewUserInfoTool(edClient))
	registry.Register(ed.NewListCoursesTool(edClient))
	registry.Register(ed.NewListThreadsTool(edClient))
	registry.Register(ed.NewGetThreadTool(edClient))
	registry.Register(ed.NewSearchThreadsTool(edClient))

	transport, _ := cmd.Flags().GetString("transport")
	switch transport {
	case "stdio":
		log.Info("serving on stdio")
		return server.ServeStdio(mcpServer)
	case "http":
		addr, _ := cmd.Flags().GetString("addr")
		return serveHTTP(mcpServer, addr)
	default:
		return cmd.Help()
	}
}

func serveHTTP(mcpServer *server.MCPServer, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.NewStreamableHTTPServer(mcpServer),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving on http", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
