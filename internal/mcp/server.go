// ABOUTME: MCP server setup for the XP and achievement engine.
// ABOUTME: Wraps the MCP server with an engine plus a default user.
package mcp

import (
	"context"

	"github.com/harperreed/arete/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with engine access.
type Server struct {
	mcpServer   *mcp.Server
	engine      *engine.Engine
	defaultUser string
}

// NewServer creates a new MCP server over the given engine. Tools that omit
// a user parameter operate on defaultUser.
func NewServer(eng *engine.Engine, defaultUser string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "arete",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:   mcpServer,
		engine:      eng,
		defaultUser: defaultUser,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// user resolves an optional tool-supplied user ID.
func (s *Server) user(id string) string {
	if id == "" {
		return s.defaultUser
	}
	return id
}
