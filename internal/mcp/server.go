// ABOUTME: MCP server setup for the gym tracker.
// ABOUTME: Wraps the MCP server with the SQLite connection and registers tools and resources.
package mcp

import (
	"context"
	"database/sql"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// Server wraps the MCP server with database access.
type Server struct {
	mcpServer *mcp.Server
	db        *sql.DB
}

// NewServer creates a new MCP server over the given database.
func NewServer(db *sql.DB) (*Server, error) {
	if db == nil {
		return nil, errors.New("database connection is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gym",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	logrus.Info("starting gym MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
