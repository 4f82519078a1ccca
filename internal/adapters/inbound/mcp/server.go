package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSpecGuardMCPServer creates a new MCP server with all SpecGuard tools
// registered. The projectPath is the root directory of the project to
// validate.
func NewSpecGuardMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"specguard",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
