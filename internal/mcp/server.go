// Package mcp exposes the expense operations as Model Context Protocol
// tools. Transport (SSE or stdio) is chosen by the caller; nothing below
// this package sees the protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/log"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/services"
)

const (
	ServerName    = "expense-tracker"
	ServerVersion = "1.0.0"
)

// NewServer builds the MCP server with all expense tools registered. Every
// handler is wrapped with invocation logging.
func NewServer(svc *services.ExpenseService, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	h := &toolHandlers{svc: svc}

	register := func(tool mcpTool, handler server.ToolHandlerFunc) {
		s.AddTool(tool.def, withInvocationLog(logger, tool.name, handler))
	}

	register(addExpenseTool(), h.handleAddExpense)
	register(listExpensesTool(), h.handleListExpenses)
	register(updateExpenseTool(), h.handleUpdateExpense)
	register(deleteExpenseTool(), h.handleDeleteExpense)
	register(summarizeExpensesTool(), h.handleSummarizeExpenses)
	register(listCategoriesTool(), h.handleListCategories)

	return s
}
