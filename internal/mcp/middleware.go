package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/log"
)

// withInvocationLog wraps a tool handler with structured start/finish
// logging. Each invocation gets a request id so concurrent calls can be
// told apart in the logs.
func withInvocationLog(logger *log.Logger, tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	if logger == nil {
		return next
	}
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		start := time.Now()

		logger.DebugContext(ctx, "Tool invocation started",
			log.FieldTool, tool,
			log.FieldRequestID, requestID)

		result, err := next(ctx, req)
		duration := time.Since(start).Milliseconds()

		switch {
		case err != nil:
			logger.ErrorContext(ctx, "Tool invocation failed",
				log.FieldTool, tool,
				log.FieldRequestID, requestID,
				log.FieldDuration, duration,
				log.FieldError, err.Error())
		case result != nil && result.IsError:
			logger.WarnContext(ctx, "Tool invocation returned error result",
				log.FieldTool, tool,
				log.FieldRequestID, requestID,
				log.FieldDuration, duration,
				log.FieldIsError, true)
		default:
			logger.InfoContext(ctx, "Tool invocation completed",
				log.FieldTool, tool,
				log.FieldRequestID, requestID,
				log.FieldDuration, duration)
		}

		return result, err
	}
}
