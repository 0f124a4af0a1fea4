package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldTool        = "tool"
	FieldOperation   = "operation"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldIsError     = "is_error"
	FieldExpenseID   = "expense_id"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldDateExpr    = "date_expression"
	FieldBackend     = "backend"
	FieldCount       = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentMCP     = "mcp"
	ComponentService = "service"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentCatalog = "catalog"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpSummarize = "summarize"
	OpResolve   = "resolve"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
