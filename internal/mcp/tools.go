package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/catalog"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/core"
	"github.com/bhakti259/expense-tracker-remote-mcp-server/internal/services"
)

// mcpTool pairs a tool definition with its registered name.
type mcpTool struct {
	name string
	def  mcp.Tool
}

type toolHandlers struct {
	svc *services.ExpenseService
}

func addExpenseTool() mcpTool {
	name := "add_expense"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("Record a new expense. The date accepts explicit dates (2024-11-27, Nov 27) or 'today'/'yesterday'."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date of the expense")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Amount spent; positive means spend")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Expense category, ideally one from list_categories")),
		mcp.WithString("subcategory", mcp.Description("Optional subcategory")),
		mcp.WithString("note", mcp.Description("Optional free-form note")),
	)}
}

func listExpensesTool() mcpTool {
	name := "list_expenses"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("List expenses, most recent first. All filters are optional."),
		mcp.WithString("category", mcp.Description("Filter by category (case-insensitive exact match)")),
		mcp.WithString("date_range", mcp.Description("Date expression: a date, 'today', 'yesterday', 'last N days', 'this week', 'last week', 'this month', 'last month'")),
		mcp.WithNumber("limit", mcp.Description("Maximum records to return (default 50)")),
	)}
}

func updateExpenseTool() mcpTool {
	name := "update_expense"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("Update fields of an existing expense. Omitted fields are left unchanged."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Expense id")),
		mcp.WithString("date", mcp.Description("New date")),
		mcp.WithNumber("amount", mcp.Description("New amount")),
		mcp.WithString("category", mcp.Description("New category")),
		mcp.WithString("subcategory", mcp.Description("New subcategory")),
		mcp.WithString("note", mcp.Description("New note")),
	)}
}

func deleteExpenseTool() mcpTool {
	name := "delete_expense"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("Delete an expense by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Expense id")),
	)}
}

func summarizeExpensesTool() mcpTool {
	name := "summarize_expenses"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("Summarize expenses per category: totals, counts and percentage of the grand total."),
		mcp.WithString("date_range", mcp.Description("Optional date expression limiting the summary window")),
		mcp.WithString("category", mcp.Description("Optional category filter")),
	)}
}

func listCategoriesTool() mcpTool {
	name := "list_categories"
	return mcpTool{name, mcp.NewTool(name,
		mcp.WithDescription("List the fixed set of expense categories and their subcategories."),
	)}
}

// Wire payloads.
type (
	expensePayload struct {
		ID          int64   `json:"id"`
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory,omitempty"`
		Note        string  `json:"note,omitempty"`
	}

	listPayload struct {
		Count    int              `json:"count"`
		Expenses []expensePayload `json:"expenses"`
	}

	breakdownPayload struct {
		Category   string  `json:"category"`
		Total      float64 `json:"total"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}

	summaryPayload struct {
		GrandTotal float64            `json:"grand_total"`
		Breakdown  []breakdownPayload `json:"breakdown"`
	}

	deletePayload struct {
		ID      int64 `json:"id"`
		Deleted bool  `json:"deleted"`
	}
)

func toExpensePayload(e core.Expense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		Date:        e.Date.ISO(),
		Amount:      e.Amount.Float64(),
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Note:        e.Note,
	}
}

func (h *toolHandlers) handleAddExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := requiredAmount(req, "amount")
	if err != nil {
		return toolError(err)
	}

	e, err := h.svc.AddExpense(ctx, date, amount, category,
		req.GetString("subcategory", ""), req.GetString("note", ""))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(toExpensePayload(e))
}

func (h *toolHandlers) handleListExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expenses, err := h.svc.ListExpenses(ctx, services.Filter{
		Category:       req.GetString("category", ""),
		DateExpression: req.GetString("date_range", ""),
		Limit:          req.GetInt("limit", 0),
	})
	if err != nil {
		return toolError(err)
	}

	payload := listPayload{Count: len(expenses), Expenses: make([]expensePayload, 0, len(expenses))}
	for _, e := range expenses {
		payload.Expenses = append(payload.Expenses, toExpensePayload(e))
	}
	return jsonResult(payload)
}

func (h *toolHandlers) handleUpdateExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	update := services.ExpenseUpdate{
		DateExpression: optionalString(req, "date"),
		Category:       optionalString(req, "category"),
		Subcategory:    optionalString(req, "subcategory"),
		Note:           optionalString(req, "note"),
	}
	update.Amount, err = optionalAmount(req, "amount")
	if err != nil {
		return toolError(err)
	}

	e, err := h.svc.UpdateExpense(ctx, int64(id), update)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(toExpensePayload(e))
}

func (h *toolHandlers) handleDeleteExpense(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.svc.DeleteExpense(ctx, int64(id)); err != nil {
		return toolError(err)
	}
	return jsonResult(deletePayload{ID: int64(id), Deleted: true})
}

func (h *toolHandlers) handleSummarizeExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.svc.SummarizeExpenses(ctx,
		req.GetString("date_range", ""), req.GetString("category", ""))
	if err != nil {
		return toolError(err)
	}

	payload := summaryPayload{
		GrandTotal: summary.GrandTotal.Float64(),
		Breakdown:  make([]breakdownPayload, 0, len(summary.Breakdown)),
	}
	for _, row := range summary.Breakdown {
		payload.Breakdown = append(payload.Breakdown, breakdownPayload{
			Category:   row.Category,
			Total:      row.Total.Float64(),
			Count:      row.Count,
			Percentage: row.Percentage,
		})
	}
	return jsonResult(payload)
}

func (h *toolHandlers) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(struct {
		Categories []catalog.Category `json:"categories"`
	}{Categories: catalog.Categories()})
}

// optionalString reports field presence, which GetString cannot: an absent
// key must leave the stored value untouched on update.
func optionalString(req mcp.CallToolRequest, key string) *string {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok {
		return &s
	}
	s := fmt.Sprintf("%v", raw)
	return &s
}

func requiredAmount(req mcp.CallToolRequest, key string) (core.Money, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return core.Money{}, fmt.Errorf("%w: missing %q", core.ErrInvalidAmount, key)
	}
	return moneyFromArg(raw)
}

func optionalAmount(req mcp.CallToolRequest, key string) (*core.Money, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	m, err := moneyFromArg(raw)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// moneyFromArg accepts the amount as a JSON number or a decimal string;
// agents send both.
func moneyFromArg(raw any) (core.Money, error) {
	switch v := raw.(type) {
	case float64:
		return core.CentsFromFloat(v)
	case int:
		return core.Money{Cents: int64(v) * 100}, nil
	case int64:
		return core.Money{Cents: v * 100}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return core.Money{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, v.String())
		}
		return core.CentsFromFloat(f)
	case string:
		return core.ParseDecimalToCents(v)
	default:
		return core.Money{}, fmt.Errorf("%w: unsupported type %T", core.ErrInvalidAmount, raw)
	}
}

// toolError maps domain failures to in-band tool errors; anything else is a
// protocol-level failure.
func toolError(err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, core.ErrInvalidDateExpression),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrEmptyCategory):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		return nil, err
	}
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(body)), nil
}
