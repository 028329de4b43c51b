package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/ledger"
)

type StatsHandler struct {
	Ledger        *ledger.Store
	MonthlyBudget float64
}

// NewStatsHandler creates the aggregate views handler. monthlyBudget is the
// reference baseline reported next to each month's scheduled spend.
func NewStatsHandler(store *ledger.Store, monthlyBudget float64) *StatsHandler {
	return &StatsHandler{Ledger: store, MonthlyBudget: monthlyBudget}
}

type CategoryBreakdownResponse struct {
	Categories []ledger.CategoryBreakdown `json:"categories"`
}

type MonthBreakdownResponse struct {
	Months []ledger.MonthBreakdown `json:"months"`
}

// Summary returns the headline totals, recomputed from the current ledger.
func (h *StatsHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, ledger.Summarize(h.Ledger.Snapshot()))
}

// ByCategory returns one entry per fixed category, zero entries included.
func (h *StatsHandler) ByCategory(c echo.Context) error {
	return c.JSON(http.StatusOK, CategoryBreakdownResponse{
		Categories: ledger.GroupByCategory(h.Ledger.Snapshot()),
	})
}

// ByMonth returns one entry per calendar month against the budget baseline.
func (h *StatsHandler) ByMonth(c echo.Context) error {
	return c.JSON(http.StatusOK, MonthBreakdownResponse{
		Months: ledger.GroupByMonth(h.Ledger.Snapshot(), h.MonthlyBudget),
	})
}
