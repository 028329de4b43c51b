package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/ledger"
	"example.com/expense-tracker/backend/internal/models"
	"example.com/expense-tracker/backend/internal/notifications"
)

type ExpenseHandler struct {
	Ledger   *ledger.Store
	Notifier *notifications.Hub
}

// NewExpenseHandler creates the ledger CRUD handler.
func NewExpenseHandler(store *ledger.Store, notifier *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{Ledger: store, Notifier: notifier}
}

// CreateExpenseRequest deliberately validates only the name: numeric and
// enum fields are normalized by the store, never rejected.
type CreateExpenseRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Category   string  `json:"category"`
	Occurrence int     `json:"occurrence"`
	Budget     float64 `json:"budget"`
	Month      string  `json:"month"`
	Priority   string  `json:"priority"`
}

type UpdateExpenseRequest struct {
	Name       *string  `json:"name" validate:"omitempty,max=200"`
	Category   *string  `json:"category"`
	Occurrence *int     `json:"occurrence"`
	Budget     *float64 `json:"budget"`
	Month      *string  `json:"month"`
	Priority   *string  `json:"priority"`
	Done       *bool    `json:"done"`
}

type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

// List returns the active ledger view, optionally narrowed by a search term
// and a category. Soft-deleted rows never appear.
func (h *ExpenseHandler) List(c echo.Context) error {
	filter := ledger.Filter{
		Search:   c.QueryParam("search"),
		Category: models.Category(c.QueryParam("category")),
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: h.Ledger.List(filter)})
}

// Trash returns the soft-deleted snapshots with their deletion timestamps.
func (h *ExpenseHandler) Trash(c echo.Context) error {
	return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: h.Ledger.Trash()})
}

// Create adds a new expense to the ledger.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "name is required")
	}

	expense, ok := h.Ledger.Add(ledger.Draft{
		Name:       req.Name,
		Category:   models.Category(req.Category),
		Occurrence: req.Occurrence,
		Budget:     req.Budget,
		Month:      models.Month(req.Month),
		Priority:   models.Priority(req.Priority),
	})
	if !ok {
		return badRequest(c, "name is required")
	}

	h.notifyLedgerUpdate()
	return c.JSON(http.StatusCreated, expense)
}

// Update merges the patch into the matching expense.
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	patch := ledger.Patch{
		Name:       req.Name,
		Occurrence: req.Occurrence,
		Budget:     req.Budget,
		Done:       req.Done,
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		patch.Category = &category
	}
	if req.Month != nil {
		month := models.Month(*req.Month)
		patch.Month = &month
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		patch.Priority = &priority
	}

	expense, ok := h.Ledger.Update(id, patch)
	if !ok {
		return notFound(c, "expense not found")
	}

	h.notifyLedgerUpdate()
	return c.JSON(http.StatusOK, expense)
}

// Delete soft-deletes the expense into the trash view. There is no hard
// delete; the record stays addressable for restore.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if _, ok := h.Ledger.SoftDelete(id); !ok {
		return notFound(c, "expense not found")
	}

	h.notifyLedgerUpdate()
	return c.NoContent(http.StatusNoContent)
}

// Restore brings a trashed expense back into the active view.
func (h *ExpenseHandler) Restore(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	expense, ok := h.Ledger.Restore(id)
	if !ok {
		return notFound(c, "expense not found in trash")
	}

	h.notifyLedgerUpdate()
	return c.JSON(http.StatusOK, expense)
}

// Toggle flips the completion flag of the expense.
func (h *ExpenseHandler) Toggle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	expense, ok := h.Ledger.ToggleDone(id)
	if !ok {
		return notFound(c, "expense not found")
	}

	h.notifyLedgerUpdate()
	return c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) notifyLedgerUpdate() {
	if h.Notifier == nil {
		return
	}

	summary := ledger.Summarize(h.Ledger.Snapshot())
	h.Notifier.Publish(notifications.Event{
		Type: "ledger_updated",
		Data: summary,
	})
}
