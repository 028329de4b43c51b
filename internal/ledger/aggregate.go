package ledger

import "example.com/expense-tracker/backend/internal/models"

const monthlyRecurrence = 12

type Summary struct {
	TotalBudget     float64 `json:"total_budget"`
	TotalSpent      float64 `json:"total_spent"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	OneTimeExpenses float64 `json:"one_time_expenses"`
}

type CategoryBreakdown struct {
	Name  models.Category `json:"name"`
	Value float64         `json:"value"`
	Count int             `json:"count"`
}

type MonthBreakdown struct {
	Month    models.Month `json:"month"`
	Expenses float64      `json:"expenses"`
	Budget   float64      `json:"budget"`
}

// Summarize computes the headline totals over a ledger snapshot. Soft-deleted
// rows are skipped even if present in the input.
func Summarize(expenses []models.Expense) Summary {
	var summary Summary
	for _, expense := range expenses {
		if expense.Deleted {
			continue
		}

		summary.TotalBudget += expense.Budget * float64(expense.Occurrence)
		if expense.Done {
			summary.TotalSpent += expense.TotalSpend
		}
		switch expense.Occurrence {
		case monthlyRecurrence:
			summary.MonthlyExpenses += expense.Budget
		case 1:
			summary.OneTimeExpenses += expense.Budget
		}
	}
	return summary
}

// GroupByCategory returns one entry per fixed category, in enumeration order.
// Categories without expenses still appear with zero value and count.
func GroupByCategory(expenses []models.Expense) []CategoryBreakdown {
	out := make([]CategoryBreakdown, 0, len(models.Categories))
	for _, category := range models.Categories {
		breakdown := CategoryBreakdown{Name: category}
		for _, expense := range expenses {
			if expense.Deleted || expense.Category != category {
				continue
			}
			breakdown.Value += expense.Budget * float64(expense.Occurrence)
			breakdown.Count++
		}
		out = append(out, breakdown)
	}
	return out
}

// GroupByMonth returns one entry per calendar month with the scheduled spend
// for that month and the caller's reference budget baseline.
func GroupByMonth(expenses []models.Expense, monthlyBudget float64) []MonthBreakdown {
	out := make([]MonthBreakdown, 0, len(models.Months))
	for _, month := range models.Months {
		breakdown := MonthBreakdown{Month: month, Budget: monthlyBudget}
		for _, expense := range expenses {
			if expense.Deleted || expense.Month != month {
				continue
			}
			breakdown.Expenses += expense.Budget
		}
		out = append(out, breakdown)
	}
	return out
}
