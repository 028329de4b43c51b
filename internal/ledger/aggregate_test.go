package ledger

import (
	"testing"

	"example.com/expense-tracker/backend/internal/models"
)

func seedSnapshot(t *testing.T) []models.Expense {
	t.Helper()

	store := NewStore()
	store.Add(Draft{Name: "Donation", Category: models.CategoryEssential, Occurrence: 1, Budget: 25000, Month: "Dec"})
	store.Add(Draft{Name: "EMI", Category: models.CategoryNeeds, Occurrence: 12, Budget: 7000})
	gift, _ := store.Add(Draft{Name: "Gift", Category: models.CategoryEssential, Occurrence: 1, Budget: 2000, Month: "Jun"})
	store.ToggleDone(gift.ID)
	trashed, _ := store.Add(Draft{Name: "Cancelled", Category: models.CategoryWants, Occurrence: 1, Budget: 9999, Month: "Jun"})
	store.SoftDelete(trashed.ID)

	return store.Snapshot()
}

// TestSummarize checks the headline totals over a mixed snapshot.
func TestSummarize(t *testing.T) {
	summary := Summarize(seedSnapshot(t))

	if summary.TotalBudget != 25000+7000*12+2000 {
		t.Fatalf("unexpected total budget: %v", summary.TotalBudget)
	}
	if summary.TotalSpent != 2000 {
		t.Fatalf("expected only done rows in total spent, got %v", summary.TotalSpent)
	}
	if summary.MonthlyExpenses != 7000 {
		t.Fatalf("unexpected monthly expenses: %v", summary.MonthlyExpenses)
	}
	if summary.OneTimeExpenses != 27000 {
		t.Fatalf("unexpected one-time expenses: %v", summary.OneTimeExpenses)
	}
}

// TestGroupByCategoryIncludesZeroEntries checks fixed-order category output.
func TestGroupByCategoryIncludesZeroEntries(t *testing.T) {
	breakdowns := GroupByCategory(seedSnapshot(t))

	if len(breakdowns) != len(models.Categories) {
		t.Fatalf("expected %d entries, got %d", len(models.Categories), len(breakdowns))
	}
	for i, breakdown := range breakdowns {
		if breakdown.Name != models.Categories[i] {
			t.Fatalf("expected enumeration order, got %s at %d", breakdown.Name, i)
		}
	}

	if breakdowns[0].Value != 27000 || breakdowns[0].Count != 2 {
		t.Fatalf("unexpected essential breakdown: %+v", breakdowns[0])
	}
	if breakdowns[1].Value != 84000 || breakdowns[1].Count != 1 {
		t.Fatalf("unexpected needs breakdown: %+v", breakdowns[1])
	}
	if breakdowns[2].Value != 0 || breakdowns[2].Count != 0 {
		t.Fatalf("expected zero wants entry after trashing, got %+v", breakdowns[2])
	}
	if breakdowns[3].Value != 0 || breakdowns[3].Count != 0 {
		t.Fatalf("expected zero invest entry, got %+v", breakdowns[3])
	}
}

// TestGroupByCategoryEmptyLedger checks zero entries on an empty snapshot.
func TestGroupByCategoryEmptyLedger(t *testing.T) {
	breakdowns := GroupByCategory(nil)

	if len(breakdowns) != 4 {
		t.Fatalf("expected four entries, got %d", len(breakdowns))
	}
	for _, breakdown := range breakdowns {
		if breakdown.Value != 0 || breakdown.Count != 0 {
			t.Fatalf("expected zero entry, got %+v", breakdown)
		}
	}
}

// TestGroupByMonth checks calendar order and the budget baseline.
func TestGroupByMonth(t *testing.T) {
	breakdowns := GroupByMonth(seedSnapshot(t), 33333.33)

	if len(breakdowns) != len(models.Months) {
		t.Fatalf("expected twelve entries, got %d", len(breakdowns))
	}

	byMonth := make(map[models.Month]MonthBreakdown, len(breakdowns))
	for i, breakdown := range breakdowns {
		if breakdown.Month != models.Months[i] {
			t.Fatalf("expected calendar order, got %s at %d", breakdown.Month, i)
		}
		if breakdown.Budget != 33333.33 {
			t.Fatalf("expected baseline on every month, got %v", breakdown.Budget)
		}
		byMonth[breakdown.Month] = breakdown
	}

	if byMonth["Dec"].Expenses != 25000 {
		t.Fatalf("unexpected December spend: %v", byMonth["Dec"].Expenses)
	}
	if byMonth["Jun"].Expenses != 2000 {
		t.Fatalf("expected trashed row excluded from June, got %v", byMonth["Jun"].Expenses)
	}
	if byMonth["Jan"].Expenses != 0 {
		t.Fatalf("expected empty January, got %v", byMonth["Jan"].Expenses)
	}
}
