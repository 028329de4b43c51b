package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/backend/internal/models"
)

// Draft carries the user-supplied fields of a new expense before
// normalization. Invalid numeric input is coerced, never rejected.
type Draft struct {
	Name       string
	Category   models.Category
	Occurrence int
	Budget     float64
	Month      models.Month
	Priority   models.Priority
}

// Patch holds optional replacement values for an update. Nil fields keep the
// current value; the total spend is recomputed from the post-merge record.
type Patch struct {
	Name       *string
	Category   *models.Category
	Occurrence *int
	Budget     *float64
	Month      *models.Month
	Priority   *models.Priority
	Done       *bool
}

// Filter narrows the active ledger view. Search is a case-insensitive
// substring match on the name; an empty or "All" category matches everything.
type Filter struct {
	Search   string
	Category models.Category
}

// Store owns the expense collection and its trash view. All state lives in
// process memory and every mutation is serialized behind one lock, so the
// store is safe to share across handlers.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	expenses []models.Expense
	trash    []models.Expense
}

// NewStore creates an empty ledger store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add normalizes the draft, assigns an id and appends the expense to the
// ledger. Drafts with a blank name are ignored.
func (s *Store) Add(draft Draft) (models.Expense, bool) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return models.Expense{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expense := models.Expense{
		ID:         uuid.New(),
		Name:       name,
		Category:   normalizeCategory(draft.Category),
		Occurrence: normalizeOccurrence(draft.Occurrence),
		Budget:     normalizeBudget(draft.Budget),
		Month:      normalizeMonth(draft.Month),
		Priority:   normalizePriority(draft.Priority),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	expense.TotalSpend = expense.Budget * float64(expense.Occurrence)

	s.expenses = append(s.expenses, expense)
	return expense, true
}

// Update merges the patch into the matching record and recomputes the total
// spend from the effective budget and occurrence.
func (s *Store) Update(id uuid.UUID, patch Patch) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexOf(id)
	if !ok {
		return models.Expense{}, false
	}

	expense := &s.expenses[index]
	if patch.Name != nil {
		if trimmed := strings.TrimSpace(*patch.Name); trimmed != "" {
			expense.Name = trimmed
		}
	}
	if patch.Category != nil {
		expense.Category = normalizeCategory(*patch.Category)
	}
	if patch.Occurrence != nil {
		expense.Occurrence = normalizeOccurrence(*patch.Occurrence)
	}
	if patch.Budget != nil {
		expense.Budget = normalizeBudget(*patch.Budget)
	}
	if patch.Month != nil {
		expense.Month = normalizeMonth(*patch.Month)
	}
	if patch.Priority != nil {
		expense.Priority = normalizePriority(*patch.Priority)
	}
	if patch.Done != nil {
		expense.Done = *patch.Done
	}

	expense.TotalSpend = expense.Budget * float64(expense.Occurrence)
	expense.UpdatedAt = s.now()
	return *expense, true
}

// SoftDelete flags the record as deleted and freezes a snapshot of it in the
// trash view. Already-deleted or unknown ids are ignored.
func (s *Store) SoftDelete(id uuid.UUID) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexOf(id)
	if !ok {
		return models.Expense{}, false
	}

	expense := &s.expenses[index]
	if expense.Deleted {
		return models.Expense{}, false
	}

	deletedAt := s.now()
	expense.Deleted = true
	expense.DeletedAt = &deletedAt

	snapshot := *expense
	snapshot.DeletedAt = &deletedAt
	s.trash = append(s.trash, snapshot)
	return snapshot, true
}

// Restore clears the deleted flag on the live record and drops its snapshot
// from the trash view. Ids without a trash entry are ignored.
func (s *Store) Restore(id uuid.UUID) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trashIndex := -1
	for i := range s.trash {
		if s.trash[i].ID == id {
			trashIndex = i
			break
		}
	}
	if trashIndex == -1 {
		return models.Expense{}, false
	}
	s.trash = append(s.trash[:trashIndex], s.trash[trashIndex+1:]...)

	index, ok := s.indexOf(id)
	if !ok {
		return models.Expense{}, false
	}

	expense := &s.expenses[index]
	expense.Deleted = false
	expense.DeletedAt = nil
	return *expense, true
}

// ToggleDone flips the completion flag of the matching record.
func (s *Store) ToggleDone(id uuid.UUID) (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexOf(id)
	if !ok {
		return models.Expense{}, false
	}

	expense := &s.expenses[index]
	expense.Done = !expense.Done
	expense.UpdatedAt = s.now()
	return *expense, true
}

// Get returns the live record for id, deleted or not.
func (s *Store) Get(id uuid.UUID) (models.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.indexOf(id)
	if !ok {
		return models.Expense{}, false
	}
	return s.expenses[index], true
}

// List returns the non-deleted expenses matching the filter, in insertion
// order. Soft-deleted rows never appear regardless of the filter.
func (s *Store) List(filter Filter) []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matchAll := filter.Category == "" || filter.Category == "All"

	out := make([]models.Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		if expense.Deleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(expense.Name), search) {
			continue
		}
		if !matchAll && expense.Category != filter.Category {
			continue
		}
		out = append(out, expense)
	}
	return out
}

// Trash returns the frozen snapshots of soft-deleted expenses with their
// deletion timestamps, oldest first.
func (s *Store) Trash() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Expense, len(s.trash))
	copy(out, s.trash)
	return out
}

// Snapshot returns a copy of all non-deleted expenses for aggregation.
func (s *Store) Snapshot() []models.Expense {
	return s.List(Filter{})
}

func (s *Store) indexOf(id uuid.UUID) (int, bool) {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func normalizeBudget(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

func normalizeOccurrence(value int) int {
	if value <= 0 {
		return 1
	}
	return value
}

func normalizeCategory(value models.Category) models.Category {
	if models.IsValidCategory(value) {
		return value
	}
	return models.CategoryNeeds
}

func normalizeMonth(value models.Month) models.Month {
	if models.IsValidMonth(value) {
		return value
	}
	return ""
}

func normalizePriority(value models.Priority) models.Priority {
	if models.IsValidPriority(value) {
		return value
	}
	return models.PriorityNormal
}
