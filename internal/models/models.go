package models

import (
	"time"

	"github.com/google/uuid"
)

type Category string

type Priority string

type Month string

type MessageRole string

const (
	CategoryEssential Category = "Essential"
	CategoryNeeds     Category = "Needs"
	CategoryWants     Category = "Wants"
	CategoryInvest    Category = "Invest"

	PriorityMustDo    Priority = "Must Do"
	PriorityEssential Priority = "Essential"
	PriorityNormal    Priority = ""

	MessageRoleUser MessageRole = "user"
	MessageRoleBot  MessageRole = "bot"
)

// Categories is the fixed enumeration order used by every aggregate view.
var Categories = []Category{
	CategoryEssential,
	CategoryNeeds,
	CategoryWants,
	CategoryInvest,
}

// Months is the fixed calendar order used by the monthly aggregate view.
var Months = []Month{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// IsValidCategory reports whether value is one of the fixed categories.
func IsValidCategory(value Category) bool {
	for _, category := range Categories {
		if category == value {
			return true
		}
	}
	return false
}

// IsValidMonth reports whether value is one of the twelve months or empty.
func IsValidMonth(value Month) bool {
	if value == "" {
		return true
	}
	for _, month := range Months {
		if month == value {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether value is one of the fixed priorities.
func IsValidPriority(value Priority) bool {
	switch value {
	case PriorityMustDo, PriorityEssential, PriorityNormal:
		return true
	default:
		return false
	}
}

type Expense struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Occurrence int        `json:"occurrence"`
	Budget     float64    `json:"budget"`
	TotalSpend float64    `json:"total_spend"`
	Month      Month      `json:"month,omitempty"`
	Priority   Priority   `json:"priority"`
	Done       bool       `json:"done"`
	Deleted    bool       `json:"deleted"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Message struct {
	ID             uuid.UUID             `json:"id"`
	Role           MessageRole           `json:"role"`
	Text           string                `json:"text"`
	Timestamp      time.Time             `json:"timestamp"`
	ExpenseDetails *ParsedExpenseDetails `json:"expense_details,omitempty"`
}

// ParsedExpenseDetails is an unconfirmed expense proposal produced by the
// intake pipeline. It is not a ledger row; all fields are optional and the
// amount stays textual until the proposal is confirmed as a draft.
type ParsedExpenseDetails struct {
	ExpenseName  string `json:"expense_name,omitempty"`
	Category     string `json:"category,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Importance   string `json:"importance,omitempty"`
	BankAccount  string `json:"bank_account,omitempty"`
	AssignedDate string `json:"assigned_date,omitempty"`
	ExpenseType  string `json:"expense_type,omitempty"`
}
