package parser

import (
	"strconv"
	"strings"

	"example.com/expense-tracker/backend/internal/models"
)

const (
	demoParsedMessage = "✅ Great! I've parsed your expense (Demo Mode - Backend not connected):"

	demoNoAmountMessage = "🔌 I'm running in demo mode since the backend server isn't available.\n\n" +
		"Try typing an expense like: \"coffee food 50 want today\" to see how it would work!"
)

var importanceLevels = []string{"essential", "need", "want", "extra"}

// ParseOffline is the deterministic heuristic used when the remote parser is
// unreachable. It always produces a bot message; lines without a numeric
// token yield the demo notice with no proposal attached.
func ParseOffline(text string) (string, *models.ParsedExpenseDetails) {
	tokens := strings.Fields(strings.ToLower(text))

	amount := ""
	for _, token := range tokens {
		if _, err := strconv.ParseFloat(token, 64); err == nil {
			amount = token
			break
		}
	}
	if amount == "" {
		return demoNoAmountMessage, nil
	}

	details := &models.ParsedExpenseDetails{
		ExpenseName:  "Unknown Item",
		Category:     "general",
		Amount:       amount,
		Importance:   "need",
		BankAccount:  "Not specified",
		AssignedDate: "Today",
		ExpenseType:  "expense",
	}

	if len(tokens) > 0 {
		details.ExpenseName = tokens[0]
	}
	if len(tokens) > 1 {
		details.Category = tokens[1]
	}

	for _, token := range tokens {
		if containsToken(importanceLevels, token) {
			details.Importance = token
			break
		}
	}

	switch {
	case containsToken(tokens, "hdfc"):
		details.BankAccount = "HDFC"
	case containsToken(tokens, "icici"):
		details.BankAccount = "ICICI"
	}

	switch {
	case containsToken(tokens, "today"):
		details.AssignedDate = "Today"
	case containsToken(tokens, "yesterday"):
		details.AssignedDate = "Yesterday"
	}

	return demoParsedMessage, details
}

func containsToken(tokens []string, value string) bool {
	for _, token := range tokens {
		if token == value {
			return true
		}
	}
	return false
}
