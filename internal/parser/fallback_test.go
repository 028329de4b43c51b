package parser

import "testing"

// TestParseOfflineFullLine checks the documented five-token example line.
func TestParseOfflineFullLine(t *testing.T) {
	message, details := ParseOffline("coffee food 50 want today")

	if message != demoParsedMessage {
		t.Fatalf("unexpected message: %q", message)
	}
	if details == nil {
		t.Fatal("expected parsed details")
	}
	if details.ExpenseName != "coffee" || details.Category != "food" {
		t.Fatalf("unexpected name/category: %+v", details)
	}
	if details.Amount != "50" {
		t.Fatalf("unexpected amount: %q", details.Amount)
	}
	if details.Importance != "want" {
		t.Fatalf("unexpected importance: %q", details.Importance)
	}
	if details.BankAccount != "Not specified" {
		t.Fatalf("unexpected bank account: %q", details.BankAccount)
	}
	if details.AssignedDate != "Today" {
		t.Fatalf("unexpected date: %q", details.AssignedDate)
	}
	if details.ExpenseType != "expense" {
		t.Fatalf("unexpected expense type: %q", details.ExpenseType)
	}
}

// TestParseOfflineDefaults checks defaults when tokens are missing.
func TestParseOfflineDefaults(t *testing.T) {
	message, details := ParseOffline("haircut general 300 need")

	if message != demoParsedMessage {
		t.Fatalf("unexpected message: %q", message)
	}
	if details.ExpenseName != "haircut" || details.Category != "general" {
		t.Fatalf("unexpected name/category: %+v", details)
	}
	if details.Amount != "300" || details.Importance != "need" {
		t.Fatalf("unexpected amount/importance: %+v", details)
	}
	if details.AssignedDate != "Today" {
		t.Fatalf("expected default date Today, got %q", details.AssignedDate)
	}
}

// TestParseOfflineBankAndDateTokens checks token-driven bank and date fields.
func TestParseOfflineBankAndDateTokens(t *testing.T) {
	_, details := ParseOffline("uber transport 200 essential yesterday hdfc")

	if details.BankAccount != "HDFC" {
		t.Fatalf("expected HDFC, got %q", details.BankAccount)
	}
	if details.AssignedDate != "Yesterday" {
		t.Fatalf("expected Yesterday, got %q", details.AssignedDate)
	}
	if details.Importance != "essential" {
		t.Fatalf("expected essential, got %q", details.Importance)
	}

	_, details = ParseOffline("groceries 1200 icici")
	if details.BankAccount != "ICICI" {
		t.Fatalf("expected ICICI, got %q", details.BankAccount)
	}
	if details.Category != "1200" {
		t.Fatalf("expected second token as category, got %q", details.Category)
	}
}

// TestParseOfflineNoAmount checks the demo notice for amount-free lines.
func TestParseOfflineNoAmount(t *testing.T) {
	message, details := ParseOffline("what can you do")

	if message != demoNoAmountMessage {
		t.Fatalf("unexpected message: %q", message)
	}
	if details != nil {
		t.Fatalf("expected no details, got %+v", details)
	}
}
