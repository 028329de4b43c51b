package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

const defaultSuccessMessage = "✅ Expense processed successfully!"

// Result is the normalized outcome of one remote parse request. Semantic
// failures reported by the service land here with Success=false; transport
// failures are returned as errors by Parse instead.
type Result struct {
	Success bool
	Message string
	Error   string
	Details *models.ParsedExpenseDetails
}

// Client calls the remote expense parser over its single request/response
// contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type chatRequest struct {
	Text string `json:"text"`
}

// chatResponse accepts both upstream spellings of the message and details
// fields; the adapter collapses them into one Result.
type chatResponse struct {
	Success        *bool        `json:"success"`
	Response       string       `json:"response"`
	Message        string       `json:"message"`
	Error          string       `json:"error"`
	ParsedExpense  *wireDetails `json:"parsed_expense"`
	ExpenseDetails *wireDetails `json:"expense_details"`
}

type wireDetails struct {
	ExpenseName  string     `json:"expense_name"`
	Category     string     `json:"category"`
	Amount       flexString `json:"amount"`
	Importance   string     `json:"importance"`
	BankAccount  string     `json:"bank_account"`
	AssignedDate string     `json:"assigned_date"`
	ExpenseType  string     `json:"expense_type"`
}

// flexString decodes a JSON string or number into text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = flexString(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*f = flexString(number.String())
	return nil
}

// NewClient creates a parser client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Parse sends one parse request for the raw text. A non-nil error means the
// service was unreachable (connection failure or non-2xx status); everything
// the service itself reports, including failures, comes back as a Result.
func (c *Client) Parse(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(chatRequest{Text: text})
	if err != nil {
		return Result{}, err
	}

	endpoint := fmt.Sprintf("%s/chat", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("parser request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Result{}, fmt.Errorf("parser response read failed: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return Result{}, fmt.Errorf("parser returned status %d", response.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// A 2xx body we cannot decode is treated as a semantic failure,
		// not a transport one: the service answered, just not usefully.
		return Result{Success: false, Error: "unrecognized parser response"}, nil
	}

	return normalizeResponse(parsed), nil
}

func normalizeResponse(parsed chatResponse) Result {
	if parsed.Success == nil {
		return Result{Success: false, Error: "unrecognized parser response"}
	}

	message := parsed.Response
	if message == "" {
		message = parsed.Message
	}

	if !*parsed.Success {
		errText := parsed.Error
		if errText == "" {
			errText = message
		}
		if errText == "" {
			errText = "Unknown error"
		}
		return Result{Success: false, Error: errText}
	}

	if message == "" {
		message = defaultSuccessMessage
	}

	details := parsed.ParsedExpense
	if details == nil {
		details = parsed.ExpenseDetails
	}

	return Result{
		Success: true,
		Message: message,
		Details: toDetails(details),
	}
}

func toDetails(wire *wireDetails) *models.ParsedExpenseDetails {
	if wire == nil {
		return nil
	}

	return &models.ParsedExpenseDetails{
		ExpenseName:  wire.ExpenseName,
		Category:     wire.Category,
		Amount:       string(wire.Amount),
		Importance:   wire.Importance,
		BankAccount:  wire.BankAccount,
		AssignedDate: wire.AssignedDate,
		ExpenseType:  wire.ExpenseType,
	}
}
