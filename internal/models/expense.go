package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExpenseType distinguishes ordinary shared expenses from settlement payments.
type ExpenseType int

const (
	// ExpenseRegular is a shared purchase paid by one user.
	ExpenseRegular ExpenseType = iota
	// ExpenseSettlement is a payment from a debtor to a creditor that
	// reduces an existing balance.
	ExpenseSettlement
)

// DefaultCategory is assigned to regular expenses created without a category.
const DefaultCategory = "Uncategorized"

// String returns the wire name of the expense type.
func (t ExpenseType) String() string {
	switch t {
	case ExpenseRegular:
		return "regular"
	case ExpenseSettlement:
		return "settlement"
	default:
		return fmt.Sprintf("ExpenseType(%d)", int(t))
	}
}

// ParseExpenseType converts a wire name into an ExpenseType.
// An empty string is treated as regular, matching records saved before
// the type field existed.
func ParseExpenseType(s string) (ExpenseType, error) {
	switch s {
	case "", "regular":
		return ExpenseRegular, nil
	case "settlement":
		return ExpenseSettlement, nil
	default:
		return ExpenseRegular, fmt.Errorf("unknown expense type: %q", s)
	}
}

// MarshalJSON encodes the type as its wire name.
func (t ExpenseType) MarshalJSON() ([]byte, error) {
	switch t {
	case ExpenseRegular, ExpenseSettlement:
		return json.Marshal(t.String())
	default:
		return nil, fmt.Errorf("invalid expense type: %d", int(t))
	}
}

// UnmarshalJSON decodes the type from its wire name.
func (t *ExpenseType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseExpenseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Participant is one user's share of an expense.
type Participant struct {
	// UserID references the User who owes this share.
	UserID string `json:"userId"`

	// Share is the nonnegative amount this user owes toward the expense.
	Share float64 `json:"share"`
}

// Expense represents a payment made by one user on behalf of participants.
//
// A settlement is modelled as an expense too: the debtor is the payer and
// the creditor is the single participant whose share equals the payment.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Groceries").
	Description string `json:"description"`

	// Amount is the total paid, in the base unit.
	// It should equal the sum of participant shares.
	Amount float64 `json:"amount"`

	// Date is when the expense happened.
	Date time.Time `json:"date"`

	// PaidBy is the ID of the user who fronted the money.
	PaidBy string `json:"paidBy"`

	// Participants lists who owes what toward this expense.
	// The payer may appear here with their own share.
	Participants []Participant `json:"participants"`

	// Type marks the expense as regular or a settlement.
	Type ExpenseType `json:"type"`

	// Category is a free-form grouping label for regular expenses.
	Category string `json:"category,omitempty"`
}

// IsSettlement reports whether the expense records a settlement payment.
func (e Expense) IsSettlement() bool {
	return e.Type == ExpenseSettlement
}

// Involves reports whether userID paid for or shares in the expense.
func (e Expense) Involves(userID string) bool {
	if e.PaidBy == userID {
		return true
	}
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// ShareTotal returns the sum of all participant shares.
func (e Expense) ShareTotal() float64 {
	var total float64
	for _, p := range e.Participants {
		total += p.Share
	}
	return total
}
