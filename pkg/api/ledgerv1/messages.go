// Package ledgerv1 defines the wire contract of the splitledger.v1.LedgerService.
//
// Messages are plain Go structs serialized as JSON. Amounts are always in the
// base currency; fields suffixed with Display are preformatted strings in the
// group's selected display currency.
package ledgerv1

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Participant struct {
	UserID string  `json:"userId"`
	Share  float64 `json:"share"`
}

type Expense struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Amount       float64       `json:"amount"`
	Date         time.Time     `json:"date"`
	PaidBy       string        `json:"paidBy"`
	Participants []Participant `json:"participants"`
	Type         string        `json:"type"`
	Category     string        `json:"category,omitempty"`
}

type Balance struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
}

type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type AddUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type AddUserResponse struct {
	User User `json:"user"`
}

type RemoveUserRequest struct {
	UserID string `json:"userId"`
}

type RemoveUserResponse struct{}

type ListExpensesRequest struct {
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sortBy,omitempty"` // "date" or "amount"
	Ascending bool   `json:"ascending,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

// AddExpenseRequest amounts are entered in the display currency.
type AddExpenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	Date         *time.Time         `json:"date,omitempty"`
	PaidBy       string             `json:"paidBy"`
	Participants []string           `json:"participants"`
	Split        string             `json:"split,omitempty"` // "equal" or "custom"
	Shares       map[string]float64 `json:"shares,omitempty"`
	Category     string             `json:"category,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
	Currency Currency  `json:"currency"`
}

// SettleUpRequest amount is entered in the display currency.
type SettleUpRequest struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	Amount     float64 `json:"amount"`
}

type SettleUpResponse struct {
	Settlement Expense `json:"settlement"`
}

type GetSummaryRequest struct {
	UserID string `json:"userId"`
}

type GetSummaryResponse struct {
	TotalExpenses        float64   `json:"totalExpenses"`
	TotalExpensesDisplay string    `json:"totalExpensesDisplay"`
	NetPosition          float64   `json:"netPosition"`
	NetPositionDisplay   string    `json:"netPositionDisplay"`
	Owes                 []Balance `json:"owes"`
	OwedBy               []Balance `json:"owedBy"`
}

type GetCurrencyRequest struct{}

type GetCurrencyResponse struct {
	Currency  Currency   `json:"currency"`
	Supported []Currency `json:"supported"`
}

type SetCurrencyRequest struct {
	Code string `json:"code"`
}

type SetCurrencyResponse struct {
	Currency Currency `json:"currency"`
}
