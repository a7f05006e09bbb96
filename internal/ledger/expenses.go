package ledger

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/currency"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// SplitKind selects how an expense amount is divided.
type SplitKind string

const (
	SplitEqual  SplitKind = "equal"
	SplitCustom SplitKind = "custom"
)

// NewExpense is the input for AddExpense. Amount and Shares are in the
// currently selected display currency.
type NewExpense struct {
	Description  string
	Amount       float64
	Date         time.Time // zero means now
	PaidBy       string
	Participants []string
	Split        SplitKind // empty means equal
	Shares       map[string]float64
	Category     string
}

// AddExpense validates and records a regular expense.
func (l *Ledger) AddExpense(ctx context.Context, in NewExpense) (models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return models.Expense{}, ErrInvalidDescription
	}

	var (
		shares []models.Participant
		err    error
	)
	switch in.Split {
	case SplitEqual, "":
		shares, err = calculator.EqualShares(in.Amount, in.Participants)
	case SplitCustom:
		shares, err = calculator.CustomShares(in.Amount, in.Participants, in.Shares)
	default:
		return models.Expense{}, fmt.Errorf("%w: %q", ErrUnknownSplit, in.Split)
	}
	if err != nil {
		return models.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.userIndex(in.PaidBy) < 0 {
		return models.Expense{}, fmt.Errorf("%w: payer %s", ErrUserNotFound, in.PaidBy)
	}
	rate := l.currency.Rate
	for i := range shares {
		if l.userIndex(shares[i].UserID) < 0 {
			return models.Expense{}, fmt.Errorf("%w: participant %s", ErrUserNotFound, shares[i].UserID)
		}
		shares[i].Share = currency.ToBase(shares[i].Share, rate)
	}

	date := in.Date
	if date.IsZero() {
		date = l.now()
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	expense := models.Expense{
		ID:           l.newID(),
		Description:  description,
		Amount:       currency.ToBase(in.Amount, rate),
		Date:         date,
		PaidBy:       in.PaidBy,
		Participants: shares,
		Type:         models.ExpenseRegular,
		Category:     category,
	}

	if err := l.saveExpenses(ctx, append(slices.Clone(l.expenses), expense)); err != nil {
		return models.Expense{}, err
	}

	slog.Info("Expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"paid_by", expense.PaidBy,
		"participants", len(expense.Participants),
	)
	return expense, nil
}

// DeleteExpense removes an expense or settlement by ID.
func (l *Ledger) DeleteExpense(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.expenses, func(e models.Expense) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}

	if err := l.saveExpenses(ctx, slices.Delete(slices.Clone(l.expenses), i, i+1)); err != nil {
		return err
	}

	slog.Info("Expense deleted", "expense_id", id)
	return nil
}

// SortField selects the expense list ordering.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// ExpenseQuery filters and orders the expense list.
type ExpenseQuery struct {
	// Search matches description or payer name, case-insensitively.
	Search    string
	SortBy    SortField // empty means date
	Ascending bool
}

// Expenses returns the expenses matching q. The default order is newest first.
func (l *Ledger) Expenses(q ExpenseQuery) []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make(map[string]string, len(l.users))
	for _, u := range l.users {
		names[u.ID] = strings.ToLower(u.Name)
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]models.Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(names[e.PaidBy], term) {
			continue
		}
		result = append(result, e)
	}

	compare := func(a, b models.Expense) int { return a.Date.Compare(b.Date) }
	if q.SortBy == SortByAmount {
		compare = func(a, b models.Expense) int { return cmp.Compare(a.Amount, b.Amount) }
	}
	slices.SortStableFunc(result, func(a, b models.Expense) int {
		if q.Ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return result
}

// SettleUp records that from paid to, reducing the balance from owes to.
// amount is in the display currency. A payment within calculator.ShareTolerance
// of the outstanding balance settles it exactly.
func (l *Ledger) SettleUp(ctx context.Context, from, to string, amount float64) (models.Expense, error) {
	if from == to {
		return models.Expense{}, ErrSelfSettlement
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Expense{}, calculator.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := calculator.FindBalance(l.balances, from, to)
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: %s -> %s", ErrNoSuchBalance, from, to)
	}

	paid := currency.ToBase(amount, l.currency.Rate)
	switch {
	case math.Abs(paid-balance.Amount) <= calculator.ShareTolerance:
		paid = balance.Amount
	case paid > balance.Amount:
		return models.Expense{}, fmt.Errorf("%w: %.2f > %.2f", ErrSettlementExceedsDebt, paid, balance.Amount)
	}

	settlement := models.Expense{
		ID:           l.newID(),
		Description:  "Settlement",
		Amount:       paid,
		Date:         l.now(),
		PaidBy:       from,
		Participants: []models.Participant{{UserID: to, Share: paid}},
		Type:         models.ExpenseSettlement,
	}

	if err := l.saveExpenses(ctx, append(slices.Clone(l.expenses), settlement)); err != nil {
		return models.Expense{}, err
	}

	slog.Info("Settlement recorded",
		"expense_id", settlement.ID,
		"from", from,
		"to", to,
		"amount", paid,
	)
	return settlement, nil
}

// saveExpenses persists expenses and swaps them in. Callers hold mu.
func (l *Ledger) saveExpenses(ctx context.Context, expenses []models.Expense) error {
	if err := l.store.Save(ctx, storage.KeyExpenses, expenses); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	l.expenses = expenses
	l.recompute()
	slog.Debug("Balances recomputed", "expenses", len(expenses), "balances", len(l.balances))
	return nil
}
