// Package ledger owns the group's users and expenses.
//
// A Ledger is the single writer over its state: every mutation is validated,
// persisted to the backing store, and followed by a full recomputation of
// balances. Readers always see the balances that match the current
// expense list.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/currency"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrInvalidName           = errors.New("name is required")
	ErrDuplicateEmail        = errors.New("email already in group")
	ErrTooFewUsers           = errors.New("you need at least two people to split expenses")
	ErrUserInUse             = errors.New("user is involved in expenses, settle up first")
	ErrInvalidDescription    = errors.New("description is required")
	ErrUnknownSplit          = errors.New("unknown split type")
	ErrNoSuchBalance         = errors.New("no outstanding balance between these users")
	ErrSettlementExceedsDebt = errors.New("settlement exceeds the outstanding balance")
	ErrSelfSettlement        = errors.New("cannot settle with yourself")
)

// minUsers is the smallest group a user can be removed from.
const minUsers = 2

// Ledger holds the current snapshot of users and expenses.
type Ledger struct {
	store storage.Store
	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	users    []models.User
	expenses []models.Expense
	balances []models.Balance
	currency currency.Currency
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for default expense dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides how user and expense IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// Open loads the ledger state from store. Missing keys start empty, and the
// display currency defaults to the base currency.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:    store,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		currency: currency.Base,
	}
	for _, opt := range opts {
		opt(l)
	}

	if _, err := store.Load(ctx, storage.KeyUsers, &l.users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if _, err := store.Load(ctx, storage.KeyExpenses, &l.expenses); err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	var code string
	found, err := store.Load(ctx, storage.KeyCurrency, &code)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency: %w", err)
	}
	if found {
		c, err := currency.Lookup(code)
		if err != nil {
			slog.Warn("Ignoring stored display currency", "currency", code, "error", err)
		} else {
			l.currency = c
		}
	}

	l.recompute()
	slog.Info("Ledger loaded",
		"users", len(l.users),
		"expenses", len(l.expenses),
		"balances", len(l.balances),
		"currency", l.currency.Code,
	)
	return l, nil
}

// recompute rederives balances from the full snapshot. Callers hold mu.
func (l *Ledger) recompute() {
	l.balances = calculator.ComputeBalances(l.expenses, l.users)
}

// Users returns a copy of the group members.
func (l *Ledger) Users() []models.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.User(nil), l.users...)
}

// User returns the member with the given ID.
func (l *Ledger) User(id string) (models.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.userIndex(id); i >= 0 {
		return l.users[i], nil
	}
	return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// Balances returns the current net debts.
func (l *Ledger) Balances() []models.Balance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Balance(nil), l.balances...)
}

// Currency returns the selected display currency.
func (l *Ledger) Currency() currency.Currency {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currency
}

// SetCurrency selects and persists the display currency.
func (l *Ledger) SetCurrency(ctx context.Context, code string) (currency.Currency, error) {
	c, err := currency.Lookup(code)
	if err != nil {
		return currency.Currency{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Save(ctx, storage.KeyCurrency, c.Code); err != nil {
		return currency.Currency{}, fmt.Errorf("failed to save currency: %w", err)
	}
	l.currency = c
	return c, nil
}

// Summary is one member's view of the group.
type Summary struct {
	// TotalExpenses is group spending, excluding settlements.
	TotalExpenses float64
	// NetPosition is positive when the user is owed money.
	NetPosition float64
	// Owes lists balances where the user is the debtor.
	Owes []models.Balance
	// OwedBy lists balances where the user is the creditor.
	OwedBy []models.Balance
}

// Summary reports group spending and userID's standing.
func (l *Ledger) Summary(userID string) (Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.userIndex(userID) < 0 {
		return Summary{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	s := Summary{
		TotalExpenses: calculator.TotalExpenses(l.expenses),
		NetPosition:   calculator.NetPosition(l.balances, userID),
	}
	for _, b := range l.balances {
		switch userID {
		case b.From:
			s.Owes = append(s.Owes, b)
		case b.To:
			s.OwedBy = append(s.OwedBy, b)
		}
	}
	return s, nil
}

// Stats is a point-in-time count of ledger contents.
type Stats struct {
	Users         int
	Expenses      int
	Balances      int
	TotalExpenses float64
}

// Stats returns current counts for monitoring.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Users:         len(l.users),
		Expenses:      len(l.expenses),
		Balances:      len(l.balances),
		TotalExpenses: calculator.TotalExpenses(l.expenses),
	}
}

func (l *Ledger) userIndex(id string) int {
	for i, u := range l.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
