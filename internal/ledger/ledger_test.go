package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/currency"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

var testNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func openTestLedger(t *testing.T, store storage.Store) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), store,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequentialIDs()),
	)
	require.NoError(t, err)
	return l
}

// seedGroup adds Alice, Bob and Charlie and returns their IDs.
func seedGroup(t *testing.T, l *Ledger) (alice, bob, charlie string) {
	t.Helper()
	ctx := context.Background()
	a, err := l.AddUser(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	b, err := l.AddUser(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)
	c, err := l.AddUser(ctx, "Charlie", "")
	require.NoError(t, err)
	return a.ID, b.ID, c.ID
}

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())

	u, err := l.AddUser(ctx, "  Mary Jane  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane", u.Name)
	assert.Equal(t, "mary.jane@example.com", u.Email)
	assert.NotEmpty(t, u.ID)

	_, err = l.AddUser(ctx, "Other", "MARY.JANE@example.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = l.AddUser(ctx, "   ", "x@example.com")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Len(t, l.Users(), 1)
}

func TestRemoveUser(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, charlie := seedGroup(t, l)

	assert.ErrorIs(t, l.RemoveUser(ctx, "missing"), ErrUserNotFound)

	_, err := l.AddExpense(ctx, NewExpense{
		Description:  "Lunch",
		Amount:       20,
		PaidBy:       alice,
		Participants: []string{alice, bob},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, l.RemoveUser(ctx, bob), ErrUserInUse)
	require.NoError(t, l.RemoveUser(ctx, charlie))
	assert.Len(t, l.Users(), 2)

	assert.ErrorIs(t, l.RemoveUser(ctx, alice), ErrTooFewUsers)
}

func TestAddExpense_EqualSplit(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, charlie := seedGroup(t, l)

	e, err := l.AddExpense(ctx, NewExpense{
		Description:  "Dinner",
		Amount:       90,
		PaidBy:       alice,
		Participants: []string{alice, bob, charlie},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseRegular, e.Type)
	assert.Equal(t, models.DefaultCategory, e.Category)
	assert.Equal(t, testNow, e.Date)
	assert.InDelta(t, 90.0, e.ShareTotal(), 1e-9)

	assert.ElementsMatch(t, []models.Balance{
		{From: bob, To: alice, Amount: 30},
		{From: charlie, To: alice, Amount: 30},
	}, l.Balances())
}

func TestAddExpense_Validation(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, _ := seedGroup(t, l)

	tests := []struct {
		name    string
		in      NewExpense
		wantErr error
	}{
		{
			name:    "missing description",
			in:      NewExpense{Amount: 10, PaidBy: alice, Participants: []string{bob}},
			wantErr: ErrInvalidDescription,
		},
		{
			name:    "zero amount",
			in:      NewExpense{Description: "x", PaidBy: alice, Participants: []string{bob}},
			wantErr: calculator.ErrInvalidAmount,
		},
		{
			name:    "no participants",
			in:      NewExpense{Description: "x", Amount: 10, PaidBy: alice},
			wantErr: calculator.ErrNoParticipants,
		},
		{
			name:    "unknown payer",
			in:      NewExpense{Description: "x", Amount: 10, PaidBy: "ghost", Participants: []string{bob}},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "unknown participant",
			in:      NewExpense{Description: "x", Amount: 10, PaidBy: alice, Participants: []string{"ghost"}},
			wantErr: ErrUserNotFound,
		},
		{
			name: "share mismatch",
			in: NewExpense{
				Description:  "x",
				Amount:       10,
				PaidBy:       alice,
				Participants: []string{alice, bob},
				Split:        SplitCustom,
				Shares:       map[string]float64{alice: 2, bob: 2},
			},
			wantErr: calculator.ErrShareMismatch,
		},
		{
			name:    "unknown split",
			in:      NewExpense{Description: "x", Amount: 10, PaidBy: alice, Participants: []string{bob}, Split: "weird"},
			wantErr: ErrUnknownSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddExpense(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, l.Expenses(ExpenseQuery{}))
}

func TestAddExpense_DisplayCurrency(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, _ := seedGroup(t, l)

	_, err := l.SetCurrency(ctx, "EUR")
	require.NoError(t, err)

	e, err := l.AddExpense(ctx, NewExpense{
		Description:  "Museum",
		Amount:       93,
		PaidBy:       alice,
		Participants: []string{alice, bob},
		Split:        SplitCustom,
		Shares:       map[string]float64{alice: 46.5, bob: 46.5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, e.Amount, 1e-9)
	assert.InDelta(t, 50.0, e.Participants[1].Share, 1e-9)
}

func TestSettleUp(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, _ := seedGroup(t, l)

	_, err := l.AddExpense(ctx, NewExpense{
		Description:  "Tickets",
		Amount:       100,
		PaidBy:       alice,
		Participants: []string{bob},
	})
	require.NoError(t, err)

	_, err = l.SettleUp(ctx, alice, bob, 10)
	assert.ErrorIs(t, err, ErrNoSuchBalance)

	_, err = l.SettleUp(ctx, bob, alice, 150)
	assert.ErrorIs(t, err, ErrSettlementExceedsDebt)

	_, err = l.SettleUp(ctx, bob, alice, 0)
	assert.ErrorIs(t, err, calculator.ErrInvalidAmount)

	_, err = l.SettleUp(ctx, bob, bob, 10)
	assert.ErrorIs(t, err, ErrSelfSettlement)

	s, err := l.SettleUp(ctx, bob, alice, 40)
	require.NoError(t, err)
	assert.True(t, s.IsSettlement())
	assert.Equal(t, bob, s.PaidBy)
	assert.Equal(t, []models.Participant{{UserID: alice, Share: 40}}, s.Participants)
	assert.Equal(t, []models.Balance{{From: bob, To: alice, Amount: 60}}, l.Balances())

	_, err = l.SettleUp(ctx, bob, alice, 60)
	require.NoError(t, err)
	assert.Empty(t, l.Balances())

	summary, err := l.Summary(alice)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.TotalExpenses, 1e-9)
	assert.Zero(t, summary.NetPosition)
}

func TestSettleUp_RoundsToOutstandingBalance(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, charlie := seedGroup(t, l)

	_, err := l.AddExpense(ctx, NewExpense{
		Description:  "Groceries",
		Amount:       100,
		PaidBy:       alice,
		Participants: []string{alice, bob, charlie},
	})
	require.NoError(t, err)

	// Bob owes 33.333...; paying the displayed 33.33 clears it
	_, err = l.SettleUp(ctx, bob, alice, 33.33)
	require.NoError(t, err)

	for _, b := range l.Balances() {
		assert.NotEqual(t, bob, b.From)
		assert.NotEqual(t, bob, b.To)
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, _ := seedGroup(t, l)

	e, err := l.AddExpense(ctx, NewExpense{
		Description:  "Taxi",
		Amount:       12,
		PaidBy:       alice,
		Participants: []string{bob},
	})
	require.NoError(t, err)
	require.Len(t, l.Balances(), 1)

	require.NoError(t, l.DeleteExpense(ctx, e.ID))
	assert.Empty(t, l.Balances())
	assert.ErrorIs(t, l.DeleteExpense(ctx, e.ID), ErrExpenseNotFound)
}

func TestExpenses_Query(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, memory.New())
	alice, bob, _ := seedGroup(t, l)

	add := func(desc string, amount float64, payer string, day int) {
		t.Helper()
		_, err := l.AddExpense(ctx, NewExpense{
			Description:  desc,
			Amount:       amount,
			Date:         testNow.AddDate(0, 0, day),
			PaidBy:       payer,
			Participants: []string{alice, bob},
		})
		require.NoError(t, err)
	}
	add("Coffee", 5, alice, 0)
	add("Rent", 1000, bob, 1)
	add("Coffee beans", 20, bob, 2)

	descriptions := func(expenses []models.Expense) []string {
		var out []string
		for _, e := range expenses {
			out = append(out, e.Description)
		}
		return out
	}

	assert.Equal(t, []string{"Coffee beans", "Rent", "Coffee"}, descriptions(l.Expenses(ExpenseQuery{})))
	assert.Equal(t, []string{"Coffee", "Coffee beans", "Rent"},
		descriptions(l.Expenses(ExpenseQuery{SortBy: SortByAmount, Ascending: true})))
	assert.Equal(t, []string{"Coffee beans", "Coffee"}, descriptions(l.Expenses(ExpenseQuery{Search: "COFFEE"})))
	assert.Equal(t, []string{"Coffee beans", "Rent"}, descriptions(l.Expenses(ExpenseQuery{Search: "bob"})))
}

func TestOpen_ReloadsState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	l := openTestLedger(t, store)
	alice, bob, _ := seedGroup(t, l)

	_, err := l.AddExpense(ctx, NewExpense{
		Description:  "Dinner",
		Amount:       50,
		PaidBy:       alice,
		Participants: []string{bob},
	})
	require.NoError(t, err)
	_, err = l.SetCurrency(ctx, "gbp")
	require.NoError(t, err)

	reopened := openTestLedger(t, store)
	assert.Equal(t, l.Users(), reopened.Users())
	assert.Equal(t, l.Balances(), reopened.Balances())
	assert.Equal(t, "GBP", reopened.Currency().Code)
	assert.Equal(t, 3, reopened.Stats().Users)
}

func TestSetCurrency_Unknown(t *testing.T) {
	l := openTestLedger(t, memory.New())
	_, err := l.SetCurrency(context.Background(), "XYZ")
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
	assert.Equal(t, currency.Base, l.Currency())
}

func TestSummary_UnknownUser(t *testing.T) {
	l := openTestLedger(t, memory.New())
	_, err := l.Summary("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// failingStore rejects every Save.
type failingStore struct {
	*memory.Store
}

var errDiskFull = errors.New("disk full")

func (failingStore) Save(context.Context, string, any) error {
	return errDiskFull
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	l := openTestLedger(t, store)
	alice, bob, _ := seedGroup(t, l)

	broken := openTestLedger(t, failingStore{store})
	_, err := broken.AddExpense(ctx, NewExpense{
		Description:  "Dinner",
		Amount:       50,
		PaidBy:       alice,
		Participants: []string{bob},
	})
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, broken.Expenses(ExpenseQuery{}))
	assert.Empty(t, broken.Balances())

	_, err = broken.AddUser(ctx, "Dave", "")
	assert.ErrorIs(t, err, errDiskFull)
	assert.Len(t, broken.Users(), 3)
}
