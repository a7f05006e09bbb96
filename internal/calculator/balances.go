package calculator

import (
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// pair is an ordered (debtor, creditor) key into the debt accumulator.
type pair struct {
	from string
	to   string
}

// ComputeBalances nets all expenses into at most one directed debt per pair
// of users.
//
// Algorithm:
//   - For each expense, every participant other than the payer owes the payer
//     their share. Raw totals are kept per direction; nothing is netted yet.
//   - Each unordered pair {A, B} is then visited once (A < B) and the two
//     directions are compared. The larger side wins by the difference; equal
//     sides produce no entry.
//
// Expenses whose payer or participants are not in users contribute nothing
// for those IDs. The result is ordered by (from, to) pair visit order and is
// never nil.
func ComputeBalances(expenses []models.Expense, users []models.User) []models.Balance {
	known := make(map[string]bool, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		if known[u.ID] {
			continue
		}
		known[u.ID] = true
		ids = append(ids, u.ID)
	}
	slices.Sort(ids)

	// debts[{a, b}] = total a owes b before netting
	debts := make(map[pair]float64)
	for _, expense := range expenses {
		if !known[expense.PaidBy] {
			continue
		}
		for _, p := range expense.Participants {
			if p.UserID == expense.PaidBy || !known[p.UserID] {
				continue
			}
			debts[pair{from: p.UserID, to: expense.PaidBy}] += p.Share
		}
	}

	balances := make([]models.Balance, 0)
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			aOwes := debts[pair{from: a, to: b}]
			bOwes := debts[pair{from: b, to: a}]

			switch {
			case aOwes > bOwes:
				balances = append(balances, models.Balance{From: a, To: b, Amount: aOwes - bOwes})
			case bOwes > aOwes:
				balances = append(balances, models.Balance{From: b, To: a, Amount: bOwes - aOwes})
			}
		}
	}

	return balances
}

// TotalExpenses sums the amount of every regular expense.
// Settlements move money between members and are not group spending.
func TotalExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.IsSettlement() {
			continue
		}
		total += expense.Amount
	}
	return total
}

// NetPosition returns what userID is owed minus what they owe across balances.
// Positive = owed money, Negative = owes money, zero = settled.
func NetPosition(balances []models.Balance, userID string) float64 {
	var owed, owes float64
	for _, b := range balances {
		if b.To == userID {
			owed += b.Amount
		}
		if b.From == userID {
			owes += b.Amount
		}
	}
	return owed - owes
}

// FindBalance returns the balance in which from owes to, if one exists.
func FindBalance(balances []models.Balance, from, to string) (models.Balance, bool) {
	for _, b := range balances {
		if b.From == from && b.To == to {
			return b, true
		}
	}
	return models.Balance{}, false
}
