// Package models defines the core domain models for Splitledger.
//
// # Models
//
//   - User: a member of the group, referenced by ID everywhere else
//   - Expense: a payment fronted by one user and shared among participants
//   - Participant: one user's share of an expense
//   - Balance: a derived, directed net debt between two users
//
// Balances are never stored. They are recomputed from the expense list by
// the calculator package whenever users or expenses change.
//
// # Money
//
// All amounts are float64 values in a single base unit (USD). Display
// currencies are a presentation concern handled by the currency package;
// nothing in this package depends on the selected display currency.
package models
