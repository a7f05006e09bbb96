// Package currency handles display currencies.
//
// Stored amounts are always in the base currency (USD). Conversion happens
// only at presentation boundaries: Convert when rendering, ToBase when
// accepting user input.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	iso "golang.org/x/text/currency"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is a display currency with its exchange rate relative to the base.
type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// Base is the currency all amounts are stored in.
var Base = Currency{Code: "USD", Name: "US Dollar", Symbol: "$", Rate: 1}

// Fixed rates relative to USD.
var supported = []Currency{
	Base,
	{Code: "EUR", Name: "Euro", Symbol: "€", Rate: 0.93},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Rate: 0.8},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Rate: 110.2},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Rate: 1.35},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Rate: 1.45},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Rate: 75.5},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Rate: 7.1},
}

// Supported returns every selectable display currency.
func Supported() []Currency {
	return append([]Currency(nil), supported...)
}

// Lookup finds a supported currency by its ISO 4217 code (case-insensitive).
func Lookup(code string) (Currency, error) {
	unit, err := iso.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	for _, c := range supported {
		if c.Code == unit.String() {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, unit)
}

// Convert turns a base amount into the display currency.
func Convert(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).InexactFloat64()
}

// ToBase turns an amount entered in a display currency back into the base.
// A non-positive rate leaves the amount unchanged.
func ToBase(amount, rate float64) float64 {
	r := decimal.NewFromFloat(rate)
	if !r.IsPositive() {
		return amount
	}
	return decimal.NewFromFloat(amount).Div(r).InexactFloat64()
}

// Format renders a base amount in c, e.g. "€9.30" or "-$4.00".
func (c Currency) Format(amount float64) string {
	d := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(c.Rate)).Round(2)
	if d.IsNegative() {
		return "-" + c.Symbol + d.Neg().StringFixed(2)
	}
	return c.Symbol + d.StringFixed(2)
}
