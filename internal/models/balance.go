package models

// Balance states that From owes To exactly Amount, net of every other
// obligation between the pair. Amount is always positive.
type Balance struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
