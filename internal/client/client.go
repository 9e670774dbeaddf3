package client

import "time"

// DefaultProductName labels the debt entry created together with a new
// client when no product name was given.
const DefaultProductName = "Produit initial"

// Client is a person tracked by the ledger, with a cash deposit held on
// their behalf and the list of purchases they still owe money for.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Deposit   float64
	TotalDebt float64
	Debts     []Debt
}

// Debt is one purchase on credit, owned by exactly one client.
type Debt struct {
	ID          string
	Amount      float64
	ProductName string
	Date        time.Time
	Paid        bool
}

// Debt returns the entry with the given id, or nil if the client holds no
// such entry. Lookup is a linear scan; debt lists stay small.
func (c *Client) Debt(id string) *Debt {
	for i := range c.Debts {
		if c.Debts[i].ID == id {
			return &c.Debts[i]
		}
	}

	return nil
}

// UnpaidTotal sums the amounts of all entries not yet paid. TotalDebt must
// equal this value after every operation.
func (c *Client) UnpaidTotal() float64 {
	var total float64

	for _, d := range c.Debts {
		if !d.Paid {
			total += d.Amount
		}
	}

	return total
}
