package account

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a named balance holder. ID is zero until the store assigns it
// and a nil Balance means the balance was never set.
type Account struct {
	ID      int64            `json:"id"`
	Owner   string           `json:"owner"`
	Balance *decimal.Decimal `json:"balance"`
}

func New(owner string, balance decimal.Decimal) *Account {
	return &Account{Owner: owner, Balance: &balance}
}

// Equal compares id, owner and balance; balances compare by value, so 1200
// equals 1200.00.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.ID != other.ID || a.Owner != other.Owner {
		return false
	}
	if a.Balance == nil || other.Balance == nil {
		return a.Balance == other.Balance
	}
	return a.Balance.Equal(*other.Balance)
}

// Clone returns a detached copy.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Balance != nil {
		b := *a.Balance
		c.Balance = &b
	}
	return &c
}

func (a *Account) String() string {
	if a == nil {
		return "Account{nil}"
	}
	balance := "unset"
	if a.Balance != nil {
		balance = a.Balance.String()
	}
	return fmt.Sprintf("Account{id=%d, owner=%q, balance=%s}", a.ID, a.Owner, balance)
}
