package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEqualComparesBalanceByValue(t *testing.T) {
	a := New("Pepa", decimal.NewFromInt(1200))
	b := New("Pepa", decimal.RequireFromString("1200.00"))

	assert.True(t, a.Equal(b))

	b.ID = 1
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(&Account{Owner: "Pepa"}))
	assert.True(t, (*Account)(nil).Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestCloneIsDetached(t *testing.T) {
	a := New("Pepa", decimal.NewFromInt(10))
	a.ID = 5

	c := a.Clone()
	assert.True(t, a.Equal(c))
	assert.NotSame(t, a, c)
	assert.NotSame(t, a.Balance, c.Balance)

	changed := c.Balance.Add(decimal.NewFromInt(1))
	c.Balance = &changed
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(10)))
}

func TestString(t *testing.T) {
	assert.Equal(t, `Account{id=0, owner="Pepa", balance=unset}`, (&Account{Owner: "Pepa"}).String())
	assert.Equal(t, `Account{id=0, owner="Pepa", balance=12.5}`, New("Pepa", decimal.RequireFromString("12.5")).String())
}
