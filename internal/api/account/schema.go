package account

import (
	"github.com/shopspring/decimal"
)

type CreateAccountSchema struct {
	Owner   string           `json:"owner" validate:"required,max=200"`
	Balance *decimal.Decimal `json:"balance" validate:"required"`
}

type UpdateAccountSchema = CreateAccountSchema

type AccountShowSchema struct {
	Id      int64           `json:"id" validate:"required"`
	Owner   string          `json:"owner" validate:"required"`
	Balance decimal.Decimal `json:"balance" validate:"required"`
}

func ToShowSchema(acc *Account) AccountShowSchema {
	show := AccountShowSchema{Id: acc.ID, Owner: acc.Owner}
	if acc.Balance != nil {
		show.Balance = *acc.Balance
	}
	return show
}
