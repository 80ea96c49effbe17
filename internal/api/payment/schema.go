package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JhonesBR/go-bank/internal/api/account"
)

type PaymentShowSchema struct {
	Id     int64                     `json:"id" validate:"required"`
	Amount decimal.Decimal           `json:"amount" validate:"required"`
	From   account.AccountShowSchema `json:"from" validate:"required"`
	To     account.AccountShowSchema `json:"to" validate:"required"`
	Sent   time.Time                 `json:"sent" validate:"required"`
}

func ToShowSchema(p *Payment) PaymentShowSchema {
	show := PaymentShowSchema{Id: p.ID, Sent: p.Sent}
	if p.Amount != nil {
		show.Amount = *p.Amount
	}
	if p.From != nil {
		show.From = account.ToShowSchema(p.From)
	}
	if p.To != nil {
		show.To = account.ToShowSchema(p.To)
	}
	return show
}

func ToShowSchemas(payments []*Payment) []PaymentShowSchema {
	items := make([]PaymentShowSchema, 0, len(payments))
	for _, p := range payments {
		items = append(items, ToShowSchema(p))
	}
	return items
}
