package banking

import (
	"github.com/shopspring/decimal"
)

type ExecutePaymentSchema struct {
	FromId int64            `json:"from_id" validate:"required,gt=0"`
	ToId   int64            `json:"to_id" validate:"required,gt=0"`
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}
