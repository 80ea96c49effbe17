package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JhonesBR/go-bank/internal/api/account"
)

// Payment moves Amount from From to To. ID and Sent stay zero until the
// payment is executed.
type Payment struct {
	ID     int64            `json:"id"`
	Amount *decimal.Decimal `json:"amount"`
	From   *account.Account `json:"from"`
	To     *account.Account `json:"to"`
	Sent   time.Time        `json:"sent"`
}

func New(amount decimal.Decimal, from, to *account.Account) *Payment {
	return &Payment{Amount: &amount, From: from, To: to}
}

func (p *Payment) IsSent() bool {
	return !p.Sent.IsZero()
}

func (p *Payment) Equal(other *Payment) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID != other.ID || !p.Sent.Equal(other.Sent) {
		return false
	}
	if (p.Amount == nil) != (other.Amount == nil) {
		return false
	}
	if p.Amount != nil && !p.Amount.Equal(*other.Amount) {
		return false
	}
	return p.From.Equal(other.From) && p.To.Equal(other.To)
}

func (p *Payment) String() string {
	if p == nil {
		return "Payment{nil}"
	}
	amount := "unset"
	if p.Amount != nil {
		amount = p.Amount.String()
	}
	return fmt.Sprintf("Payment{id=%d, amount=%s, from=%s, to=%s, sent=%s}",
		p.ID, amount, p.From, p.To, p.Sent.Format(time.RFC3339Nano))
}

// Now is the timestamp source for Sent, truncated to the storage precision.
func Now() time.Time {
	return toStoragePrecision(time.Now().UTC())
}

// timestamptz keeps microseconds.
func toStoragePrecision(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}
