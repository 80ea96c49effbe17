package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	a := sentPayment()
	b := sentPayment()
	assert.True(t, a.Equal(b))

	b.Sent = a.Sent.In(time.FixedZone("CET", 3600))
	assert.True(t, a.Equal(b), "same instant in another zone")

	b.Sent = a.Sent.Add(time.Microsecond)
	assert.False(t, a.Equal(b))

	c := sentPayment()
	c.To.Owner = "Franta"
	assert.False(t, a.Equal(c))

	d := sentPayment()
	d.Amount = nil
	assert.False(t, a.Equal(d))
	assert.False(t, d.Equal(a))
}

func TestNowHasMicrosecondPrecision(t *testing.T) {
	now := Now()

	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
	assert.Equal(t, time.UTC, now.Location())
}

func TestIsSent(t *testing.T) {
	p := New(dec(1), nil, nil)
	assert.False(t, p.IsSent())

	p.Sent = Now()
	assert.True(t, p.IsSent())
}
