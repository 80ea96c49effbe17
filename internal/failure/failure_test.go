package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchTheirSentinel(t *testing.T) {
	cases := []struct {
		err  error
		want error
		kind Kind
	}{
		{InvalidArgument("owner must be set"), ErrInvalidArgument, KindInvalidArgument},
		{NotFound("account %d", 7), ErrEntityNotFound, KindEntityNotFound},
		{InsufficientBalance("need more"), ErrInsufficientBalance, KindInsufficientBalance},
		{Service(errors.New("conn reset"), "update account"), ErrServiceFailure, KindServiceFailure},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.want)
			assert.Equal(t, tc.kind, KindOf(tc.err))
			assert.True(t, Classified(tc.err))

			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.want)
			assert.Equal(t, tc.kind, KindOf(wrapped))
		})
	}
}

func TestKindsDoNotOverlap(t *testing.T) {
	err := InsufficientBalance("short by 10")

	assert.NotErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrServiceFailure)
	assert.NotErrorIs(t, err, ErrEntityNotFound)
}

func TestServiceUnwrapsToCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Service(cause, "create payment")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "service failure")
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, Classified(errors.New("boom")))
}
