package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFollowsFlow(t *testing.T) {
	cases := []struct {
		from Status
		want Status
	}{
		{StatusReceived, StatusCutting},
		{StatusCutting, StatusPacking},
		{StatusPacking, StatusOutForDelivery},
		{StatusOutForDelivery, StatusDelivered},
	}
	for _, tc := range cases {
		next, ok := Next(tc.from)
		assert.True(t, ok, "advance from %s", tc.from)
		assert.Equal(t, tc.want, next)
	}
}

func TestNextTerminalStates(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		got, ok := Next(s)
		assert.False(t, ok, "%s must not advance", s)
		assert.Equal(t, s, got)
	}
}

func TestNextUnknownStatusDoesNotAdvance(t *testing.T) {
	got, ok := Next(Status("REFUNDED"))
	assert.False(t, ok)
	assert.Equal(t, Status("REFUNDED"), got)
}

func TestNextMissingStatusDefaultsToReceived(t *testing.T) {
	next, ok := Next("")
	assert.True(t, ok)
	assert.Equal(t, StatusCutting, next)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, StatusReceived, Normalize(""))
	assert.Equal(t, StatusReceived, Normalize("pending"))
	assert.Equal(t, StatusPacking, Normalize(StatusPacking))
	assert.Equal(t, StatusCancelled, Normalize(StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusReceived))
	assert.False(t, IsTerminal(""))
	assert.False(t, IsTerminal(StatusOutForDelivery))
}

func TestIsPending(t *testing.T) {
	assert.True(t, IsPending(StatusReceived))
	assert.True(t, IsPending("pending"))
	assert.True(t, IsPending(""))
	assert.False(t, IsPending(StatusCutting))
	assert.False(t, IsPending(StatusDelivered))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Out for Delivery", Label(StatusOutForDelivery))
	assert.Equal(t, "Received", Label("pending"))
	assert.Equal(t, "Cancelled", Label(StatusCancelled))
}
