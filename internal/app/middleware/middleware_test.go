package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staysia/internal/app/commands"
	"staysia/internal/app/middleware"
	"staysia/internal/infra/storage/memory"
)

type quote struct {
	Total  int64 `json:"total"`
	Nights int   `json:"nights"`
}

type confirmCmd struct {
	GuestID string
	IdemKey string
}

func (confirmCmd) Key() string              { return "test.confirm" }
func (c confirmCmd) Guest() string          { return c.GuestID }
func (c confirmCmd) IdempotencyKey() string { return c.IdemKey }
func (confirmCmd) ResultPrototype() any     { return &quote{} }

type rejectAll struct{ err error }

func (r rejectAll) Validate(context.Context, any) error { return r.err }

func newBus(calls *int, fail error) *commands.InMemoryBus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, confirmCmd{}.Key(), commands.HandlerFunc[confirmCmd, quote](func(context.Context, confirmCmd) (quote, error) {
		*calls++
		if fail != nil {
			return quote{}, fail
		}
		return quote{Total: 3_000_000, Nights: 3}, nil
	}))
	return bus
}

func TestIdempotencyReplaysValueResult(t *testing.T) {
	var calls int
	bus := middleware.ChainCommands(newBus(&calls, nil), middleware.Idempotency(memory.NewIdempotencyStore(), nil))
	cmd := confirmCmd{GuestID: "guest-1", IdemKey: "guest-1:abc"}

	first, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, cmd)
	require.NoError(t, err)
	second, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(3_000_000), second.Total)
}

func TestIdempotencySkipsEmptyKey(t *testing.T) {
	var calls int
	bus := middleware.ChainCommands(newBus(&calls, nil), middleware.Idempotency(memory.NewIdempotencyStore(), nil))

	for i := 0; i < 2; i++ {
		_, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, confirmCmd{GuestID: "guest-1"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotencyReplaysFailure(t *testing.T) {
	var calls int
	bus := middleware.ChainCommands(newBus(&calls, errors.New("sold out")), middleware.Idempotency(memory.NewIdempotencyStore(), nil))
	cmd := confirmCmd{GuestID: "guest-1", IdemKey: "k"}

	_, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, cmd)
	require.Error(t, err)
	_, err = commands.Dispatch[confirmCmd, quote](context.Background(), bus, cmd)
	require.EqualError(t, err, "sold out")
	assert.Equal(t, 1, calls)
}

func TestAuthorizationRequiresGuest(t *testing.T) {
	var calls int
	bus := middleware.ChainCommands(newBus(&calls, nil), middleware.Authorization(middleware.RequireGuest{}))

	_, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, confirmCmd{GuestID: "  "})
	require.ErrorIs(t, err, middleware.ErrUnauthenticated)
	assert.Zero(t, calls)
}

func TestValidationRunsBeforeHandler(t *testing.T) {
	var calls int
	invalid := errors.New("invalid")
	bus := middleware.ChainCommands(newBus(&calls, nil),
		middleware.Validation(rejectAll{err: invalid}),
		middleware.Authorization(middleware.RequireGuest{}),
	)

	_, err := commands.Dispatch[confirmCmd, quote](context.Background(), bus, confirmCmd{})
	require.ErrorIs(t, err, invalid)
	assert.Zero(t, calls)
}
