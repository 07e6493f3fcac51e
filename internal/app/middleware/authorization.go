package middleware

import (
	"context"
	"errors"
	"strings"

	"staysia/internal/app/commands"
	"staysia/internal/app/queries"
)

var ErrUnauthenticated = errors.New("middleware: signed-in guest required")

type Authorizer interface {
	Authorize(ctx context.Context, message any) error
}

// GuestScoped is implemented by messages that act on behalf of a signed-in guest.
type GuestScoped interface {
	Guest() string
}

// RequireGuest rejects guest-scoped messages that carry no guest id.
type RequireGuest struct{}

func (RequireGuest) Authorize(_ context.Context, message any) error {
	scoped, ok := message.(GuestScoped)
	if !ok {
		return nil
	}
	if strings.TrimSpace(scoped.Guest()) == "" {
		return ErrUnauthenticated
	}
	return nil
}

func Authorization(a Authorizer) CommandMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := a.Authorize(ctx, cmd); err != nil {
				return nil, err
			}
			return nextFn(ctx, cmd)
		})
	}
}

func QueryAuthorization(a Authorizer) QueryMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := a.Authorize(ctx, q); err != nil {
				return nil, err
			}
			return nextFn(ctx, q)
		})
	}
}
