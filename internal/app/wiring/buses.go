package wiring

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staysia/internal/app/autocomplete"
	"staysia/internal/app/commands"
	appbookings "staysia/internal/app/handlers/bookings"
	appcalendar "staysia/internal/app/handlers/calendar"
	apppricing "staysia/internal/app/handlers/pricing"
	appproperties "staysia/internal/app/handlers/properties"
	appusers "staysia/internal/app/handlers/users"
	"staysia/internal/app/middleware"
	"staysia/internal/app/outbox"
	"staysia/internal/app/policies"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
	domaincalendar "staysia/internal/domain/calendar"
)

var ErrMissingDependency = errors.New("wiring: required dependency missing")

// Deps are the ports the application handlers run against. Cache, Images, Geocoder and Pricing are optional.
type Deps struct {
	UoWFactory  uow.UoWFactory
	Sessions    domaincalendar.SessionStore
	Outbox      outbox.Outbox
	Idempotency middleware.IdempotencyStore
	Validator   middleware.Validator

	Pricing  policies.PricingSource
	Cache    policies.DetailsCache
	Images   policies.ImageStorage
	Geocoder autocomplete.Geocoder

	AutocompleteDelay time.Duration
	EventSource       string
	Logger            *slog.Logger
	Now               func() time.Time
	NewID             func() string
}

type Buses struct {
	Commands commands.Bus
	Queries  queries.Bus
}

// Build registers every handler and wraps the buses in the middleware pipeline.
func Build(d Deps) (Buses, error) {
	if d.UoWFactory == nil || d.Sessions == nil || d.Outbox == nil || d.Idempotency == nil || d.Validator == nil {
		return Buses{}, ErrMissingDependency
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	encoder := outbox.JSONEventEncoder{Source: d.EventSource}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, appproperties.CreatePropertyCommand{}.Key(), &appproperties.CreatePropertyHandler{
		Outbox:  d.Outbox,
		Encoder: encoder,
		Now:     d.Now,
	})
	commands.RegisterHandler(commandBus, appproperties.ToggleFavoriteCommand{}.Key(), &appproperties.ToggleFavoriteHandler{
		Outbox:  d.Outbox,
		Encoder: encoder,
		Cache:   d.Cache,
		Logger:  d.Logger,
		Now:     d.Now,
	})
	commands.RegisterHandler(commandBus, appproperties.AddPropertyImageCommand{}.Key(), &appproperties.AddPropertyImageHandler{
		Storage: d.Images,
		Outbox:  d.Outbox,
		Encoder: encoder,
		Cache:   d.Cache,
		Logger:  d.Logger,
		Now:     d.Now,
	})
	commands.RegisterHandler(commandBus, appproperties.InvalidateDetailsCommand{}.Key(), &appproperties.InvalidateDetailsHandler{
		Cache:  d.Cache,
		Logger: d.Logger,
	})
	commands.RegisterHandler(commandBus, appcalendar.OpenSessionCommand{}.Key(), &appcalendar.OpenSessionHandler{
		UoWFactory: d.UoWFactory,
		Sessions:   d.Sessions,
		Pricing:    d.Pricing,
		Logger:     d.Logger,
		Now:        d.Now,
		NewID:      d.NewID,
	})
	commands.RegisterHandler(commandBus, appcalendar.SelectDateCommand{}.Key(), &appcalendar.SelectDateHandler{
		Sessions: d.Sessions,
		Outbox:   d.Outbox,
		Encoder:  encoder,
		Logger:   d.Logger,
		Now:      d.Now,
	})
	commands.RegisterHandler(commandBus, appcalendar.ClearSelectionCommand{}.Key(), &appcalendar.ClearSelectionHandler{
		Sessions: d.Sessions,
		Now:      d.Now,
	})
	commands.RegisterHandler(commandBus, appcalendar.ConfirmSelectionCommand{}.Key(), &appcalendar.ConfirmSelectionHandler{
		Sessions: d.Sessions,
		Outbox:   d.Outbox,
		Encoder:  encoder,
		Now:      d.Now,
		NewID:    d.NewID,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, appproperties.SearchPropertiesQuery{}.Key(), &appproperties.SearchPropertiesHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, appproperties.GetPropertyQuery{}.Key(), &appproperties.GetPropertyHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, appproperties.HomeSectionsQuery{}.Key(), &appproperties.HomeSectionsHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, appproperties.GetPropertyDetailsQuery{}.Key(), &appproperties.GetPropertyDetailsHandler{
		UoWFactory: d.UoWFactory,
		Cache:      d.Cache,
		Logger:     d.Logger,
		Now:        d.Now,
	})
	queries.RegisterHandler(queryBus, apppricing.GetPricingQuery{}.Key(), &apppricing.GetPricingHandler{UoWFactory: d.UoWFactory, Now: d.Now})
	queries.RegisterHandler(queryBus, appusers.CheckEmailQuery{}.Key(), &appusers.CheckEmailHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, appbookings.ListGuestBookingsQuery{}.Key(), &appbookings.ListGuestBookingsHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, appcalendar.GetMonthQuery{}.Key(), &appcalendar.GetMonthHandler{Sessions: d.Sessions, Now: d.Now})
	if d.Geocoder != nil {
		var opts []autocomplete.Option
		if d.AutocompleteDelay > 0 {
			opts = append(opts, autocomplete.WithDelay(d.AutocompleteDelay))
		}
		queries.RegisterHandler(queryBus, autocomplete.SearchLocationsQuery{}.Key(), &autocomplete.SearchLocationsHandler{
			Debouncer: autocomplete.NewDebouncer(d.Geocoder, opts...),
		})
	}

	return Buses{
		Commands: middleware.ChainCommands(
			commandBus,
			middleware.Validation(d.Validator),
			middleware.Authorization(middleware.RequireGuest{}),
			middleware.Idempotency(d.Idempotency, nil),
			middleware.Transaction(d.UoWFactory, nil),
			middleware.OutboxFlush(d.Outbox),
		),
		Queries: middleware.ChainQueries(
			queryBus,
			middleware.QueryValidation(d.Validator),
			middleware.QueryAuthorization(middleware.RequireGuest{}),
		),
	}, nil
}
