package properties

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	"staysia/internal/app/outbox"
	"staysia/internal/app/policies"
	"staysia/internal/app/uow"
	domainproperties "staysia/internal/domain/properties"
)

const (
	createPropertyKey   = "properties.create"
	toggleFavoriteKey   = "properties.favorite.toggle"
	addPropertyImageKey = "properties.images.add"
)

var (
	ErrImageStorageUnavailable = errors.New("properties: image storage unavailable")
	ErrImageRequired           = errors.New("properties: image content is required")
)

type CreatePropertyCommand struct {
	Params domainproperties.CreateParams
}

func (c CreatePropertyCommand) Key() string { return createPropertyKey }

type CreatePropertyHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Now     func() time.Time
}

func (h *CreatePropertyHandler) Handle(ctx context.Context, cmd CreatePropertyCommand) (dto.Property, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.Property{}, uow.ErrUnitOfWorkMissing
	}
	params := cmd.Params
	if params.Now.IsZero() {
		params.Now = now(h.Now)
	}
	property, err := domainproperties.NewProperty(params)
	if err != nil {
		return dto.Property{}, err
	}
	if err := unit.Properties().Save(ctx, property); err != nil {
		return dto.Property{}, err
	}
	property.MarkCreated()
	if err := recordEvents(ctx, h.Outbox, h.Encoder, property); err != nil {
		return dto.Property{}, err
	}
	return dto.MapProperty(property), nil
}

type ToggleFavoriteCommand struct {
	ID domainproperties.PropertyID
}

func (c ToggleFavoriteCommand) Key() string { return toggleFavoriteKey }

type ToggleFavoriteHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Cache   policies.DetailsCache
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (dto.Property, error) {
	if cmd.ID <= 0 {
		return dto.Property{}, domainproperties.ErrInvalidID
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.Property{}, uow.ErrUnitOfWorkMissing
	}
	property, err := unit.Properties().ByID(ctx, cmd.ID)
	if err != nil {
		return dto.Property{}, err
	}
	property.ToggleFavorite(now(h.Now))
	if err := unit.Properties().Save(ctx, property); err != nil {
		return dto.Property{}, err
	}
	if err := recordEvents(ctx, h.Outbox, h.Encoder, property); err != nil {
		return dto.Property{}, err
	}
	invalidate(ctx, h.Cache, h.Logger, property.ID)
	return dto.MapProperty(property), nil
}

type AddPropertyImageCommand struct {
	PropertyID  domainproperties.PropertyID
	FileName    string
	ContentType string
	Reader      io.Reader
}

func (c AddPropertyImageCommand) Key() string { return addPropertyImageKey }

type AddPropertyImageHandler struct {
	Storage policies.ImageStorage
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Cache   policies.DetailsCache
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h *AddPropertyImageHandler) Handle(ctx context.Context, cmd AddPropertyImageCommand) (dto.Property, error) {
	if h.Storage == nil {
		return dto.Property{}, ErrImageStorageUnavailable
	}
	if cmd.PropertyID <= 0 {
		return dto.Property{}, domainproperties.ErrInvalidID
	}
	if cmd.Reader == nil {
		return dto.Property{}, ErrImageRequired
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.Property{}, uow.ErrUnitOfWorkMissing
	}
	property, err := unit.Properties().ByID(ctx, cmd.PropertyID)
	if err != nil {
		return dto.Property{}, err
	}

	key := fmt.Sprintf("properties/%d/%s%s", property.ID, uuid.NewString(), strings.ToLower(path.Ext(cmd.FileName)))
	url, err := h.Storage.Upload(ctx, key, cmd.Reader, cmd.ContentType)
	if err != nil {
		return dto.Property{}, err
	}
	property.AddImage(url, now(h.Now))
	if err := unit.Properties().Save(ctx, property); err != nil {
		return dto.Property{}, err
	}
	if err := recordEvents(ctx, h.Outbox, h.Encoder, property); err != nil {
		return dto.Property{}, err
	}
	invalidate(ctx, h.Cache, h.Logger, property.ID)
	return dto.MapProperty(property), nil
}

func recordEvents(ctx context.Context, box outbox.Outbox, enc outbox.EventEncoder, property *domainproperties.Property) error {
	evs := property.PendingEvents()
	property.ClearEvents()
	return outbox.RecordDomainEvents(ctx, box, enc, evs)
}

func invalidate(ctx context.Context, cache policies.DetailsCache, logger *slog.Logger, id domainproperties.PropertyID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, int64(id)); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("details cache invalidation failed", "property_id", int64(id), "error", err)
	}
}

func now(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return time.Now()
}

var (
	_ commands.Handler[CreatePropertyCommand, dto.Property]   = (*CreatePropertyHandler)(nil)
	_ commands.Handler[ToggleFavoriteCommand, dto.Property]   = (*ToggleFavoriteHandler)(nil)
	_ commands.Handler[AddPropertyImageCommand, dto.Property] = (*AddPropertyImageHandler)(nil)
)
