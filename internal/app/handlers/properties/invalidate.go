package properties

import (
	"context"
	"log/slog"

	"staysia/internal/app/commands"
	"staysia/internal/app/policies"
	domainproperties "staysia/internal/domain/properties"
)

const invalidateDetailsKey = "properties.details.invalidate"

// InvalidateDetailsCommand drops the cached detail payload after a property event.
type InvalidateDetailsCommand struct {
	PropertyID domainproperties.PropertyID
	EventName  string
}

func (c InvalidateDetailsCommand) Key() string { return invalidateDetailsKey }

type InvalidateDetailsHandler struct {
	Cache  policies.DetailsCache
	Logger *slog.Logger
}

func (h *InvalidateDetailsHandler) Handle(ctx context.Context, cmd InvalidateDetailsCommand) (struct{}, error) {
	if h.Cache == nil || cmd.PropertyID <= 0 {
		return struct{}{}, nil
	}
	if err := h.Cache.Invalidate(ctx, int64(cmd.PropertyID)); err != nil {
		return struct{}{}, err
	}
	if h.Logger != nil {
		h.Logger.Debug("property details invalidated", "property_id", int64(cmd.PropertyID), "event", cmd.EventName)
	}
	return struct{}{}, nil
}

var _ commands.Handler[InvalidateDetailsCommand, struct{}] = (*InvalidateDetailsHandler)(nil)
