package projector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"staysia/internal/app/commands"
	appproperties "staysia/internal/app/handlers/properties"
	domainproperties "staysia/internal/domain/properties"
)

// Inbox deduplicates redelivered events.
type Inbox interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

type cloudEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
}

// DetailsInvalidator consumes property events and drops the cached detail payload of the property.
type DetailsInvalidator struct {
	Bus    commands.Bus
	Inbox  Inbox
	Logger *slog.Logger
}

func (p *DetailsInvalidator) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt cloudEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		p.warn("skip undecodable event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		return nil
	}
	name := strings.TrimSuffix(evt.Type, ".v1")
	if !strings.HasPrefix(name, "property.") {
		return nil
	}
	id, err := domainproperties.ParseID(evt.Subject)
	if err != nil {
		p.warn("skip event without property id", "event_id", evt.ID, "subject", evt.Subject)
		return nil
	}
	if p.Inbox != nil && evt.ID != "" {
		seen, err := p.Inbox.Seen(ctx, evt.ID)
		if err != nil {
			return fmt.Errorf("inbox: %w", err)
		}
		if seen {
			return nil
		}
	}
	_, err = commands.Dispatch[appproperties.InvalidateDetailsCommand, struct{}](ctx, p.Bus, appproperties.InvalidateDetailsCommand{
		PropertyID: id,
		EventName:  name,
	})
	return err
}

func (p *DetailsInvalidator) warn(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Warn(msg, args...)
	}
}
