package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "staysia/internal/app/outbox"
)

// Outbox buffers records until Flush, then hands them to Sink or logs them.
type Outbox struct {
	Sink   func(ctx context.Context, record appoutbox.EventRecord)
	Logger *slog.Logger

	mu      sync.Mutex
	pending []appoutbox.EventRecord
}

func NewOutbox(logger *slog.Logger) *Outbox {
	return &Outbox{Logger: logger}
}

func (o *Outbox) Add(_ context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	records := o.pending
	o.pending = nil
	o.mu.Unlock()

	for _, rec := range records {
		if o.Sink != nil {
			o.Sink(ctx, rec)
			continue
		}
		if o.Logger != nil {
			o.Logger.Debug("domain event", "event", rec.Name, "aggregate", rec.Aggregate, "event_id", rec.ID)
		}
	}
	return nil
}

// Pending returns records added since the last Flush.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]appoutbox.EventRecord(nil), o.pending...)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
