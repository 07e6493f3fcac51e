package projector

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	appproperties "staysia/internal/app/handlers/properties"
)

type recordingCache struct {
	invalidated []int64
}

func (c *recordingCache) Get(context.Context, int64) (dto.PropertyDetails, bool, error) {
	return dto.PropertyDetails{}, false, nil
}

func (c *recordingCache) Set(context.Context, int64, dto.PropertyDetails) error { return nil }

func (c *recordingCache) Invalidate(_ context.Context, id int64) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

type mapInbox map[string]bool

func (m mapInbox) Seen(_ context.Context, id string) (bool, error) {
	seen := m[id]
	m[id] = true
	return seen, nil
}

func newInvalidator(cache *recordingCache) *DetailsInvalidator {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler[appproperties.InvalidateDetailsCommand, struct{}](bus, appproperties.InvalidateDetailsCommand{}.Key(), &appproperties.InvalidateDetailsHandler{Cache: cache})
	return &DetailsInvalidator{Bus: bus, Inbox: mapInbox{}}
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "property.events.v1", Value: []byte(value)}
}

func TestDetailsInvalidatorDropsCacheOncePerEvent(t *testing.T) {
	cache := &recordingCache{}
	p := newInvalidator(cache)
	msg := message(`{"id":"e1","type":"property.favorite_toggled.v1","subject":"7"}`)

	require.NoError(t, p.Handle(context.Background(), msg))
	require.NoError(t, p.Handle(context.Background(), msg))
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestDetailsInvalidatorIgnoresOtherEvents(t *testing.T) {
	cache := &recordingCache{}
	p := newInvalidator(cache)

	require.NoError(t, p.Handle(context.Background(), message(`{"id":"e2","type":"booking.requested.v1","subject":"b-1"}`)))
	require.NoError(t, p.Handle(context.Background(), message(`not json`)))
	require.NoError(t, p.Handle(context.Background(), message(`{"id":"e3","type":"property.created.v1","subject":"x"}`)))
	assert.Empty(t, cache.invalidated)
}
