package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	due    []*EventDocument
	sent   []string
	failed map[string]time.Time
}

func (s *fakeStore) Claim(context.Context, string) (*EventDocument, error) {
	if len(s.due) == 0 {
		return nil, nil
	}
	doc := s.due[0]
	s.due = s.due[1:]
	return doc, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id string) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id string, next time.Time, _ string) error {
	if s.failed == nil {
		s.failed = map[string]time.Time{}
	}
	s.failed[id] = next
	return nil
}

type published struct {
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

type fakeProducer struct {
	err  error
	msgs []published
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

func doc(id, name string) *EventDocument {
	return &EventDocument{
		ID:         id,
		Name:       name,
		Aggregate:  "42",
		Payload:    []byte(`{"PropertyID":42}`),
		OccurredAt: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC),
	}
}

func TestTopicFor(t *testing.T) {
	w := &Worker{TopicPrefix: "dev."}
	assert.Equal(t, "dev.property.events.v1", w.TopicFor("property.created"))
	assert.Equal(t, "dev.calendar.events.v1", w.TopicFor("calendar.range_selected"))
	assert.Equal(t, "plain.events.v1", Topic("", "plain"))
}

func TestDrainPublishesCloudEvents(t *testing.T) {
	store := &fakeStore{due: []*EventDocument{doc("e1", "property.created"), doc("e2", "booking.requested")}}
	producer := &fakeProducer{}
	w := &Worker{Store: store, Producer: producer, ID: "w1"}

	n, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"e1", "e2"}, store.sent)
	require.Len(t, producer.msgs, 2)

	msg := producer.msgs[0]
	assert.Equal(t, "property.events.v1", msg.topic)
	assert.Equal(t, "42", msg.key)
	assert.Equal(t, "application/cloudevents+json", msg.headers["content-type"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &evt))
	assert.Equal(t, "e1", evt["id"])
	assert.Equal(t, "property.created.v1", evt["type"])
	assert.Equal(t, DefaultSource, evt["source"])
}

func TestDrainMarksFailedWithBackoff(t *testing.T) {
	now := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{due: []*EventDocument{doc("e1", "property.created")}}
	w := &Worker{
		Store:    store,
		Producer: &fakeProducer{err: errors.New("broker down")},
		ID:       "w1",
		Backoff:  []time.Duration{time.Second, 5 * time.Second},
		Now:      func() time.Time { return now },
	}

	_, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, store.sent)
	assert.Equal(t, now.Add(time.Second), store.failed["e1"])
}

func TestDrainRespectsBatchSize(t *testing.T) {
	store := &fakeStore{due: []*EventDocument{doc("e1", "a.x"), doc("e2", "a.y"), doc("e3", "a.z")}}
	w := &Worker{Store: store, Producer: &fakeProducer{}, BatchSize: 2}

	n, err := w.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, store.due, 1)
}

func TestRunRequiresDependencies(t *testing.T) {
	err := (&Worker{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrWorkerNotConfigured)
}
