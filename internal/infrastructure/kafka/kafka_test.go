package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &Producer{writer: w, now: func() time.Time { return at }}

	event := order.Event{ID: "e1", EventType: order.EventOrderPlaced, OrderID: "o1", Timestamp: at}
	require.NoError(t, p.Publish(context.Background(), "o1", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "o1", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, "OrderPlaced", string(msg.Headers[0].Value))

	var decoded order.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "e1", decoded.ID)
}

func TestProducer_PublishPlainPayload(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, now: time.Now}

	require.NoError(t, p.Publish(context.Background(), "k", map[string]int{"n": 1}))

	assert.Empty(t, w.msgs[0].Headers)
	assert.JSONEq(t, `{"n":1}`, string(w.msgs[0].Value))
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("leader not available")}, now: time.Now}

	assert.Error(t, p.Publish(context.Background(), "k", "v"))
}

// fakeReader serves queued messages then blocks until ctx is done
type fakeReader struct {
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestConsumer_CommitsAfterHandling(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Key: []byte("a"), Value: []byte("1")},
		{Offset: 2, Key: []byte("b"), Value: []byte("2")},
	}}
	c := &Consumer{reader: r}
	ctx, cancel := context.WithCancel(context.Background())

	var seen []string
	err := c.Consume(ctx, func(_ context.Context, key, _ []byte) error {
		seen = append(seen, string(key))
		if len(seen) == 2 {
			cancel()
			return errors.New("handler failed")
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, []int64{1, 2}, r.committed)
}
