package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := events.NewKafkaPublisher(w)

	err := p.Publish(context.Background(), events.Event{
		Type:    events.DraftPublished,
		Key:     "draft-1",
		Payload: map[string]string{"title": "Braised Lamb Shank"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, "draft-1", string(m.Key))
	require.Len(t, m.Headers, 1)
	assert.Equal(t, events.DraftPublished, string(m.Headers[0].Value))

	var got map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, events.DraftPublished, got["type"])
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	})
	return &buf
}

func TestEmitLogsFailures(t *testing.T) {
	buf := captureLog(t)
	p := events.NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")})

	events.Emit(p, events.Event{Type: events.CartCheckout, Key: "r1"})

	out := buf.String()
	assert.True(t, strings.Contains(out, `"action":"event.publish.fail"`), out)
	assert.True(t, strings.Contains(out, "broker down"), out)
}

func TestLogPublisher(t *testing.T) {
	buf := captureLog(t)
	events.Emit(events.LogPublisher{}, events.Event{Type: events.CartCheckout, Key: "r2"})
	assert.Contains(t, buf.String(), `"action":"event.cart.checkout"`)
	assert.Contains(t, buf.String(), `"key":"r2"`)

	events.Emit(nil, events.Event{Type: "ignored"})
}
