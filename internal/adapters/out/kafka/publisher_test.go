package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []skafka.Message
	ctx  context.Context
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	f.ctx = ctx
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Publish(t *testing.T) {
	requestID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	t.Run("writes one keyed message per event", func(t *testing.T) {
		w := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(w, discardLogger())

		p.Publish(t.Context(),
			request.StatusChanged{RequestID: requestID, From: request.Unknown, To: request.Pending, OccurredAt: at},
			request.StatusChanged{RequestID: requestID, From: request.Pending, To: request.Accepted,
				DriverID: &driverID, OccurredAt: at},
		)

		require.Len(t, w.msgs, 2)
		assert.Equal(t, requestID.String(), string(w.msgs[0].Key))

		var created kafka.StatusChangedMessage
		require.NoError(t, json.Unmarshal(w.msgs[0].Value, &created))
		assert.Empty(t, created.From)
		assert.Equal(t, "pending", created.To)
		assert.Nil(t, created.DriverID)

		var accepted kafka.StatusChangedMessage
		require.NoError(t, json.Unmarshal(w.msgs[1].Value, &accepted))
		assert.Equal(t, "pending", accepted.From)
		assert.Equal(t, "accepted", accepted.To)
		require.NotNil(t, accepted.DriverID)
		assert.Equal(t, driverID.String(), *accepted.DriverID)
		assert.True(t, at.Equal(accepted.OccurredAt))
	})

	t.Run("cancelled caller does not cancel the write", func(t *testing.T) {
		w := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(w, discardLogger())
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		p.Publish(ctx, request.StatusChanged{RequestID: requestID, To: request.Cancelled, OccurredAt: at})

		require.Len(t, w.msgs, 1)
		assert.NoError(t, w.ctx.Err())
	})

	t.Run("writer errors are swallowed", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("broker down")}
		p := kafka.NewPublisherWithWriter(w, discardLogger())

		assert.NotPanics(t, func() {
			p.Publish(t.Context(), request.StatusChanged{RequestID: requestID, To: request.Pending, OccurredAt: at})
		})
	})

	t.Run("no events no write", func(t *testing.T) {
		w := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(w, discardLogger())

		p.Publish(t.Context())

		assert.Nil(t, w.ctx)
	})
}
