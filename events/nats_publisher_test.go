package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func TestNATSPublisher_SubjectFor(t *testing.T) {
	bare := NewNATSPublisher(nil, "", "test")
	prefixed := NewNATSPublisher(nil, "betreport", "test")

	assert.Equal(t, "reports.generated", bare.SubjectFor(EventTypeReportGenerated))
	assert.Equal(t, "reports.rejected", bare.SubjectFor(EventTypeReportRejected))
	assert.Equal(t, "ledgers.ingested", bare.SubjectFor(EventTypeLedgerIngested))
	assert.Equal(t, "betreport.reports.generated", prefixed.SubjectFor(EventTypeReportGenerated))
	assert.Equal(t, "events.unknown", bare.SubjectFor(EventType("unknown")))
}

func TestNATSPublisher_PublishEnvelope(t *testing.T) {
	conn := new(MockMessagePublisher)
	publisher := NewNATSPublisher(conn, "", "betreport")
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	var captured []byte
	conn.On("Publish", "reports.generated", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).([]byte) }).
		Return(nil)

	event := ReportGeneratedEvent{UserID: "42", Rounds: 3, TotalOverall: "30.00"}
	require.NoError(t, publisher.Publish(context.Background(), event))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(captured, &envelope))
	assert.Equal(t, EventTypeReportGenerated, envelope.EventType)
	assert.Equal(t, "betreport", envelope.SourceService)
	assert.True(t, envelope.Timestamp.Equal(fixed))
	_, err := uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload ReportGeneratedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "42", payload.UserID)
	assert.Equal(t, 3, payload.Rounds)
	assert.Equal(t, "30.00", payload.TotalOverall)

	conn.AssertExpectations(t)
}

func TestNATSPublisher_PublishError(t *testing.T) {
	conn := new(MockMessagePublisher)
	publisher := NewNATSPublisher(conn, "", "betreport")
	conn.On("Publish", "reports.rejected", mock.Anything).Return(errors.New("connection closed"))

	err := publisher.Publish(context.Background(), ReportRejectedEvent{UserID: "1", Reason: RejectReasonSchema})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event to NATS")
}

func TestNATSPublisher_CancelledContext(t *testing.T) {
	conn := new(MockMessagePublisher)
	publisher := NewNATSPublisher(conn, "", "betreport")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, ReportRejectedEvent{UserID: "1"})

	assert.ErrorIs(t, err, context.Canceled)
	conn.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNATSPublisher_AttachForwardsBusEvents(t *testing.T) {
	conn := new(MockMessagePublisher)
	publisher := NewNATSPublisher(conn, "", "betreport")
	bus := NewBus()
	publisher.Attach(bus)

	published := make(chan string, 1)
	conn.On("Publish", "ledgers.ingested", mock.Anything).
		Run(func(args mock.Arguments) { published <- args.String(0) }).
		Return(nil)

	bus.Emit(context.Background(), LedgerIngestedEvent{UserID: "1", Rows: 2})

	select {
	case subject := <-published:
		assert.Equal(t, "ledgers.ingested", subject)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not forwarded to NATS")
	}
}
