package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// MessagePublisher is the subset of *nats.Conn used to publish events
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

// Envelope wraps every event published to NATS
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     EventType       `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSPublisher forwards bus events to NATS subjects
type NATSPublisher struct {
	conn          MessagePublisher
	subjectPrefix string
	source        string
	now           func() time.Time
}

var eventSubjects = map[EventType]string{
	EventTypeLedgerIngested:  "ledgers.ingested",
	EventTypeReportGenerated: "reports.generated",
	EventTypeReportRejected:  "reports.rejected",
}

// ConnectNATS dials the NATS server with reconnect handling
func ConnectNATS(url, clientName string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(clientName),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("url", url).Info("Connected to NATS")
	return nc, nil
}

// NewNATSPublisher creates a publisher. An empty prefix publishes to the bare subjects.
func NewNATSPublisher(conn MessagePublisher, subjectPrefix, source string) *NATSPublisher {
	return &NATSPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		source:        source,
		now:           time.Now,
	}
}

// SubjectFor maps an event type to its NATS subject
func (p *NATSPublisher) SubjectFor(eventType EventType) string {
	subject, ok := eventSubjects[eventType]
	if !ok {
		subject = "events." + string(eventType)
	}
	if p.subjectPrefix != "" {
		return p.subjectPrefix + "." + subject
	}
	return subject
}

// Publish wraps the event in an envelope and publishes it
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventID:       uuid.New().String(),
		EventType:     event.Type(),
		Timestamp:     p.now().UTC(),
		SourceService: p.source,
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := p.SubjectFor(event.Type())
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Published event to NATS")

	return nil
}

// Attach subscribes the publisher to every event type on the bus
func (p *NATSPublisher) Attach(bus *Bus) {
	bus.SubscribeAll(func(ctx context.Context, event Event) {
		if err := p.Publish(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to forward event to NATS")
		}
	})
}
