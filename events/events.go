package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeLedgerIngested  EventType = "ledger_ingested"
	EventTypeReportGenerated EventType = "report_generated"
	EventTypeReportRejected  EventType = "report_rejected"
)

// AllEventTypes lists every event type emitted by the application
var AllEventTypes = []EventType{
	EventTypeLedgerIngested,
	EventTypeReportGenerated,
	EventTypeReportRejected,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// LedgerIngestedEvent is emitted once per uploaded ledger
type LedgerIngestedEvent struct {
	UserID            string `json:"user_id"`
	SessionID         string `json:"session_id"`
	Filename          string `json:"filename"`
	Rows              int    `json:"rows"`
	Kept              int    `json:"kept"`
	DroppedTimestamps int    `json:"dropped_timestamps"`
	RepairedAmounts   int    `json:"repaired_amounts"`
}

func (e LedgerIngestedEvent) Type() EventType {
	return EventTypeLedgerIngested
}

// ReportGeneratedEvent is emitted for every report shown to a user, including re-filters
type ReportGeneratedEvent struct {
	UserID           string    `json:"user_id"`
	SessionID        string    `json:"session_id"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
	Rounds           int       `json:"rounds"`
	EligibleGames    int       `json:"eligible_games"`
	NonEligibleGames int       `json:"non_eligible_games"`
	TotalOverall     string    `json:"total_overall"`
	TotalEligible    string    `json:"total_eligible"`
	TotalNonEligible string    `json:"total_non_eligible"`
	Refilter         bool      `json:"refilter"`
}

func (e ReportGeneratedEvent) Type() EventType {
	return EventTypeReportGenerated
}

// Rejection reasons carried by ReportRejectedEvent
const (
	RejectReasonSchema      = "schema"
	RejectReasonInvalidTime = "invalid_time"
	RejectReasonEmptyResult = "empty_result"
	RejectReasonUpload      = "upload"
	RejectReasonInternal    = "internal"
)

// ReportRejectedEvent is emitted when a run stops before producing aggregates
type ReportRejectedEvent struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
}

func (e ReportRejectedEvent) Type() EventType {
	return EventTypeReportRejected
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
