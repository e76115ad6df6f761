package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType tags the payload variant carried by an Event.
type EventType string

const (
	TypeHouseRegistered                    EventType = "HouseRegistered"
	TypeWifiSignalCaptured                 EventType = "WifiSignalCaptured"
	TypeRoomPerformanceCalculated          EventType = "RoomPerformanceCalculated"
	TypePerformanceRecommendationGenerated EventType = "PerformanceRecommendationGenerated"
)

// Payload is implemented by every event variant.
// The house id carried by the payload is the aggregate key of the event.
type Payload interface {
	EventType() EventType
	AggregateID() string
}

// Event is an immutable fact about a house.
// It separates the "Envelope" (System Attributes) from the "Letter" (Payload).
type Event struct {
	// --- System Attributes (The Envelope) ---

	// ID is generated once at construction and never changes.
	ID string `json:"event_id"`

	// Type is derived from the payload variant.
	Type EventType `json:"event_type"`

	// AggregateID is the house_id read out of the payload.
	// It is the sole join key between events about the same house.
	AggregateID string `json:"aggregate_id"`

	// Timestamp is the UTC creation time. Non-decreasing within one producer only.
	Timestamp time.Time `json:"timestamp"`

	// --- Domain Payload (The Letter) ---
	Payload Payload `json:"payload"`
}

// New wraps a payload in a fully populated envelope.
// The returned event has its id, type, aggregate key and timestamp set in one step.
func New(p Payload) *Event {
	return newEvent(p, uuid.NewString(), time.Now().UTC())
}

func newEvent(p Payload, id string, ts time.Time) *Event {
	return &Event{
		ID:          id,
		Type:        p.EventType(),
		AggregateID: p.AggregateID(),
		Timestamp:   ts,
		Payload:     p,
	}
}

// Validate ensures the envelope is consistent with its payload.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event_id is required")
	}
	if e.Payload == nil {
		return fmt.Errorf("payload is required")
	}
	if e.Type != e.Payload.EventType() {
		return fmt.Errorf("event_type %q does not match payload type %q", e.Type, e.Payload.EventType())
	}
	if e.AggregateID == "" {
		return fmt.Errorf("aggregate_id is required")
	}
	if e.AggregateID != e.Payload.AggregateID() {
		return fmt.Errorf("aggregate_id %q does not match payload house_id %q", e.AggregateID, e.Payload.AggregateID())
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// Record is the storage representation of an Event.
// Payload holds only the variant fields; envelope fields live beside it.
type Record struct {
	EventID     string
	EventType   EventType
	AggregateID string
	Timestamp   time.Time
	Payload     json.RawMessage
}

// Record splits the event into envelope columns and a payload document.
func (e *Event) Record() (Record, error) {
	if err := e.Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid event envelope: %w", err)
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return Record{
		EventID:     e.ID,
		EventType:   e.Type,
		AggregateID: e.AggregateID,
		Timestamp:   e.Timestamp.UTC(),
		Payload:     payload,
	}, nil
}

var decoders = map[EventType]func(json.RawMessage) (Payload, error){
	TypeHouseRegistered:                    decodeAs[HouseRegistered],
	TypeWifiSignalCaptured:                 decodeAs[WifiSignalCaptured],
	TypeRoomPerformanceCalculated:          decodeAs[RoomPerformanceCalculated],
	TypePerformanceRecommendationGenerated: decodeAs[PerformanceRecommendationGenerated],
}

func decodeAs[T Payload](raw json.RawMessage) (Payload, error) {
	var p T
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode rebuilds an Event from its storage representation.
func Decode(r Record) (*Event, error) {
	decode, ok := decoders[r.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", r.EventType)
	}

	payload, err := decode(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", r.EventType, err)
	}

	evt := &Event{
		ID:          r.EventID,
		Type:        r.EventType,
		AggregateID: r.AggregateID,
		Timestamp:   r.Timestamp.UTC(),
		Payload:     payload,
	}
	if err := evt.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt event %s: %w", r.EventID, err)
	}
	return evt, nil
}
