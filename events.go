package stablecoin

import (
	"context"
	"fmt"
	"strings"

	"github.com/tendermint/tendermint/libs/common"
)

// EventTagKey is the tag key that carries the name of an event. It is
// followed by one tag per event attribute.
const EventTagKey = "event"

// Event is a named notification of a state change. Events are collected
// while a transaction is processed and returned to the client as abci tags.
type Event struct {
	Name  string
	Attrs []common.KVPair
}

// NewEvent returns an event with no attributes.
func NewEvent(name string) Event {
	return Event{Name: name}
}

// With returns a copy of this event with an additional attribute.
func (e Event) With(key string, value interface{}) Event {
	attrs := make([]common.KVPair, len(e.Attrs), len(e.Attrs)+1)
	copy(attrs, e.Attrs)
	e.Attrs = append(attrs, common.KVPair{
		Key:   []byte(key),
		Value: []byte(formatAttr(value)),
	})
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

func formatAttr(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return fmt.Sprintf("%X", v)
	case []Address:
		parts := make([]string, len(v))
		for i, a := range v {
			parts[i] = a.String()
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Tags flattens the event into abci tags.
func (e Event) Tags() []common.KVPair {
	tags := make([]common.KVPair, 0, len(e.Attrs)+1)
	tags = append(tags, common.KVPair{Key: []byte(EventTagKey), Value: []byte(e.Name)})
	return append(tags, e.Attrs...)
}

// EventLog collects events in emission order.
type EventLog struct {
	events []Event
}

// Emit appends an event to the log.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Events returns all collected events.
func (l *EventLog) Events() []Event {
	return l.events
}

// Tags returns all collected events flattened into abci tags.
func (l *EventLog) Tags() []common.KVPair {
	var tags []common.KVPair
	for _, e := range l.events {
		tags = append(tags, e.Tags()...)
	}
	return tags
}

// WithEvents returns a context that collects all events emitted through it
// into the returned log.
func WithEvents(ctx Context) (Context, *EventLog) {
	log := &EventLog{}
	return context.WithValue(ctx, contextKeyEvents, log), log
}

// EmitEvent records an event in the log attached to the context. Without a
// log the event is dropped.
func EmitEvent(ctx Context, e Event) {
	if log, ok := ctx.Value(contextKeyEvents).(*EventLog); ok {
		log.Emit(e)
	}
}
