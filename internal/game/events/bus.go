package events

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MatchAll is the pattern that matches every event type
const MatchAll = "*"

// Matches reports whether eventType falls under pattern. A pattern is an exact
// event type, a topic such as "powerup" covering every "powerup.*" type, or MatchAll.
func Matches(pattern, eventType string) bool {
	if pattern == MatchAll || pattern == eventType {
		return true
	}
	return !strings.Contains(pattern, ".") && strings.HasPrefix(eventType, pattern+".")
}

type registration struct {
	id         string
	pattern    string
	subscriber Subscriber
	handler    EventHandler
}

func (r registration) wants(eventType string) bool {
	if r.subscriber != nil {
		return r.subscriber.InterestedIn(eventType)
	}
	return Matches(r.pattern, eventType)
}

// EventBus is a synchronous event bus. Handlers run in the order they subscribed.
type EventBus struct {
	registrations []registration
	nextFunc      int
	mu            sync.RWMutex
	logger        zerolog.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return &EventBus{
		logger: log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber to the event bus. A subscriber with the same ID
// replaces the earlier one in its original position.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	reg := registration{id: subscriber.ID(), subscriber: subscriber}
	if i := eb.indexLocked(reg.id); i >= 0 {
		eb.registrations[i] = reg
	} else {
		eb.registrations = append(eb.registrations, reg)
	}
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// SubscribeFunc adds a function handler for every event type matching pattern and
// returns an ID that can be passed to Unsubscribe
func (eb *EventBus) SubscribeFunc(pattern string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFunc++
	handlerID := pattern + "#" + strconv.Itoa(eb.nextFunc)
	eb.registrations = append(eb.registrations, registration{id: handlerID, pattern: pattern, handler: handler})
	eb.logger.Debug().
		Str("pattern", pattern).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// Unsubscribe removes a subscriber or function handler by ID. It reports whether
// anything was removed.
func (eb *EventBus) Unsubscribe(id string) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	i := eb.indexLocked(id)
	if i < 0 {
		return false
	}
	eb.registrations = append(eb.registrations[:i], eb.registrations[i+1:]...)
	eb.logger.Debug().
		Str("subscriber_id", id).
		Msg("Subscriber removed from event bus")
	return true
}

func (eb *EventBus) indexLocked(id string) int {
	for i, r := range eb.registrations {
		if r.id == id {
			return i
		}
	}
	return -1
}

// Publish sends an event to all interested handlers synchronously. Handlers may
// subscribe or unsubscribe while being called; the change applies to the next event.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	targets := make([]registration, 0, len(eb.registrations))
	for _, r := range eb.registrations {
		if r.wants(eventType) {
			targets = append(targets, r)
		}
	}
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Int("handlers", len(targets)).
		Msg("Publishing event")

	for _, r := range targets {
		eb.deliver(r, event)
	}
}

// deliver runs one handler, catching panics so one handler cannot break the others
func (eb *EventBus) deliver(r registration, event Event) {
	defer func() {
		if p := recover(); p != nil {
			eb.logger.Error().
				Str("subscriber_id", r.id).
				Str("event_type", event.Type()).
				Interface("panic", p).
				Msg("Subscriber panicked while handling event")
		}
	}()
	if r.subscriber != nil {
		r.subscriber.HandleEvent(event)
		return
	}
	r.handler(event)
}

// PublishAll publishes a batch of events in order. The reducer collects events on the
// game state and the session flushes them here after each transition.
func (eb *EventBus) PublishAll(evts []Event) {
	for _, e := range evts {
		eb.Publish(e)
	}
}
