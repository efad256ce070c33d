package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/rs/zerolog"
)

// NotifierSubscriber forwards game events to a Notifier on its own goroutine.
// HandleEvent never blocks: when the buffer is full the notification is dropped.
type NotifierSubscriber struct {
	id       string
	notifier events.Notifier
	queue    chan string
	logger   zerolog.Logger

	mu      sync.Mutex
	closed  bool
	dropped int
	done    chan struct{}
}

// NewNotifierSubscriber creates the subscriber and starts its delivery goroutine.
// Call Close to stop it.
func NewNotifierSubscriber(id string, notifier events.Notifier, bufferSize int, logger zerolog.Logger) *NotifierSubscriber {
	if bufferSize < 1 {
		bufferSize = 1
	}
	ns := &NotifierSubscriber{
		id:       id,
		notifier: notifier,
		queue:    make(chan string, bufferSize),
		logger:   logger.With().Str("subscriber", "notifier").Logger(),
		done:     make(chan struct{}),
	}
	go ns.run()
	return ns
}

// ID returns the subscriber's unique identifier
func (ns *NotifierSubscriber) ID() string {
	return ns.id
}

// InterestedIn returns true for event types that map to a notification
func (ns *NotifierSubscriber) InterestedIn(eventType string) bool {
	_, ok := events.NotificationFor(eventType)
	return ok
}

// HandleEvent queues the event's notification without waiting for delivery
func (ns *NotifierSubscriber) HandleEvent(event events.Event) {
	name, ok := events.NotificationFor(event.Type())
	if !ok {
		return
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()
	if ns.closed {
		return
	}
	select {
	case ns.queue <- name:
	default:
		ns.dropped++
		ns.logger.Debug().Str("notification", name).Int("dropped", ns.dropped).Msg("Notification buffer full, dropping")
	}
}

// Dropped returns how many notifications were discarded because the buffer was full
func (ns *NotifierSubscriber) Dropped() int {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.dropped
}

// Close stops accepting notifications and waits for queued ones to be delivered
func (ns *NotifierSubscriber) Close() {
	ns.mu.Lock()
	if ns.closed {
		ns.mu.Unlock()
		return
	}
	ns.closed = true
	close(ns.queue)
	ns.mu.Unlock()
	<-ns.done
}

func (ns *NotifierSubscriber) run() {
	defer close(ns.done)
	for name := range ns.queue {
		ns.deliver(name)
	}
}

func (ns *NotifierSubscriber) deliver(name string) {
	defer func() {
		if r := recover(); r != nil {
			ns.logger.Error().Str("notification", name).Interface("panic", r).Msg("Notifier panicked")
		}
	}()
	ns.notifier.Notify(name)
}
