package events

import (
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", core.White, ""))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	assert.False(t, receivedEvent.Timestamp().IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypeTurnPassed, func(e Event) {
		handler1Called = true
	})
	id2 := bus.SubscribeFunc(TypeTurnPassed, func(e Event) {
		handler2Called = true
	})

	bus.Publish(NewTurnPassedEvent("test-game", 3, core.Black))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.NotEqual(t, id1, id2)

	handler1Called, handler2Called = false, false
	assert.True(t, bus.Unsubscribe(id1))
	assert.False(t, bus.Unsubscribe(id1), "already removed")
	bus.Publish(NewTurnPassedEvent("test-game", 4, core.White))

	assert.False(t, handler1Called)
	assert.True(t, handler2Called)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		pattern   string
		eventType string
		expected  bool
	}{
		{TypeMoveExecuted, TypeMoveExecuted, true},
		{TypeMoveExecuted, TypePieceCaptured, false},
		{MatchAll, TypeStateTransition, true},
		{"powerup", TypePowerUpSpawned, true},
		{"powerup", TypePowerUpUsed, true},
		{"powerup", TypeTrapTriggered, false},
		{"king", TypeKingRelocated, true},
		{"piece", TypeKingInCheck, false},
		{"power", TypePowerUpUsed, false},
		{"shrink.warn", TypeShrinkWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.eventType, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.pattern, tt.eventType))
		})
	}
}

func TestEventBus_TopicAndWildcardHandlers(t *testing.T) {
	bus := NewEventBus()
	var topic, all []string

	bus.SubscribeFunc("shrink", func(e Event) { topic = append(topic, e.Type()) })
	bus.SubscribeFunc(MatchAll, func(e Event) { all = append(all, e.Type()) })

	bus.PublishAll([]Event{
		NewShrinkWarningEvent("g", 40, nil, 1, 5),
		NewKingInCheckEvent("g", 41, core.White),
		NewSquaresShrunkEvent("g", 45, nil),
	})

	assert.Equal(t, []string{TypeShrinkWarning, TypeSquaresShrunk}, topic)
	assert.Equal(t, []string{TypeShrinkWarning, TypeKingInCheck, TypeSquaresShrunk}, all)
}

func TestEventBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string

	for _, id := range []string{"c", "a", "b"} {
		bus.Subscribe(&orderedSubscriber{id: id, order: &order})
	}
	bus.SubscribeFunc(MatchAll, func(Event) { order = append(order, "func") })
	// re-subscribing keeps the original slot
	bus.Subscribe(&orderedSubscriber{id: "c", order: &order})

	bus.Publish(NewTurnPassedEvent("g", 1, core.White))

	assert.Equal(t, []string{"c", "a", "b", "func"}, order)
}

func TestEventBus_HandlerMaySubscribeDuringPublish(t *testing.T) {
	bus := NewEventBus()
	late := 0

	bus.SubscribeFunc(TypeGameStarted, func(Event) {
		bus.SubscribeFunc(TypeGameStarted, func(Event) { late++ })
	})

	bus.Publish(NewGameStartedEvent("g", core.White, ""))
	assert.Zero(t, late, "a handler added mid-publish waits for the next event")

	bus.Publish(NewGameStartedEvent("g", core.White, ""))
	assert.Equal(t, 1, late)
}

type orderedSubscriber struct {
	id    string
	order *[]string
}

func (o *orderedSubscriber) ID() string               { return o.id }
func (o *orderedSubscriber) InterestedIn(string) bool { return true }
func (o *orderedSubscriber) HandleEvent(Event)        { *o.order = append(*o.order, o.id) }

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
		receivedEvents: []Event{},
	}

	bus.Subscribe(subscriber)

	bus.Publish(NewGameStartedEvent("test-game", core.White, ""))
	bus.Publish(NewTurnPassedEvent("test-game", 1, core.White))
	bus.Publish(NewGameEndedEvent("test-game", "white", "checkmate", 40))

	// Should only receive GameStarted and GameEnded
	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	assert.True(t, bus.Unsubscribe(subscriber.ID()))
	bus.Publish(NewGameStartedEvent("test-game", core.White, ""))

	assert.Len(t, subscriber.receivedEvents, 2)
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panics" }
func (panickingSubscriber) InterestedIn(string) bool { return true }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }

func TestEventBus_PanickingSubscriberDoesNotBreakOthers(t *testing.T) {
	bus := NewEventBus()
	good := &TestSubscriber{id: "good"}

	bus.Subscribe(panickingSubscriber{})
	bus.Subscribe(good)
	bus.SubscribeFunc(TypeKingInCheck, func(Event) { panic("handler boom") })

	assert.NotPanics(t, func() {
		bus.Publish(NewKingInCheckEvent("g", 5, core.Black))
	})
	assert.Len(t, good.receivedEvents, 1)
}

func TestEventBus_PublishAllKeepsOrder(t *testing.T) {
	bus := NewEventBus()
	sub := &TestSubscriber{id: "order"}
	bus.Subscribe(sub)

	m := core.Move{From: core.NewPosition(6, 4), To: core.NewPosition(4, 4)}
	batch := []Event{
		NewMoveExecutedEvent("g", 1, m),
		NewKingInCheckEvent("g", 1, core.Black),
		NewSquaresShrunkEvent("g", 1, []core.Position{core.NewPosition(0, 0)}),
	}
	bus.PublishAll(batch)

	require.Len(t, sub.receivedEvents, 3)
	for i, e := range batch {
		assert.Equal(t, e.Type(), sub.receivedEvents[i].Type())
	}
}

func TestNotificationFor(t *testing.T) {
	tests := []struct {
		eventType string
		expected  string
		ok        bool
	}{
		{TypeMoveExecuted, NotifyMove, true},
		{TypePieceCaptured, NotifyCapture, true},
		{TypePieceEliminated, NotifyCapture, true},
		{TypeKingInCheck, NotifyCheck, true},
		{TypeShrinkWarning, NotifyWarning, true},
		{TypeSquaresShrunk, NotifyShrink, true},
		{TypeGameEnded, NotifyGameOver, true},
		{TypeStateTransition, "", false},
		{TypePowerUpSpawned, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			name, ok := NotificationFor(tt.eventType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, name)
		})
	}
}
