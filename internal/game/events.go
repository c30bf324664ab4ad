package game

import (
	"fmt"
	"strings"
	"time"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart           EventType = "game_start"
	EventTypeDeclarationAccepted EventType = "declaration_accepted"
	EventTypeDeclarationRejected EventType = "declaration_rejected"
	EventTypeFieldRefilled       EventType = "field_refilled"
	EventTypeGameFinished        EventType = "game_finished"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the first twelve cards are dealt
type GameStartEvent struct {
	GameID    string
	Players   [2]string
	Field     string
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// DeclarationEvent is published for every declaration, successful or not
type DeclarationEvent struct {
	Player    int
	Name      string
	Positions [3]Pos
	Cards     [3]string
	Accepted  bool
	Score     int
	Penalty   int
	timestamp time.Time
}

func (e DeclarationEvent) EventType() EventType {
	if e.Accepted {
		return EventTypeDeclarationAccepted
	}
	return EventTypeDeclarationRejected
}
func (e DeclarationEvent) Timestamp() time.Time { return e.timestamp }

// FieldRefilledEvent is published after vacated slots have been dealt again
type FieldRefilledEvent struct {
	Refill    RefillResult
	Cards     [3]string
	timestamp time.Time
}

func (e FieldRefilledEvent) EventType() EventType { return EventTypeFieldRefilled }
func (e FieldRefilledEvent) Timestamp() time.Time { return e.timestamp }

// GameFinishedEvent is published when no SET remains among the cards left
type GameFinishedEvent struct {
	GameID    string
	Result    Result
	Players   [2]Player
	Elapsed   time.Duration
	timestamp time.Time
}

func (e GameFinishedEvent) EventType() EventType { return EventTypeGameFinished }
func (e GameFinishedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to the EventSubscriber interface
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers. Subscribers run while the game
// holds its lock and must not call back into the Game.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatEvent renders an event as a single human-readable log line
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return fmt.Sprintf("Game %s: %s vs %s", e.GameID, e.Players[0], e.Players[1])
	case DeclarationEvent:
		if e.Accepted {
			return fmt.Sprintf("%s: SET! %s (score %d)", e.Name, formatTriple(e.Positions, e.Cards), e.Score)
		}
		return fmt.Sprintf("%s: not a SET %s (penalty %d)", e.Name, formatTriple(e.Positions, e.Cards), e.Penalty)
	case FieldRefilledEvent:
		if e.Refill.Ragged {
			return "Deck is running out, the field was not refilled"
		}
		return fmt.Sprintf("Dealt %s after %d draw(s)", strings.Join(e.Cards[:], " "), e.Refill.Attempts)
	case GameFinishedEvent:
		return fmt.Sprintf("Game over after %s: %s (%s %d, %s %d)",
			e.Elapsed.Round(time.Second), e.Result,
			e.Players[0].Name, e.Players[0].Net(),
			e.Players[1].Name, e.Players[1].Net())
	default:
		return string(event.EventType())
	}
}

func formatTriple(positions [3]Pos, cards [3]string) string {
	parts := make([]string, len(positions))
	for i := range positions {
		parts[i] = positions[i].String() + " " + cards[i]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
