package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"htmx-tictactoe/models"
)

const subscriberBuffer = 10

// Hub tracks the SSE subscribers of every game.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]*models.GameSubscriber
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string][]*models.GameSubscriber)}
}

// Subscribe creates and registers a new subscriber for a game. The subscriber is
// removed once ctx is done.
func (h *Hub) Subscribe(ctx context.Context, gameID string) *models.GameSubscriber {
	subscriber := &models.GameSubscriber{
		ID:      uuid.NewString(),
		GameID:  gameID,
		Channel: make(chan models.GameEvent, subscriberBuffer),
		Context: ctx,
	}

	h.mu.Lock()
	h.subscribers[gameID] = append(h.subscribers[gameID], subscriber)
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.Unsubscribe(subscriber)
	}()

	return subscriber
}

// Unsubscribe removes a subscriber and closes its channel. Calling it twice is safe.
func (h *Hub) Unsubscribe(subscriber *models.GameSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, exists := h.subscribers[subscriber.GameID]
	if !exists {
		return
	}

	for i, sub := range subscribers {
		if sub.ID == subscriber.ID {
			h.subscribers[subscriber.GameID] = append(subscribers[:i:i], subscribers[i+1:]...)
			close(sub.Channel)
			break
		}
	}

	if len(h.subscribers[subscriber.GameID]) == 0 {
		delete(h.subscribers, subscriber.GameID)
	}
}

// Broadcast sends an event to all subscribers of a game. Subscribers whose buffer
// is full miss the event.
func (h *Hub) Broadcast(gameID string, event models.GameEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, subscriber := range h.subscribers[gameID] {
		select {
		case subscriber.Channel <- event:
			delivered++
		default:
			// Channel full, skip this subscriber
		}
	}
	return delivered
}

// Count returns the number of live subscribers for a game.
func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[gameID])
}
