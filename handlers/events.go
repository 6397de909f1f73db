package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"htmx-tictactoe/game"
	"htmx-tictactoe/models"
)

// GameSSEHandler streams rendered game fragments to every tab watching the game.
func (h *Handlers) GameSSEHandler(c *gin.Context) {
	gameID := c.Param("id")

	ctrl, err := game.LoadGame(c.Request.Context(), h.store, gameID)
	if errors.Is(err, game.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load game", "gameID", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load game"})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	subscriber := h.hub.Subscribe(ctx, gameID)
	defer h.hub.Unsubscribe(subscriber)

	log := h.logger.With("gameID", gameID, "subscriber", subscriber.ID)
	log.Debug("sse subscriber connected")

	// Send initial game state
	fragment, err := h.tpl.RenderFragment(ctrl.View())
	if err != nil {
		log.Error("failed to render initial state", "error", err)
		return
	}
	sendSSEEvent(c, models.GameEvent{Type: EventUpdate, GameID: gameID, Data: fragment})

	heartbeat := h.heartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("sse subscriber disconnected")
			return
		case <-ticker.C:
			_, _ = io.WriteString(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		case event, ok := <-subscriber.Channel:
			if !ok {
				return
			}
			sendSSEEvent(c, event)
		}
	}
}

func sendSSEEvent(c *gin.Context, event models.GameEvent) {
	c.SSEvent(event.Type, event.Data)
	c.Writer.Flush()
}
