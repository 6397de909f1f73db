package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"htmx-tictactoe/events"
	"htmx-tictactoe/game"
	"htmx-tictactoe/models"
	"htmx-tictactoe/templates"
)

const EventUpdate = "update"

// Handlers serves the game pages and the htmx API for one store.
type Handlers struct {
	logger    *slog.Logger
	store     game.Store
	hub       *events.Hub
	tpl       *templates.Set
	locks     *keyedMutex
	heartbeat time.Duration
}

func New(logger *slog.Logger, store game.Store, hub *events.Hub, tpl *templates.Set, heartbeat time.Duration) *Handlers {
	return &Handlers{
		logger:    logger.With("component", "handlers"),
		store:     store,
		hub:       hub,
		tpl:       tpl,
		locks:     newKeyedMutex(),
		heartbeat: heartbeat,
	}
}

func (h *Handlers) HomeHandler(c *gin.Context) {
	c.HTML(http.StatusOK, templates.HomePage, gin.H{
		"Title": "Tic-Tac-Toe",
	})
}

func (h *Handlers) NewGameHandler(c *gin.Context) {
	ctrl, err := game.CreateGame(c.Request.Context(), h.store)
	if err != nil {
		h.logger.Error("failed to create game", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create game"})
		return
	}

	h.logger.Info("game created", "gameID", ctrl.ID())
	c.Redirect(http.StatusSeeOther, "/game/"+ctrl.ID())
}

func (h *Handlers) GamePageHandler(c *gin.Context) {
	gameID := c.Param("id")

	ctrl, err := game.LoadGame(c.Request.Context(), h.store, gameID)
	if errors.Is(err, game.ErrGameNotFound) {
		c.HTML(http.StatusNotFound, templates.NotFoundPage, gin.H{
			"Title": "Game Not Found",
		})
		return
	}
	if err != nil {
		h.logger.Error("failed to load game", "gameID", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load game"})
		return
	}

	c.HTML(http.StatusOK, templates.GamePage, gin.H{
		"Title": "Tic-Tac-Toe Game",
		"View":  ctrl.View(),
	})
}

// GameMoveHandler handles a click on square :index.
func (h *Handlers) GameMoveHandler(c *gin.Context) {
	if !requireHTMX(c) {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= models.BoardSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cell"})
		return
	}

	h.mutate(c, func(ctrl *game.Controller) (bool, error) {
		return ctrl.MakeMove(index)
	})
}

// GameJumpHandler handles a click on a move list entry.
func (h *Handlers) GameJumpHandler(c *gin.Context) {
	if !requireHTMX(c) {
		return
	}

	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step"})
		return
	}

	h.mutate(c, func(ctrl *game.Controller) (bool, error) {
		if err := ctrl.JumpTo(step); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (h *Handlers) GameSortHandler(c *gin.Context) {
	if !requireHTMX(c) {
		return
	}

	h.mutate(c, func(ctrl *game.Controller) (bool, error) {
		ctrl.ToggleSort()
		return true, nil
	})
}

// GameStateHandler returns the view as JSON.
func (h *Handlers) GameStateHandler(c *gin.Context) {
	ctrl, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.View())
}

func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mutate runs one state transition to completion: load, apply, save, broadcast,
// render. Transitions on the same game never interleave.
func (h *Handlers) mutate(c *gin.Context, apply func(ctrl *game.Controller) (bool, error)) {
	gameID := c.Param("id")

	unlock := h.locks.Lock(gameID)
	defer unlock()

	ctrl, ok := h.load(c)
	if !ok {
		return
	}

	changed, err := apply(ctrl)
	switch {
	case errors.Is(err, game.ErrInvalidCell):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cell"})
		return
	case errors.Is(err, game.ErrStepOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step"})
		return
	case err != nil:
		h.logger.Error("failed to apply action", "gameID", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update game"})
		return
	}

	view := ctrl.View()
	if changed {
		if err = h.store.Save(c.Request.Context(), ctrl.Snapshot()); err != nil {
			h.logger.Error("failed to save game", "gameID", gameID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save game"})
			return
		}
		h.broadcast(view)
	}

	renderGame(c, view)
}

func (h *Handlers) load(c *gin.Context) (*game.Controller, bool) {
	gameID := c.Param("id")

	ctrl, err := game.LoadGame(c.Request.Context(), h.store, gameID)
	if errors.Is(err, game.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load game", "gameID", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load game"})
		return nil, false
	}
	return ctrl, true
}

func (h *Handlers) broadcast(view game.View) {
	fragment, err := h.tpl.RenderFragment(view)
	if err != nil {
		h.logger.Error("failed to render update", "gameID", view.ID, "error", err)
		return
	}

	delivered := h.hub.Broadcast(view.ID, models.GameEvent{
		Type:   EventUpdate,
		GameID: view.ID,
		Data:   fragment,
	})
	h.logger.Debug("update broadcast", "gameID", view.ID, "step", view.Step, "subscribers", delivered)
}

func renderGame(c *gin.Context, view game.View) {
	c.HTML(http.StatusOK, templates.GameFragment, view)
}

func requireHTMX(c *gin.Context) bool {
	if c.GetHeader("HX-Request") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "HTMX request required"})
		return false
	}
	return true
}
