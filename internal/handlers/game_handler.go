package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"prizeladder/internal/game"
	"prizeladder/internal/models"
	"prizeladder/internal/service"
)

const defaultHistoryLimit = 20

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type answerRequest struct {
	Key string `json:"key"`
}

// Create starts a new game for the authenticated player
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	g, err := h.gameService.StartGame(user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameInProgress):
			respondWithError(w, http.StatusConflict, "A game is already in progress", "", nil)
		case errors.Is(err, game.ErrInsufficientContent):
			respondWithError(w, http.StatusServiceUnavailable, "Not enough questions to build a game", "question bank too small", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to start game", "start game error", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, buildGameView(g, h.gameService.Plan()))
}

// Current returns the open game's state
func (h *GameHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	g, err := h.gameService.CurrentGame(r.Context(), user.ID)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildGameView(g, h.gameService.Plan()))
}

// Answer scores an option letter against the open game
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if !slices.Contains(models.AnswerKeys, req.Key) {
		respondWithError(w, http.StatusBadRequest, "Answer key must be one of a, b, c, d", "", nil)
		return
	}

	g, err := h.gameService.Answer(r.Context(), user.ID, req.Key)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildGameView(g, h.gameService.Plan()))
}

// TakeMoney ends the open game banking the current prize
func (h *GameHandler) TakeMoney(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	g, err := h.gameService.TakeMoney(r.Context(), user.ID)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildGameView(g, h.gameService.Plan()))
}

// UseHelp applies the lifeline named in the path to the open game
func (h *GameHandler) UseHelp(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	kind := models.HelpKind(r.PathValue("kind"))
	if !kind.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown lifeline", "", nil)
		return
	}

	g, err := h.gameService.UseHelp(r.Context(), user.ID, kind)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildGameView(g, h.gameService.Plan()))
}

// History returns the player's most recent games
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100", "", nil)
			return
		}
		limit = parsed
	}

	games, err := h.gameService.History(user.ID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load history", "history error", err)
		return
	}

	writeJSON(w, http.StatusOK, buildGameSummaries(games))
}

// PrizeLadder returns the prize plan so clients can render the ladder
// before a game starts
func (h *GameHandler) PrizeLadder(w http.ResponseWriter, r *http.Request) {
	plan := h.gameService.Plan()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prizes":           plan.Prizes[:],
		"fireproof_levels": plan.Fireproof,
	})
}

func (h *GameHandler) respondGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveGame):
		respondWithError(w, http.StatusNotFound, "No game in progress", "", nil)
	case errors.Is(err, game.ErrGameFinished):
		respondWithError(w, http.StatusConflict, "The game has already finished", "", nil)
	case errors.Is(err, game.ErrHelpAlreadyUsed):
		respondWithError(w, http.StatusConflict, "This lifeline was already used", "", nil)
	case errors.Is(err, game.ErrUnknownHelp):
		respondWithError(w, http.StatusBadRequest, "Unknown lifeline", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Game operation failed", "game error", err)
	}
}
