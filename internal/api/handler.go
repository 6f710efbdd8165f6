package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/service"
	"github.com/wager-duel-backend/pkg/logger"
)

// Handler holds all HTTP handlers
type Handler struct {
	gameService *service.GameService
	logger      *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(gameService *service.GameService, logger *logger.Logger) *Handler {
	return &Handler{
		gameService: gameService,
		logger:      logger,
	}
}

// Routes sets up all routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Health check
	r.Get("/health", h.Health)

	// Commands
	r.Route("/game", func(r chi.Router) {
		r.Post("/start", h.StartGame)
		r.Post("/respond", h.OpponentResponse)
	})

	// Queries
	r.Route("/games", func(r chi.Router) {
		r.Get("/{host}", h.GamesByHost)
		r.Get("/{host}/{opponent}", h.GameByHostAndOpponent)
	})

	return r
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StartGame handles POST /game/start
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req models.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	requestID := GetRequestID(r.Context())
	h.logger.Info("Starting game",
		logger.F("host", req.Host),
		logger.F("opponent", req.Opponent),
		logger.F("request_id", requestID))

	game, err := h.gameService.StartGame(r.Context(), req.Host, req.Opponent, req.HostMove, req.Wager)
	if err != nil {
		h.logger.Error("Failed to start game",
			logger.F("error", err.Error()),
			logger.F("request_id", requestID))
		h.respondError(w, statusFor(err), "failed to start game", err.Error())
		return
	}

	resp := models.StartGameResponse{
		Operation: "start_game",
		Host:      game.Host,
		Opponent:  game.Opponent,
		HostWager: game.HostWager.String(),
		Game:      game,
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

// OpponentResponse handles POST /game/respond
func (h *Handler) OpponentResponse(w http.ResponseWriter, r *http.Request) {
	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	requestID := GetRequestID(r.Context())
	h.logger.Info("Settling game",
		logger.F("host", req.Host),
		logger.F("opponent", req.Opponent),
		logger.F("request_id", requestID))

	settlement, err := h.gameService.Respond(r.Context(), req.Host, req.Opponent, req.OppMove, req.Wager)
	if err != nil {
		h.logger.Error("Failed to settle game",
			logger.F("error", err.Error()),
			logger.F("request_id", requestID))
		h.respondError(w, statusFor(err), "failed to settle game", err.Error())
		return
	}

	resp := models.RespondResponse{
		Operation:   "opponent_response",
		Host:        req.Host,
		Opponent:    req.Opponent,
		Result:      settlement.Result,
		Transfers:   settlement.Transfers,
		Leaderboard: settlement.Ledger,
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GameByHostAndOpponent handles GET /games/{host}/{opponent}
func (h *Handler) GameByHostAndOpponent(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")
	opponent := chi.URLParam(r, "opponent")

	game, err := h.gameService.GetGame(r.Context(), host, opponent)
	if err != nil {
		h.respondError(w, statusFor(err), "failed to get game", err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, models.GetGamesResponse{
		Games: []*models.GameSession{game},
	})
}

// GamesByHost handles GET /games/{host}
func (h *Handler) GamesByHost(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")

	games, err := h.gameService.ListGamesByHost(r.Context(), host)
	if err != nil {
		h.respondError(w, statusFor(err), "failed to list games", err.Error())
		return
	}

	if games == nil {
		games = []*models.GameSession{}
	}
	h.respondJSON(w, http.StatusOK, models.GetGamesResponse{Games: games})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidMove),
		errors.Is(err, service.ErrInvalidIdentity),
		errors.Is(err, service.ErrSameIdentity),
		errors.Is(err, service.ErrMissingWager),
		errors.Is(err, service.ErrWagerMismatch):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrGameActive):
		return http.StatusConflict
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *Handler) respondError(w http.ResponseWriter, status int, errorMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   errorMsg,
		Message: message,
	})
}
