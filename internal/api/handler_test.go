package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/service"
	"github.com/wager-duel-backend/internal/storage"
	"github.com/wager-duel-backend/pkg/logger"
)

// openValidator accepts any non-empty identity.
type openValidator struct{}

func (openValidator) Validate(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("address is empty")
	}
	return addr, nil
}

func newTestRouter() chi.Router {
	log := logger.New()
	store := storage.NewMemoryStorage()
	svc := service.NewGameService(store, openValidator{}, "", log)
	return NewHandler(svc, log).Routes()
}

func doRequest(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func startRequest(host, opponent string, move models.Move, amount uint64) models.StartGameRequest {
	return models.StartGameRequest{
		Host:     host,
		Opponent: opponent,
		HostMove: move,
		Wager:    models.Wager{{Denom: "TNT", Amount: models.NewAmount(amount)}},
	}
}

func TestHandler_Health(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandler_StartGame(t *testing.T) {
	t.Run("starts a game", func(t *testing.T) {
		router := newTestRouter()

		rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", "bob", models.MoveRock, 10))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var resp models.StartGameResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Operation != "start_game" {
			t.Errorf("operation = %q, want %q", resp.Operation, "start_game")
		}
		if resp.Host != "alice" || resp.Opponent != "bob" {
			t.Errorf("pair = %s vs %s, want alice vs bob", resp.Host, resp.Opponent)
		}
		if resp.HostWager != "10TNT " {
			t.Errorf("host_wager = %q, want %q", resp.HostWager, "10TNT ")
		}
		if resp.Game == nil || resp.Game.HostMove != models.MoveRock {
			t.Errorf("response is missing the stored session")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		router := newTestRouter()

		req := httptest.NewRequest(http.MethodPost, "/game/start", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects host playing themselves", func(t *testing.T) {
		router := newTestRouter()

		rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", "alice", models.MoveRock, 10))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		var resp models.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse error response: %v", err)
		}
		if resp.Error == "" {
			t.Errorf("error response has no error field")
		}
	})

	t.Run("rejects missing wager", func(t *testing.T) {
		router := newTestRouter()

		body := models.StartGameRequest{Host: "alice", Opponent: "bob", HostMove: models.MoveRock}
		rec := doRequest(t, router, http.MethodPost, "/game/start", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("conflicting game", func(t *testing.T) {
		router := newTestRouter()

		if rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", "bob", models.MoveRock, 10)); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}
		rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("bob", "alice", models.MovePaper, 10))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})
}

func TestHandler_OpponentResponse(t *testing.T) {
	t.Run("settles a tie", func(t *testing.T) {
		router := newTestRouter()

		if rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", "bob", models.MoveRock, 10)); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}

		body := models.RespondRequest{
			Host:     "alice",
			Opponent: "bob",
			OppMove:  models.MoveRock,
			Wager:    models.Wager{{Denom: "TNT", Amount: models.NewAmount(10)}},
		}
		rec := doRequest(t, router, http.MethodPost, "/game/respond", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp models.RespondResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if resp.Operation != "opponent_response" {
			t.Errorf("operation = %q, want %q", resp.Operation, "opponent_response")
		}
		if resp.Result != models.OutcomeTie {
			t.Errorf("result = %s, want tie", resp.Result)
		}
		if len(resp.Transfers) != 2 {
			t.Errorf("got %d transfers, want 2", len(resp.Transfers))
		}
		if resp.Leaderboard == nil || resp.Leaderboard.Ties != 1 {
			t.Errorf("leaderboard not updated: %+v", resp.Leaderboard)
		}

		// The settled game is gone
		if rec := doRequest(t, router, http.MethodGet, "/games/alice/bob", nil); rec.Code != http.StatusNotFound {
			t.Errorf("settled game still queryable: status = %d", rec.Code)
		}
	})

	t.Run("missing game", func(t *testing.T) {
		router := newTestRouter()

		body := models.RespondRequest{
			Host:     "alice",
			Opponent: "bob",
			OppMove:  models.MoveRock,
			Wager:    models.Wager{{Denom: "TNT", Amount: models.NewAmount(10)}},
		}
		rec := doRequest(t, router, http.MethodPost, "/game/respond", body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("mismatched wager", func(t *testing.T) {
		router := newTestRouter()

		if rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", "bob", models.MoveRock, 10)); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}

		body := models.RespondRequest{
			Host:     "alice",
			Opponent: "bob",
			OppMove:  models.MovePaper,
			Wager:    models.Wager{{Denom: "TNT", Amount: models.NewAmount(5)}},
		}
		rec := doRequest(t, router, http.MethodPost, "/game/respond", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestHandler_Queries(t *testing.T) {
	router := newTestRouter()

	for _, opponent := range []string{"carol", "bob"} {
		if rec := doRequest(t, router, http.MethodPost, "/game/start", startRequest("alice", opponent, models.MoveRock, 10)); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
		}
	}

	t.Run("single game", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/games/alice/bob", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.GetGamesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.Games) != 1 || resp.Games[0].Opponent != "bob" {
			t.Errorf("unexpected games: %+v", resp.Games)
		}
	})

	t.Run("games by host in opponent order", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/games/alice", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.GetGamesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.Games) != 2 {
			t.Fatalf("got %d games, want 2", len(resp.Games))
		}
		if resp.Games[0].Opponent != "bob" || resp.Games[1].Opponent != "carol" {
			t.Errorf("games out of order: %s, %s", resp.Games[0].Opponent, resp.Games[1].Opponent)
		}
	})

	t.Run("idle host", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/games/mallory", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.GetGamesResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.Games) != 0 {
			t.Errorf("got %d games, want 0", len(resp.Games))
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/games/alice/dave", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
