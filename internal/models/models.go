package models

import "fmt"

// Move is a player's move
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Validate checks that the move is one of the three known moves
func (m Move) Validate() error {
	switch m {
	case MoveRock, MovePaper, MoveScissors:
		return nil
	}
	return fmt.Errorf("invalid move %q", string(m))
}

// Outcome is the resolved result of a game, relative to the host
type Outcome string

const (
	OutcomeHostWins Outcome = "host_wins"
	OutcomeOppWins  Outcome = "opponent_wins"
	OutcomeTie      Outcome = "tie"
)

// GameSession represents one pending wager match between two players.
// The host started the game; the opponent-side fields stay empty until
// the opponent responds, at which point the session is settled and
// removed from storage.
type GameSession struct {
	Host      string  `json:"host"`
	Opponent  string  `json:"opponent"`
	HostWager Wager   `json:"host_wager"`
	OppWager  Wager   `json:"opp_wager,omitempty"`
	HostMove  Move    `json:"host_move"`
	OppMove   Move    `json:"opp_move,omitempty"`
	Result    Outcome `json:"result,omitempty"`
}

// Ledger is the cumulative win/loss/tie tally for an unordered pair of
// players. PlayerA is always the lexicographically smaller identity so
// each pair has exactly one row no matter who hosted which game.
type Ledger struct {
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
	WinsA   uint64 `json:"wins_a"`
	WinsB   uint64 `json:"wins_b"`
	Ties    uint64 `json:"ties"`
}

// NewLedger creates a zeroed ledger for a pair of players, in canonical
// order.
func NewLedger(a, b string) *Ledger {
	a, b = SortPair(a, b)
	return &Ledger{PlayerA: a, PlayerB: b}
}

// SortPair returns the two identities in lexicographic order.
func SortPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// TransferInstruction tells the host environment to send funds to a
// player. The backend only computes instructions; it never moves funds.
type TransferInstruction struct {
	To     string `json:"to"`
	Amount Wager  `json:"amount"`
}

// SettlementResult is everything produced by settling a game: the
// outcome, the fund transfers for the host environment to execute, and
// the updated leaderboard row.
type SettlementResult struct {
	Result    Outcome               `json:"result"`
	Transfers []TransferInstruction `json:"transfers"`
	Ledger    *Ledger               `json:"leaderboard"`
}

// StartGameRequest represents the request to start a game
type StartGameRequest struct {
	Host     string `json:"host"`
	Opponent string `json:"opponent"`
	HostMove Move   `json:"host_move"`
	Wager    Wager  `json:"wager"`
}

// StartGameResponse represents the response when starting a game
type StartGameResponse struct {
	Operation string       `json:"operation"`
	Host      string       `json:"host"`
	Opponent  string       `json:"opponent"`
	HostWager string       `json:"host_wager"`
	Game      *GameSession `json:"game"`
}

// RespondRequest represents the opponent's response to a pending game
type RespondRequest struct {
	Host     string `json:"host"`
	Opponent string `json:"opponent"`
	OppMove  Move   `json:"opp_move"`
	Wager    Wager  `json:"wager"`
}

// RespondResponse represents the response when settling a game
type RespondResponse struct {
	Operation   string                `json:"operation"`
	Host        string                `json:"host"`
	Opponent    string                `json:"opponent"`
	Result      Outcome               `json:"result"`
	Transfers   []TransferInstruction `json:"transfers"`
	Leaderboard *Ledger               `json:"leaderboard"`
}

// GetGamesResponse wraps the sessions returned by the query endpoints
type GetGamesResponse struct {
	Games []*GameSession `json:"games"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
