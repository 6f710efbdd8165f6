package engine

import "github.com/wager-duel-backend/internal/models"

// beats maps each move to the move it dominates:
// rock crushes scissors, scissors cut paper, paper covers rock.
var beats = map[models.Move]models.Move{
	models.MoveRock:     models.MoveScissors,
	models.MoveScissors: models.MovePaper,
	models.MovePaper:    models.MoveRock,
}

// Resolve computes the outcome of a game from both moves.
//
// This is a pure function: defined for all nine move pairs, no side
// effects, no failure path. Equal moves tie; otherwise the dominance
// cycle decides the winner.
func Resolve(hostMove, oppMove models.Move) models.Outcome {
	if hostMove == oppMove {
		return models.OutcomeTie
	}
	if beats[hostMove] == oppMove {
		return models.OutcomeHostWins
	}
	return models.OutcomeOppWins
}
