// bot.go
package bots

import "github.com/notnil/chess"

// ChessBot is the interface every bot implements. BestMove returns nil
// only when the game has no legal moves left.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// Evaluator scores a position from the given side's point of view.
// Higher is better for perspective, and implementations must be
// symmetric: Evaluate(p, c) == -Evaluate(p, c.Other()).
type Evaluator interface {
	Evaluate(pos *chess.Position, perspective chess.Color) int
}
