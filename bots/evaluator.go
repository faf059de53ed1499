package bots

import "github.com/notnil/chess"

// MaterialEvaluator scores a position by material count alone: the sum
// of piece values for perspective's pieces minus the sum for the
// opponent's. The king carries no weight, which keeps the score
// symmetric between the two sides.
type MaterialEvaluator struct{}

func (e MaterialEvaluator) Evaluate(pos *chess.Position, perspective chess.Color) int {
	var score int
	for _, piece := range pos.Board().SquareMap() {
		value := pieceValue(piece.Type())
		if piece.Color() == perspective {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

func pieceValue(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		return 0
	}
}
