package bots

import (
	"errors"
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// infinity sits far above any material sum a legal position can reach
// (9 queens and change is still under 200).
const infinity = 1 << 20

var (
	ErrNoLegalMoves = errors.New("bots: position has no legal moves")
	ErrInvalidDepth = errors.New("bots: search depth must be at least 1")
)

// AlphaBetaBot chooses moves with a fixed-depth alpha-beta search over
// the material evaluation. Search cost grows exponentially with Depth,
// which is the only lever over thinking time.
type AlphaBetaBot struct {
	Depth     int
	Evaluator Evaluator
}

func NewAlphaBetaBot(depth int) *AlphaBetaBot {
	return &AlphaBetaBot{
		Depth:     depth,
		Evaluator: MaterialEvaluator{},
	}
}

func (b *AlphaBetaBot) Name() string {
	return fmt.Sprintf("AlphaBeta Bot (depth %d)", b.Depth)
}

// BestMove adapts Search to the ChessBot interface, optimizing for the
// side to move. It returns nil if the game is already over.
func (b *AlphaBetaBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}

	start := time.Now()
	pos := game.Position()
	move, score, err := b.Search(pos, b.Depth, pos.Turn())
	if err != nil {
		log.Warn().Err(err).Msg("search aborted")
		return nil
	}

	log.Debug().
		Str("move", move.String()).
		Int("score", score).
		Int("depth", b.Depth).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")
	return move
}

// Search picks the best move for perspective from pos, looking depth
// plies ahead. Every root move is searched with a fresh full window, so
// each root score is the exact minimax value of its subtree; a later
// move never displaces an earlier one with an equal score. The caller
// must supply an in-progress position and depth >= 1.
func (b *AlphaBetaBot) Search(pos *chess.Position, depth int, perspective chess.Color) (*chess.Move, int, error) {
	if depth < 1 {
		return nil, 0, ErrInvalidDepth
	}
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, 0, ErrNoLegalMoves
	}

	maximizing := pos.Turn() == perspective
	var bestMove *chess.Move
	bestScore := -infinity
	if !maximizing {
		bestScore = infinity
	}

	for _, move := range moves {
		score := b.search(pos.Update(move), depth-1, -infinity, infinity, perspective)
		if maximizing && score > bestScore {
			bestScore, bestMove = score, move
		} else if !maximizing && score < bestScore {
			bestScore, bestMove = score, move
		}
	}

	return bestMove, bestScore, nil
}

// search is the recursive alpha-beta walk. It returns the value of pos
// for perspective, exact within the (alpha, beta) window. Checkmated
// and stalemated leaves get the plain material score like any other
// leaf; the search does not reward mates beyond the material they win.
func (b *AlphaBetaBot) search(pos *chess.Position, depth, alpha, beta int, perspective chess.Color) int {
	if depth == 0 || pos.Status() != chess.NoMethod {
		return b.Evaluator.Evaluate(pos, perspective)
	}

	if pos.Turn() == perspective {
		best := -infinity
		for _, move := range pos.ValidMoves() {
			score := b.search(pos.Update(move), depth-1, alpha, beta, perspective)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := infinity
	for _, move := range pos.ValidMoves() {
		score := b.search(pos.Update(move), depth-1, alpha, beta, perspective)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
