package bots

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

const (
	// White pawn on e4 can take an undefended knight on d5.
	hangingKnightFEN = "k7/8/8/3n4/4P3/8/8/K7 w - - 0 1"
	// Fool's mate: White is checkmated, no legal moves.
	checkmateFEN   = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	italianGameFEN = "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 4 3"
)

// plainMinimax is the unpruned reference the pruned search must agree
// with at the root.
func plainMinimax(pos *chess.Position, depth int, perspective chess.Color) int {
	if depth == 0 || pos.Status() != chess.NoMethod {
		return MaterialEvaluator{}.Evaluate(pos, perspective)
	}

	if pos.Turn() == perspective {
		best := -infinity
		for _, move := range pos.ValidMoves() {
			if score := plainMinimax(pos.Update(move), depth-1, perspective); score > best {
				best = score
			}
		}
		return best
	}

	best := infinity
	for _, move := range pos.ValidMoves() {
		if score := plainMinimax(pos.Update(move), depth-1, perspective); score < best {
			best = score
		}
	}
	return best
}

// plainBestMove mirrors the root selector over plainMinimax: all moves
// explored, strict improvement, first move wins ties.
func plainBestMove(pos *chess.Position, depth int, perspective chess.Color) (*chess.Move, int) {
	maximizing := pos.Turn() == perspective
	var bestMove *chess.Move
	bestScore := -infinity
	if !maximizing {
		bestScore = infinity
	}
	for _, move := range pos.ValidMoves() {
		score := plainMinimax(pos.Update(move), depth-1, perspective)
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore, bestMove = score, move
		}
	}
	return bestMove, bestScore
}

func TestSearchDepthZeroEqualsEvaluation(t *testing.T) {
	b := NewAlphaBetaBot(1)
	for _, fen := range []string{hangingKnightFEN, italianGameFEN} {
		pos := positionFromFEN(t, fen)
		for _, perspective := range []chess.Color{chess.White, chess.Black} {
			want := MaterialEvaluator{}.Evaluate(pos, perspective)
			got := b.search(pos, 0, -infinity, infinity, perspective)
			require.Equal(t, want, got, "Depth-0 search should be the static evaluation for %s", fen)
		}
	}
}

func TestSearchMatchesUnprunedMinimax(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
	}{
		{"starting position depth 2", chess.NewGame().Position().String(), 2},
		{"hanging knight depth 2", hangingKnightFEN, 2},
		{"hanging knight depth 3", hangingKnightFEN, 3},
		{"italian game depth 2", italianGameFEN, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := positionFromFEN(t, tc.fen)
			for _, perspective := range []chess.Color{chess.White, chess.Black} {
				b := NewAlphaBetaBot(tc.depth)
				gotMove, gotScore, err := b.Search(pos, tc.depth, perspective)
				require.NoError(t, err)

				wantMove, wantScore := plainBestMove(pos, tc.depth, perspective)
				require.Equal(t, wantScore, gotScore,
					"Pruned root score should equal the unpruned minimax score")
				require.Equal(t, wantMove.String(), gotMove.String(),
					"Pruned search should choose the same move as unpruned minimax")
			}
		})
	}
}

func TestSearchDeterminism(t *testing.T) {
	pos := positionFromFEN(t, italianGameFEN)
	b := NewAlphaBetaBot(2)

	first, firstScore, err := b.Search(pos, 2, pos.Turn())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		move, score, err := b.Search(pos, 2, pos.Turn())
		require.NoError(t, err)
		require.Equal(t, first.String(), move.String(), "Repeated searches should agree on the move")
		require.Equal(t, firstScore, score, "Repeated searches should agree on the score")
	}
}

func TestSearchTieBreakPrefersFirstMove(t *testing.T) {
	// Every opening move keeps material level, so all twenty root moves
	// tie at zero and the first enumerated move must win.
	pos := chess.NewGame().Position()
	b := NewAlphaBetaBot(1)

	move, score, err := b.Search(pos, 1, pos.Turn())
	require.NoError(t, err)
	require.Equal(t, 0, score, "No opening move wins material at depth 1")
	require.Equal(t, pos.ValidMoves()[0].String(), move.String(),
		"Equal scores should leave the first enumerated move in place")
}

func TestSearchTakesHangingPiece(t *testing.T) {
	pos := positionFromFEN(t, hangingKnightFEN)
	b := NewAlphaBetaBot(1)

	move, score, err := b.Search(pos, 1, chess.White)
	require.NoError(t, err)
	require.Equal(t, chess.E4, move.S1(), "Capture should come from e4")
	require.Equal(t, chess.D5, move.S2(), "Capture should land on d5")
	require.Equal(t, 1, score, "Winning the knight should swing material to +1")
}

func TestSearchMinimizingRoot(t *testing.T) {
	// White to move but optimizing for Black: the root is a minimizing
	// node, and White's best capture is Black's worst outcome.
	pos := positionFromFEN(t, hangingKnightFEN)
	b := NewAlphaBetaBot(1)

	move, score, err := b.Search(pos, 1, chess.Black)
	require.NoError(t, err)
	require.Equal(t, "e4d5", move.String(), "Minimizing root should expect White's best reply")
	require.Equal(t, -1, score)
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	game := chess.NewGame()
	pos := game.Position()
	before := pos.String()

	b := NewAlphaBetaBot(2)
	_, _, err := b.Search(pos, 2, pos.Turn())
	require.NoError(t, err)

	require.Equal(t, before, pos.String(), "Search should not alter the caller's position")
	require.Equal(t, before, game.Position().String(), "Search should not alter the game state")
}

func TestSearchPreconditions(t *testing.T) {
	t.Run("terminal position", func(t *testing.T) {
		pos := positionFromFEN(t, checkmateFEN)
		_, _, err := NewAlphaBetaBot(2).Search(pos, 2, chess.White)
		require.ErrorIs(t, err, ErrNoLegalMoves, "A checkmated root has no move to choose")
	})

	t.Run("zero depth", func(t *testing.T) {
		pos := chess.NewGame().Position()
		_, _, err := NewAlphaBetaBot(2).Search(pos, 0, chess.White)
		require.ErrorIs(t, err, ErrInvalidDepth)
	})
}

func TestAlphaBetaBotBestMove(t *testing.T) {
	t.Run("plays a legal move", func(t *testing.T) {
		game := chess.NewGame()
		move := NewAlphaBetaBot(2).BestMove(game)
		require.NotNil(t, move)
		require.Contains(t, moveStrings(game.ValidMoves()), move.String())
	})

	t.Run("nil on finished game", func(t *testing.T) {
		opt, err := chess.FEN(checkmateFEN)
		require.NoError(t, err)
		game := chess.NewGame(opt)
		require.Nil(t, NewAlphaBetaBot(2).BestMove(game), "No move exists after checkmate")
	})

	t.Run("nil on nil game", func(t *testing.T) {
		require.Nil(t, NewAlphaBetaBot(2).BestMove(nil))
	})
}

func moveStrings(moves []*chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
