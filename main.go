package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessbot/bots"
)

const (
	boardSize  = 640
	squareSize = boardSize / 8
)

// Board colors
var (
	lightColor     = color.RGBA{240, 217, 181, 255}
	darkColor      = color.RGBA{181, 136, 99, 255}
	highlightColor = color.RGBA{186, 202, 68, 255}
)

type Game struct {
	chessGame   *chess.Game
	pieces      map[chess.Piece]*ebiten.Image
	selected    chess.Square
	hasSelected bool
	playerColor chess.Color
	flipBoard   bool
	gameStarted bool
	botThinking bool
	bot         bots.ChessBot
}

func NewGame(bot bots.ChessBot, assetsDir string) *Game {
	g := &Game{
		pieces: make(map[chess.Piece]*ebiten.Image),
		bot:    bot,
	}
	g.loadPieceImages(assetsDir)
	return g
}

func (g *Game) loadPieceImages(assetsDir string) {
	pieceAssets := map[chess.Piece]string{
		chess.WhiteKing:   "white_king.png",
		chess.WhiteQueen:  "white_queen.png",
		chess.WhiteRook:   "white_rook.png",
		chess.WhiteBishop: "white_bishop.png",
		chess.WhiteKnight: "white_knight.png",
		chess.WhitePawn:   "white_pawn.png",
		chess.BlackKing:   "black_king.png",
		chess.BlackQueen:  "black_queen.png",
		chess.BlackRook:   "black_rook.png",
		chess.BlackBishop: "black_bishop.png",
		chess.BlackKnight: "black_knight.png",
		chess.BlackPawn:   "black_pawn.png",
	}

	for piece, filename := range pieceAssets {
		path := filepath.Join(assetsDir, filename)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to load piece image")
		}

		// Scale to the square size
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		scaled := ebiten.NewImage(squareSize, squareSize)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(squareSize)/float64(w), float64(squareSize)/float64(h))
		scaled.DrawImage(img, op)
		g.pieces[piece] = scaled
	}
}

func (g *Game) Update() error {
	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnY := boardSize/2 + 60
			if y > btnY && y < btnY+60 {
				if x > boardSize/2-220 && x < boardSize/2-20 {
					g.playerColor = chess.White
					g.startGame()
				} else if x > boardSize/2+20 && x < boardSize/2+220 {
					g.playerColor = chess.Black
					g.startGame()
				}
			}
		}
		return nil
	}

	if g.botThinking {
		return nil
	}

	if g.chessGame.Outcome() != chess.NoOutcome {
		return nil
	}

	if g.chessGame.Position().Turn() == g.playerColor {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			if x >= 0 && x < boardSize && y >= 0 && y < boardSize {
				sq := g.squareAt(x, y)
				if !g.hasSelected {
					piece := g.chessGame.Position().Board().Piece(sq)
					if piece != chess.NoPiece && piece.Color() == g.playerColor {
						g.selected = sq
						g.hasSelected = true
					}
				} else {
					move := findMove(g.chessGame, g.selected, sq)
					if move != nil {
						g.chessGame.Move(move)
						g.botThinking = true
						go g.makeBotMove()
					} else {
						log.Info().Str("from", g.selected.String()).Str("to", sq.String()).
							Msg("illegal move, try again")
					}
					g.hasSelected = false
				}
			}
		}
	}

	return nil
}

func (g *Game) startGame() {
	g.chessGame = chess.NewGame()
	g.gameStarted = true
	// Keep the human's pieces at the bottom of the screen.
	g.flipBoard = g.playerColor == chess.Black
	log.Info().Str("player", g.playerColor.Name()).Str("bot", g.bot.Name()).Msg("game started")
	if g.playerColor == chess.Black {
		g.botThinking = true
		go g.makeBotMove()
	}
}

func (g *Game) makeBotMove() {
	time.Sleep(500 * time.Millisecond)
	move := g.bot.BestMove(g.chessGame)
	if move != nil {
		g.chessGame.Move(move)
		log.Info().Str("move", move.String()).Msg("bot played")
	}
	if outcome := g.chessGame.Outcome(); outcome != chess.NoOutcome {
		log.Info().Str("outcome", outcome.String()).Str("method", g.chessGame.Method().String()).
			Msg("game over")
	}
	g.botThinking = false
}

// squareAt converts screen coordinates to a board square, honoring the
// board flip.
func (g *Game) squareAt(x, y int) chess.Square {
	file := x / squareSize
	rank := 7 - y/squareSize
	if g.flipBoard {
		file = 7 - file
		rank = 7 - rank
	}
	return chess.Square(file + rank*8)
}

// screenCell is the inverse of squareAt: the top-left pixel of the cell
// a square is drawn in.
func (g *Game) screenCell(sq chess.Square) (int, int) {
	file := int(sq.File())
	rank := int(sq.Rank())
	if g.flipBoard {
		file = 7 - file
		rank = 7 - rank
	}
	return file * squareSize, (7 - rank) * squareSize
}

func findMove(game *chess.Game, from, to chess.Square) *chess.Move {
	for _, m := range game.ValidMoves() {
		if m.S1() == from && m.S2() == to {
			return m
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		ebitenutil.DebugPrintAt(screen, "Chess: Human vs. Bot", boardSize/2-70, boardSize/2-50)
		ebitenutil.DebugPrintAt(screen, "Choose your color:", boardSize/2-60, boardSize/2)

		whiteBtn := ebiten.NewImage(200, 60)
		whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
		ebitenutil.DebugPrintAt(whiteBtn, "Play White", 60, 20)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(boardSize/2-220), float64(boardSize/2+60))
		screen.DrawImage(whiteBtn, op)

		blackBtn := ebiten.NewImage(200, 60)
		blackBtn.Fill(color.RGBA{50, 50, 50, 255})
		ebitenutil.DebugPrintAt(blackBtn, "Play Black", 60, 20)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(boardSize/2+20), float64(boardSize/2+60))
		screen.DrawImage(blackBtn, op)
		return
	}

	// Squares
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			clr := lightColor
			if (x+y)%2 == 1 {
				clr = darkColor
			}
			rect := ebiten.NewImage(squareSize, squareSize)
			rect.Fill(clr)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*squareSize), float64(y*squareSize))
			screen.DrawImage(rect, op)
		}
	}

	// Selection highlight
	if g.hasSelected {
		px, py := g.screenCell(g.selected)
		frame := ebiten.NewImage(squareSize, squareSize)
		frame.Fill(highlightColor)
		inner := ebiten.NewImage(squareSize-8, squareSize-8)
		clr := lightColor
		if (px/squareSize+py/squareSize)%2 == 1 {
			clr = darkColor
		}
		inner.Fill(clr)
		innerOp := &ebiten.DrawImageOptions{}
		innerOp.GeoM.Translate(4, 4)
		frame.DrawImage(inner, innerOp)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(px), float64(py))
		screen.DrawImage(frame, op)
	}

	// Pieces
	board := g.chessGame.Position().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		img := g.pieces[piece]
		if img == nil {
			continue
		}
		px, py := g.screenCell(sq)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(px), float64(py))
		screen.DrawImage(img, op)
	}

	// Status line
	status := "Your move"
	if g.botThinking {
		status = "Bot is thinking..."
	} else if g.chessGame.Position().Turn() != g.playerColor {
		status = "Bot's move"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 4)

	if outcome := g.chessGame.Outcome(); outcome != chess.NoOutcome {
		result := fmt.Sprintf("Game over: %s (%s)", outcome, g.chessGame.Method())
		ebitenutil.DebugPrintAt(screen, result, boardSize/2-120, 4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return boardSize, boardSize
}

func main() {
	depth := flag.Int("depth", 3, "search depth in plies")
	botName := flag.String("bot", "alphabeta", "opponent: alphabeta, random or newborn")
	assetsDir := flag.String("assets", "assets", "directory with piece images")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *depth < 1 {
		log.Fatal().Int("depth", *depth).Msg("depth must be at least 1")
	}

	registry := map[string]bots.ChessBot{
		"alphabeta": bots.NewAlphaBetaBot(*depth),
		"random":    bots.NewRandomBot(time.Now().UnixNano()),
		"newborn":   bots.NewNewbornBot(),
	}
	bot, ok := registry[*botName]
	if !ok {
		log.Fatal().Str("bot", *botName).Msg("unknown bot")
	}

	game := NewGame(bot, *assetsDir)
	ebiten.SetWindowSize(boardSize, boardSize)
	ebiten.SetWindowTitle("Chess: Human vs. Bot")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game loop failed")
	}
}
