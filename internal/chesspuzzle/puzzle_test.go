package chesspuzzle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/chesspuzzle"
	"github.com/vytor/arcade/internal/models"
)

var (
	backRank = models.ChessPuzzle{
		ID:       "back-rank",
		FEN:      "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		Solution: []string{"a1a8"},
	}
	doubledRooks = models.ChessPuzzle{
		ID:       "doubled-rooks",
		FEN:      "3rr1k1/5ppp/8/8/8/8/3R1PPP/3R2K1 w - - 0 1",
		Solution: []string{"d2d8", "e8d8", "d1d8"},
	}
	promotion = models.ChessPuzzle{
		ID:       "promotion-race",
		FEN:      "8/P7/8/8/8/8/6k1/K7 w - - 0 1",
		Solution: []string{"a7a8q"},
	}
)

func TestCheck_MateInOne(t *testing.T) {
	res, err := chesspuzzle.Check(backRank, []string{"a1a8"})
	require.NoError(t, err)

	assert.True(t, res.Solved)
	assert.True(t, res.Checkmate)
	assert.Equal(t, 1, res.CorrectMoves)
	assert.Equal(t, 1, res.TotalMoves)
	assert.Equal(t, "back-rank", res.PuzzleID)
	assert.Contains(t, res.FinalFEN, "R5k1")
}

func TestCheck_WrongMove(t *testing.T) {
	res, err := chesspuzzle.Check(backRank, []string{"a1a7"})
	require.NoError(t, err)

	assert.False(t, res.Solved)
	assert.False(t, res.Checkmate)
	assert.Equal(t, 0, res.CorrectMoves)
	assert.Equal(t, backRank.FEN, res.FinalFEN, "position is unchanged")
}

func TestCheck_RepliesArePlayed(t *testing.T) {
	res, err := chesspuzzle.Check(doubledRooks, []string{"d2d8", "d1d8"})
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.True(t, res.Checkmate)
	assert.Equal(t, 2, res.CorrectMoves)
	assert.Equal(t, 2, res.TotalMoves)

	partial, err := chesspuzzle.Check(doubledRooks, []string{"d2d8"})
	require.NoError(t, err)
	assert.False(t, partial.Solved)
	assert.Equal(t, 1, partial.CorrectMoves)
	assert.InDelta(t, 50.0, chesspuzzle.Accuracy(partial), 1e-9)

	wrongSecond, err := chesspuzzle.Check(doubledRooks, []string{"d2d8", "d1d7"})
	require.NoError(t, err)
	assert.False(t, wrongSecond.Solved)
	assert.Equal(t, 1, wrongSecond.CorrectMoves)
}

func TestCheck_NormalizesInput(t *testing.T) {
	res, err := chesspuzzle.Check(promotion, []string{" A7A8Q "})
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.False(t, res.Checkmate)

	under, err := chesspuzzle.Check(promotion, []string{"a7a8n"})
	require.NoError(t, err)
	assert.False(t, under.Solved, "underpromotion is a different move")
}

func TestCheck_MixedCaseSolution(t *testing.T) {
	opening := models.ChessPuzzle{
		ID:       "open-game",
		FEN:      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Solution: []string{"e2e4", "E7E5", "G1F3"},
	}
	_, err := chesspuzzle.NewLibrary([]models.ChessPuzzle{opening})
	require.NoError(t, err)

	res, err := chesspuzzle.Check(opening, []string{"e2e4", "g1f3"})
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, 2, res.CorrectMoves)
}

func TestCheck_Garbage(t *testing.T) {
	res, err := chesspuzzle.Check(backRank, []string{"not-a-move"})
	require.NoError(t, err)
	assert.False(t, res.Solved)

	res, err = chesspuzzle.Check(backRank, nil)
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Equal(t, 0.0, chesspuzzle.Accuracy(res))
}

func TestCheck_InvalidFEN(t *testing.T) {
	_, err := chesspuzzle.Check(models.ChessPuzzle{FEN: "not a fen", Solution: []string{"a1a8"}}, []string{"a1a8"})
	assert.ErrorIs(t, err, chesspuzzle.ErrInvalidFEN)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, chesspuzzle.Validate(doubledRooks))
	assert.ErrorIs(t, chesspuzzle.Validate(models.ChessPuzzle{FEN: "bogus"}), chesspuzzle.ErrInvalidFEN)
	assert.ErrorIs(t, chesspuzzle.Validate(models.ChessPuzzle{FEN: backRank.FEN}), chesspuzzle.ErrInvalidSolution)
	assert.ErrorIs(t, chesspuzzle.Validate(models.ChessPuzzle{FEN: backRank.FEN, Solution: []string{"zz"}}), chesspuzzle.ErrInvalidSolution)
}

func TestLoadBundled(t *testing.T) {
	lib, err := chesspuzzle.LoadBundled()
	require.NoError(t, err)
	require.GreaterOrEqual(t, lib.Len(), 4)

	for _, p := range lib.List() {
		res, err := chesspuzzle.Check(p, playerMoves(p))
		require.NoError(t, err, p.ID)
		assert.True(t, res.Solved, p.ID)
	}

	p, ok := lib.Get("scholars-finish")
	require.True(t, ok)
	res, err := chesspuzzle.Check(p, []string{"h5f7"})
	require.NoError(t, err)
	assert.True(t, res.Checkmate)

	_, ok = lib.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, lib.List()[0], lib.At(0))
}

func TestNewLibrary_Duplicate(t *testing.T) {
	_, err := chesspuzzle.NewLibrary([]models.ChessPuzzle{backRank, backRank})
	assert.ErrorIs(t, err, chesspuzzle.ErrDuplicateID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.pgn")
	content := "[PuzzleId \"only\"]\n[FEN \"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\"]\n[Solution \"a1a8\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lib, err := chesspuzzle.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Len())

	_, err = chesspuzzle.LoadFile(filepath.Join(t.TempDir(), "missing.pgn"))
	assert.Error(t, err)
}

func playerMoves(p models.ChessPuzzle) []string {
	var out []string
	for i := 0; i < len(p.Solution); i += 2 {
		out = append(out, p.Solution[i])
	}
	return out
}
