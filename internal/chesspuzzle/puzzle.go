// Package chesspuzzle grades chess puzzle attempts. Positions and moves are
// handled by github.com/corentings/chess/v2.
package chesspuzzle

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/corentings/chess/v2"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/pgn"
)

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidSolution = errors.New("invalid solution")
	ErrDuplicateID     = errors.New("duplicate puzzle id")
)

//go:embed puzzles.pgn
var bundled []byte

func startPosition(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return chess.NewGame(opt).Position(), nil
}

// Validate checks that the puzzle's position parses and that every move of its
// solution can be played in sequence.
func Validate(p models.ChessPuzzle) error {
	pos, err := startPosition(p.FEN)
	if err != nil {
		return err
	}
	if len(p.Solution) == 0 {
		return fmt.Errorf("%w: empty line", ErrInvalidSolution)
	}
	for i, s := range p.Solution {
		m, err := chess.UCINotation{}.Decode(pos, normalizeUCI(s))
		if err != nil {
			return fmt.Errorf("%w: move %d %q: %v", ErrInvalidSolution, i+1, s, err)
		}
		pos = pos.Update(m)
	}
	return nil
}

// Check replays the player's moves against the solution. Replies from the
// solution are played automatically after each correct move; grading stops at
// the first move that differs from the solution.
func Check(p models.ChessPuzzle, moves []string) (models.PuzzleResult, error) {
	res := models.PuzzleResult{PuzzleID: p.ID, TotalMoves: p.PlayerMoves()}

	pos, err := startPosition(p.FEN)
	if err != nil {
		return res, err
	}

	for ply, want := range p.Solution {
		if ply%2 == 1 {
			reply, err := chess.UCINotation{}.Decode(pos, normalizeUCI(want))
			if err != nil {
				return res, fmt.Errorf("%w: reply %q: %v", ErrInvalidSolution, want, err)
			}
			pos = pos.Update(reply)
			continue
		}

		idx := ply / 2
		if idx >= len(moves) {
			break
		}
		m, err := chess.UCINotation{}.Decode(pos, normalizeUCI(moves[idx]))
		if err != nil || MoveToUCI(m) != normalizeUCI(want) {
			break
		}
		pos = pos.Update(m)
		res.CorrectMoves++
	}

	res.Solved = res.CorrectMoves == res.TotalMoves
	res.FinalFEN = pos.String()
	res.Checkmate = pos.Status() == chess.Checkmate
	return res, nil
}

// Accuracy is the share of the player's moves found, in percent.
func Accuracy(r models.PuzzleResult) float64 {
	if r.TotalMoves == 0 {
		return 0
	}
	return float64(r.CorrectMoves) / float64(r.TotalMoves) * 100
}

// Library is an immutable, validated set of puzzles.
type Library struct {
	puzzles []models.ChessPuzzle
	byID    map[string]int
}

// NewLibrary validates every puzzle and indexes them by id.
func NewLibrary(puzzles []models.ChessPuzzle) (*Library, error) {
	l := &Library{byID: make(map[string]int, len(puzzles))}
	for _, p := range puzzles {
		if _, ok := l.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("puzzle %s: %w", p.ID, err)
		}
		l.byID[p.ID] = len(l.puzzles)
		l.puzzles = append(l.puzzles, p)
	}
	return l, nil
}

// LoadBundled returns the puzzles shipped with the binary.
func LoadBundled() (*Library, error) {
	puzzles, err := pgn.ReadPuzzles(bytes.NewReader(bundled))
	if err != nil {
		return nil, err
	}
	return NewLibrary(puzzles)
}

// LoadFile reads puzzles from a PGN-style file.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	puzzles, err := pgn.ReadPuzzles(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewLibrary(puzzles)
}

func (l *Library) Len() int { return len(l.puzzles) }

// At returns the i-th puzzle in file order.
func (l *Library) At(i int) models.ChessPuzzle { return l.puzzles[i] }

func (l *Library) Get(id string) (models.ChessPuzzle, bool) {
	i, ok := l.byID[id]
	if !ok {
		return models.ChessPuzzle{}, false
	}
	return l.puzzles[i], true
}

// List returns all puzzles in file order.
func (l *Library) List() []models.ChessPuzzle {
	out := make([]models.ChessPuzzle, len(l.puzzles))
	copy(out, l.puzzles)
	return out
}
