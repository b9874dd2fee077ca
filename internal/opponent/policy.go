package opponent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/arcade/internal/board"
)

var (
	// ErrBoardFull is returned when a move is requested on a board with no empty cell.
	ErrBoardFull = errors.New("no empty cell to play")
	// ErrNoMove is returned by SelectMove when the policy did not answer in time.
	ErrNoMove = errors.New("no move selected")
	// ErrUnknownTier is returned by New for an unrecognised tier name.
	ErrUnknownTier = errors.New("unknown difficulty tier")
)

// Tier names a difficulty level.
type Tier string

const (
	TierEasy    Tier = "easy"
	TierMedium  Tier = "medium"
	TierOptimal Tier = "optimal"
)

// Tiers lists every tier from weakest to strongest.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierOptimal}
}

// ParseTier maps a user supplied name to a Tier. "hard" is accepted as an
// alias of optimal.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierEasy:
		return TierEasy, nil
	case TierMedium, "":
		return TierMedium, nil
	case TierOptimal, "hard":
		return TierOptimal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Policy picks a cell for the player holding me.
type Policy interface {
	Move(b board.Board, me board.Mark) (int, error)
}

// New builds the policy for a tier. rng is only used by randomised tiers; nil
// selects SystemRand.
func New(tier Tier, rng Rand) (Policy, error) {
	if rng == nil {
		rng = SystemRand()
	}
	switch tier {
	case TierEasy:
		return &Easy{rng: rng}, nil
	case TierMedium:
		return &Medium{rng: rng, heuristicRate: DefaultHeuristicRate}, nil
	case TierOptimal:
		return Optimal{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
}

// SelectMove runs p on a separate goroutine and waits for it or for ctx.
// When ctx ends first the result is ErrNoMove wrapping the context error and
// the late answer is discarded.
func SelectMove(ctx context.Context, p Policy, b board.Board, me board.Mark) (int, error) {
	if len(b.EmptyCells()) == 0 {
		return -1, ErrBoardFull
	}

	type answer struct {
		cell int
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		cell, err := p.Move(b, me)
		ch <- answer{cell: cell, err: err}
	}()

	select {
	case a := <-ch:
		return a.cell, a.err
	case <-ctx.Done():
		return -1, fmt.Errorf("%w: %w", ErrNoMove, ctx.Err())
	}
}

// winningCell returns a cell that completes a line for m, or -1.
func winningCell(b board.Board, m board.Mark) int {
	for _, cell := range b.EmptyCells() {
		b[cell] = m
		res := board.Evaluate(b)
		b[cell] = board.Empty
		if res.Status == board.Won && res.Winner == m {
			return cell
		}
	}
	return -1
}

func randomCell(b board.Board, rng Rand) int {
	cells := b.EmptyCells()
	return cells[rng.IntN(len(cells))]
}
