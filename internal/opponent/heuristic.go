package opponent

import "github.com/vytor/arcade/internal/board"

// DefaultHeuristicRate is how often Medium plays its heuristic instead of a
// random cell.
const DefaultHeuristicRate = 0.7

// Medium plays the in-the-moment heuristic most of the time and a random cell
// otherwise, so it can be beaten.
type Medium struct {
	rng           Rand
	heuristicRate float64
}

// NewMedium returns a Medium policy with a custom heuristic rate in [0, 1].
func NewMedium(rng Rand, heuristicRate float64) *Medium {
	if rng == nil {
		rng = SystemRand()
	}
	heuristicRate = min(max(heuristicRate, 0), 1)
	return &Medium{rng: rng, heuristicRate: heuristicRate}
}

func (p *Medium) Move(b board.Board, me board.Mark) (int, error) {
	if b.Full() {
		return -1, ErrBoardFull
	}
	if p.rng.Float64() < p.heuristicRate {
		return heuristicMove(b, me, p.rng), nil
	}
	return randomCell(b, p.rng), nil
}

// heuristicMove: win, block, center, random free corner, first free cell.
func heuristicMove(b board.Board, me board.Mark, rng Rand) int {
	if cell := winningCell(b, me); cell >= 0 {
		return cell
	}
	if cell := winningCell(b, me.Opponent()); cell >= 0 {
		return cell
	}
	if b[board.Center] == board.Empty {
		return board.Center
	}

	corners := make([]int, 0, len(board.Corners))
	for _, c := range board.Corners {
		if b[c] == board.Empty {
			corners = append(corners, c)
		}
	}
	if len(corners) > 0 {
		return corners[rng.IntN(len(corners))]
	}
	return b.EmptyCells()[0]
}

// Easy is the single-round opponent: it wins or blocks when it can and
// otherwise plays anywhere.
type Easy struct {
	rng Rand
}

// NewEasy returns an Easy policy drawing from rng.
func NewEasy(rng Rand) *Easy {
	if rng == nil {
		rng = SystemRand()
	}
	return &Easy{rng: rng}
}

func (p *Easy) Move(b board.Board, me board.Mark) (int, error) {
	if b.Full() {
		return -1, ErrBoardFull
	}
	if cell := winningCell(b, me); cell >= 0 {
		return cell, nil
	}
	if cell := winningCell(b, me.Opponent()); cell >= 0 {
		return cell, nil
	}
	return randomCell(b, p.rng), nil
}

// Random plays a uniformly random empty cell. It is the baseline for simulations.
type Random struct {
	rng Rand
}

// NewRandom returns a Random policy drawing from rng.
func NewRandom(rng Rand) *Random {
	if rng == nil {
		rng = SystemRand()
	}
	return &Random{rng: rng}
}

func (p *Random) Move(b board.Board, _ board.Mark) (int, error) {
	if b.Full() {
		return -1, ErrBoardFull
	}
	return randomCell(b, p.rng), nil
}
