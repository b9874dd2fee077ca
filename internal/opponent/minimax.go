package opponent

import "github.com/vytor/arcade/internal/board"

// Leaf scores seen from the player being moved for.
const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// Optimal searches the whole game tree with minimax and never loses.
//
// Leaf scores do not depend on depth, so a win in one move and a win in five
// score the same. Among equal scores the lowest cell index is chosen.
type Optimal struct{}

func (Optimal) Move(b board.Board, me board.Mark) (int, error) {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return -1, ErrBoardFull
	}

	best, bestScore := -1, 0
	for _, cell := range cells {
		b[cell] = me
		score := minimax(b, me, false)
		b[cell] = board.Empty
		if best == -1 || score > bestScore {
			best, bestScore = cell, score
		}
	}
	return best, nil
}

// minimax scores b for me. maximizing is true when it is me to move.
func minimax(b board.Board, me board.Mark, maximizing bool) int {
	res := board.Evaluate(b)
	switch res.Status {
	case board.Won:
		if res.Winner == me {
			return winScore
		}
		return lossScore
	case board.Draw:
		return drawScore
	}

	if maximizing {
		best := lossScore - 1
		for _, cell := range b.EmptyCells() {
			b[cell] = me
			best = max(best, minimax(b, me, false))
			b[cell] = board.Empty
		}
		return best
	}

	other := me.Opponent()
	best := winScore + 1
	for _, cell := range b.EmptyCells() {
		b[cell] = other
		best = min(best, minimax(b, me, true))
		b[cell] = board.Empty
	}
	return best
}
