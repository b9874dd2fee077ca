// Package arena plays opponent policies against each other.
package arena

import (
	"context"
	"fmt"

	"github.com/vytor/arcade/internal/board"
	"github.com/vytor/arcade/internal/opponent"
)

// Record counts game results from one policy's side.
type Record struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Games is the number of games in the record.
func (r Record) Games() int {
	return r.Wins + r.Draws + r.Losses
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d-%d (W-D-L)", r.Wins, r.Draws, r.Losses)
}

// Play runs one game from an empty board, x moving first, and returns the
// terminal result.
func Play(ctx context.Context, x, o opponent.Policy) (board.Result, error) {
	var b board.Board
	players := map[board.Mark]opponent.Policy{board.X: x, board.O: o}

	for {
		if res := board.Evaluate(b); res.Terminal() {
			return res, nil
		}
		if err := ctx.Err(); err != nil {
			return board.Result{}, err
		}

		turn := b.Turn()
		cell, err := players[turn].Move(b, turn)
		if err != nil {
			return board.Result{}, fmt.Errorf("%s to move on %s: %w", turn, b, err)
		}
		next, err := b.Apply(cell, turn)
		if err != nil {
			return board.Result{}, fmt.Errorf("%s played cell %d on %s: %w", turn, cell, b, err)
		}
		b = next
	}
}

// Series plays games between subject and rival, alternating who moves first,
// and returns the record from subject's side.
func Series(ctx context.Context, subject, rival opponent.Policy, games int) (Record, error) {
	var rec Record
	for i := 0; i < games; i++ {
		x, o, subjectMark := subject, rival, board.X
		if i%2 == 1 {
			x, o, subjectMark = rival, subject, board.O
		}

		res, err := Play(ctx, x, o)
		if err != nil {
			return rec, err
		}

		switch {
		case res.Status == board.Draw:
			rec.Draws++
		case res.Winner == subjectMark:
			rec.Wins++
		default:
			rec.Losses++
		}
	}
	return rec, nil
}
