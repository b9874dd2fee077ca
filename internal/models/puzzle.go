package models

// ChessPuzzle is a position with a forced line. Solution alternates player and
// reply moves in UCI notation, starting with the player's move.
type ChessPuzzle struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	FEN      string   `json:"fen"`
	Solution []string `json:"-"`
	Rating   int      `json:"rating"`
}

// PlayerMoves is the number of moves the player has to find.
func (p ChessPuzzle) PlayerMoves() int {
	return (len(p.Solution) + 1) / 2
}

// PuzzleResult is the grading of a submitted line.
type PuzzleResult struct {
	PuzzleID     string `json:"puzzle_id"`
	Solved       bool   `json:"solved"`
	CorrectMoves int    `json:"correct_moves"`
	TotalMoves   int    `json:"total_moves"`
	FinalFEN     string `json:"final_fen"`
	Checkmate    bool   `json:"checkmate"`
}
