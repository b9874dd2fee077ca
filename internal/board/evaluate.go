package board

// Status is the terminal state of a board.
type Status int

const (
	Ongoing Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Result is the outcome of Evaluate. Winner and Line are only set when Status is Won.
type Result struct {
	Status Status
	Winner Mark
	Line   [3]int
}

// Terminal reports whether the game is over.
func (r Result) Terminal() bool {
	return r.Status != Ongoing
}

// Evaluate reports whether b is won, drawn or still being played.
//
// Lines are checked in the order of Lines and the first complete line wins.
// A board holding complete lines for both marks cannot be reached by legal
// alternating play; for such a board the first line in enumeration order is
// reported. Callers that accept boards from outside should run Validate first.
func Evaluate(b Board) Result {
	for _, l := range Lines {
		m := b[l[0]]
		if m != Empty && m == b[l[1]] && m == b[l[2]] {
			return Result{Status: Won, Winner: m, Line: l}
		}
	}
	if b.Full() {
		return Result{Status: Draw}
	}
	return Result{Status: Ongoing}
}
