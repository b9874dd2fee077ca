package board

import (
	"errors"
	"strings"
)

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "_"
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// ParseMark accepts "X", "O" (case-insensitive) or "_", "." and "" for an empty cell.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	case "_", ".", "":
		return Empty, nil
	default:
		return Empty, ErrInvalidMark
	}
}

var (
	ErrOutOfRange  = errors.New("cell index out of range")
	ErrCellTaken   = errors.New("cell already taken")
	ErrInvalidMark = errors.New("invalid mark")
	ErrInvalidSize = errors.New("board must have 9 cells")
	ErrIllegal     = errors.New("board is not reachable by alternating play")
)

// Size is the number of cells on the board.
const Size = 9

// Board is a 3x3 grid stored row-major: index = row*3 + col.
type Board [Size]Mark

// Lines are the eight winning lines: rows, columns, then diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Corners in enumeration order.
var Corners = [4]int{0, 2, 6, 8}

// Center cell index.
const Center = 4

// EmptyCells returns the indices of empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, Size)
	for i, m := range b {
		if m == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold m.
func (b Board) Count(m Mark) int {
	n := 0
	for _, c := range b {
		if c == m {
			n++
		}
	}
	return n
}

// Turn returns whose move it is assuming X moved first.
func (b Board) Turn() Mark {
	if b.Count(X) > b.Count(O) {
		return O
	}
	return X
}

// Apply returns a copy of b with m placed at idx. The receiver is not modified.
func (b Board) Apply(idx int, m Mark) (Board, error) {
	if idx < 0 || idx >= Size {
		return b, ErrOutOfRange
	}
	if m == Empty {
		return b, ErrInvalidMark
	}
	if b[idx] != Empty {
		return b, ErrCellTaken
	}
	b[idx] = m
	return b, nil
}

// Validate checks that b could arise from alternating play with X moving first
// and that play stopped at the first completed line.
func (b Board) Validate() error {
	xs, os := b.Count(X), b.Count(O)
	if xs != os && xs != os+1 {
		return ErrIllegal
	}
	xWins, oWins := b.hasLine(X), b.hasLine(O)
	switch {
	case xWins && oWins:
		return ErrIllegal
	case xWins && xs != os+1:
		return ErrIllegal
	case oWins && xs != os:
		return ErrIllegal
	}
	return nil
}

func (b Board) hasLine(m Mark) bool {
	for _, l := range Lines {
		if b[l[0]] == m && b[l[1]] == m && b[l[2]] == m {
			return true
		}
	}
	return false
}

// String renders the board as nine characters, e.g. "XO_X_____".
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Size)
	for _, m := range b {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// Parse reads the nine-character form produced by String. Whitespace and
// '/' row separators are ignored.
func Parse(s string) (Board, error) {
	var b Board
	n := 0
	for _, r := range s {
		if r == ' ' || r == '/' || r == '\n' || r == '\t' {
			continue
		}
		if n >= Size {
			return Board{}, ErrInvalidSize
		}
		m, err := ParseMark(string(r))
		if err != nil {
			return Board{}, err
		}
		b[n] = m
		n++
	}
	if n != Size {
		return Board{}, ErrInvalidSize
	}
	return b, nil
}
