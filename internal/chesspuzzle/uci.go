package chesspuzzle

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// MoveToUCI converts a chess Move to UCI format (e.g., "e2e4", "e7e8q")
func MoveToUCI(move *chess.Move) string {
	if move == nil {
		return ""
	}

	uci := squareToString(move.S1()) + squareToString(move.S2())

	switch move.Promo() {
	case chess.Queen:
		uci += "q"
	case chess.Rook:
		uci += "r"
	case chess.Bishop:
		uci += "b"
	case chess.Knight:
		uci += "n"
	}
	return uci
}

// squareToString converts a Square to algebraic notation (e.g., "e2", "a8")
func squareToString(sq chess.Square) string {
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// normalizeUCI lowercases and trims a move typed by a player.
func normalizeUCI(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
