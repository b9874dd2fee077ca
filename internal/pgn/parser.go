package pgn

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/vytor/arcade/internal/models"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

// SplitBlocks splits a multi-game file on blank lines. Lines starting with
// ';' are comments.
func SplitBlocks(r io.Reader) ([]string, error) {
	var (
		blocks []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			blocks = append(blocks, cur.String())
			cur.Reset()
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, ";"):
		default:
			cur.WriteString(line)
			cur.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return blocks, nil
}

// ReadPuzzles parses puzzle blocks. Each block needs a FEN and a Solution tag
// (space separated UCI moves); Event becomes the title and PuzzleId the id,
// falling back to the block's position in the file.
func ReadPuzzles(r io.Reader) ([]models.ChessPuzzle, error) {
	blocks, err := SplitBlocks(r)
	if err != nil {
		return nil, err
	}

	puzzles := make([]models.ChessPuzzle, 0, len(blocks))
	for i, block := range blocks {
		h := ParsePGNHeaders(block)
		p := models.ChessPuzzle{
			ID:       h["PuzzleId"],
			Title:    h["Event"],
			FEN:      h["FEN"],
			Solution: strings.Fields(strings.ToLower(h["Solution"])),
		}
		if p.ID == "" {
			p.ID = strconv.Itoa(i + 1)
		}
		if p.FEN == "" {
			return nil, fmt.Errorf("puzzle %s: missing FEN tag", p.ID)
		}
		if len(p.Solution) == 0 {
			return nil, fmt.Errorf("puzzle %s: missing Solution tag", p.ID)
		}
		if v := h["Rating"]; v != "" {
			if p.Rating, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("puzzle %s: invalid rating %q", p.ID, v)
			}
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}
