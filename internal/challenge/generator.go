package challenge

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/vytor/arcade/internal/models"
)

// MathQuestion is a single arithmetic question.
type MathQuestion struct {
	Prompt     string            `json:"prompt"`
	Left       int               `json:"left"`
	Right      int               `json:"right"`
	Operator   string            `json:"operator"`
	Answer     int               `json:"answer"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// PatternKind names the rule behind a number sequence.
type PatternKind string

const (
	PatternArithmetic  PatternKind = "arithmetic"
	PatternGeometric   PatternKind = "geometric"
	PatternAlternating PatternKind = "alternating"
)

// Pattern is a number sequence whose next element has to be found.
type Pattern struct {
	Kind       PatternKind       `json:"kind"`
	Sequence   []int             `json:"sequence"`
	Answer     int               `json:"answer"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// Generator produces challenge content. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator whose output depends only on seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) pick(ops []string) string {
	return ops[g.rng.IntN(len(ops))]
}

// MathQuestion generates one question. Subtraction never goes below zero and
// division is always exact.
func (g *Generator) MathQuestion(d models.Difficulty) MathQuestion {
	g.mu.Lock()
	defer g.mu.Unlock()

	var (
		ops      []string
		maxSum   int
		maxTimes int
	)
	switch d {
	case models.DifficultyHard:
		ops, maxSum, maxTimes = []string{"+", "-", "×", "÷"}, 100, 20
	case models.DifficultyMedium:
		ops, maxSum, maxTimes = []string{"+", "-", "×"}, 50, 12
	default:
		d = models.DifficultyEasy
		ops, maxSum, maxTimes = []string{"+", "-"}, 20, 10
	}

	q := MathQuestion{Operator: g.pick(ops), Difficulty: d}
	switch q.Operator {
	case "+":
		q.Left, q.Right = g.between(1, maxSum), g.between(1, maxSum)
		q.Answer = q.Left + q.Right
	case "-":
		a, b := g.between(1, maxSum), g.between(1, maxSum)
		q.Left, q.Right = max(a, b), min(a, b)
		q.Answer = q.Left - q.Right
	case "×":
		q.Left, q.Right = g.between(2, maxTimes), g.between(2, maxTimes)
		q.Answer = q.Left * q.Right
	case "÷":
		q.Right, q.Answer = g.between(2, 12), g.between(1, maxTimes)
		q.Left = q.Right * q.Answer
	}
	q.Prompt = fmt.Sprintf("%d %s %d", q.Left, q.Operator, q.Right)
	return q
}

// MathQuiz generates n questions of the same difficulty.
func (g *Generator) MathQuiz(n int, d models.Difficulty) []MathQuestion {
	out := make([]MathQuestion, 0, n)
	for range n {
		out = append(out, g.MathQuestion(d))
	}
	return out
}

// Pattern generates one sequence. Easy sequences are arithmetic, medium adds
// geometric ones, hard adds two interleaved arithmetic sequences.
func (g *Generator) Pattern(d models.Difficulty) Pattern {
	g.mu.Lock()
	defer g.mu.Unlock()

	kinds := []PatternKind{PatternArithmetic}
	length := 5
	switch d {
	case models.DifficultyHard:
		kinds = []PatternKind{PatternArithmetic, PatternGeometric, PatternAlternating}
		length = 6
	case models.DifficultyMedium:
		kinds = []PatternKind{PatternArithmetic, PatternGeometric}
	default:
		d = models.DifficultyEasy
	}

	p := Pattern{Kind: kinds[g.rng.IntN(len(kinds))], Difficulty: d}
	full := make([]int, length+1)
	switch p.Kind {
	case PatternArithmetic:
		start, step := g.between(1, 10), g.between(1, 5)
		if d != models.DifficultyEasy {
			step = g.between(2, 9)
		}
		for i := range full {
			full[i] = start + i*step
		}
	case PatternGeometric:
		v, ratio := g.between(1, 5), g.between(2, 3)
		for i := range full {
			full[i] = v
			v *= ratio
		}
	case PatternAlternating:
		a, stepA := g.between(1, 10), g.between(1, 5)
		b, stepB := g.between(20, 40), -g.between(1, 3)
		for i := range full {
			if i%2 == 0 {
				full[i] = a + (i/2)*stepA
			} else {
				full[i] = b + (i/2)*stepB
			}
		}
	}
	p.Sequence, p.Answer = full[:length], full[length]
	return p
}

// Patterns generates n sequences of the same difficulty.
func (g *Generator) Patterns(n int, d models.Difficulty) []Pattern {
	out := make([]Pattern, 0, n)
	for range n {
		out = append(out, g.Pattern(d))
	}
	return out
}
