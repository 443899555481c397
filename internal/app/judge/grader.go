package judge

import (
	"math/rand"
	"strings"
	"sync"

	"codearena/internal/domain/model"
)

// Rand is the grader's only source of randomness. Injecting it keeps
// the fallback branches reproducible under a fixed seed.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded Rand that is safe for concurrent use by
// the judging goroutines.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// Grader approximates a verdict by surface patterns in the source text
// instead of executing it. The keyword rules are deterministic; only
// the "unrecognized structure" branches draw from rng.
type Grader struct {
	rng Rand
}

func New(rng Rand) *Grader {
	return &Grader{rng: rng}
}

// Evaluate reports whether the submission is accepted. code must
// already be case-folded; the problem title is folded here.
func (g *Grader) Evaluate(code, problemTitle, language string) bool {
	if strings.Contains(code, "syntax error") || strings.TrimSpace(code) == "" {
		return false
	}

	title := strings.ToLower(problemTitle)

	if language == model.LanguageCPP {
		if !strings.Contains(code, "#include") && !strings.Contains(code, "cout") && !strings.Contains(code, "cin") {
			// No recognizable C++ structure; benefit of the doubt.
			return g.rng.Float64() > 0.7
		}

		if strings.Contains(title, "add") && strings.Contains(code, "+") {
			return true
		}
		if strings.Contains(title, "square") && (strings.Contains(code, "*") || strings.Contains(code, "pow")) {
			return true
		}
		if strings.Contains(title, "factorial") && strings.Contains(code, "*") {
			return true
		}

		if strings.Contains(code, "cin") && strings.Contains(code, "cout") {
			return g.rng.Float64() > 0.3
		}
		return false
	}

	if strings.Contains(title, "add") && (strings.Contains(code, "+") || strings.Contains(code, "add")) {
		return true
	}
	if strings.Contains(title, "square") && (strings.Contains(code, "*") || strings.Contains(code, "math.pow") || strings.Contains(code, "**")) {
		return true
	}
	if strings.Contains(title, "factorial") && (strings.Contains(code, "factorial") || strings.Contains(code, "*")) {
		return true
	}

	if strings.Contains(code, "scanner") || strings.Contains(code, "input") {
		return g.rng.Float64() > 0.3
	}

	return false
}
