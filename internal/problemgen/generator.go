package problemgen

import (
	"math/rand"
	"slices"
	"time"

	"github.com/abhisek/mathdrill/internal/facts"
)

// GenerateInput describes the problem set to build.
type GenerateInput struct {
	Mode facts.Mode

	// Operands are the selected factors (multiplication) or divisors
	// (division). Duplicates are ignored.
	Operands []int

	// DividendRange restricts division dividends. The zero range is
	// unrestricted. Ignored for multiplication.
	DividendRange DividendRange

	// Count is the number of problems to return.
	Count int
}

// Generator builds shuffled problem sets from the fact catalog.
type Generator struct {
	catalog *facts.Catalog
	rnd     *rand.Rand
}

// New returns a Generator over the default catalog. A nil rnd is replaced
// by one seeded with the current time.
func New(rnd *rand.Rand) *Generator {
	return NewWithCatalog(facts.Default(), rnd)
}

// NewWithCatalog returns a Generator over the given catalog.
func NewWithCatalog(catalog *facts.Catalog, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{catalog: catalog, rnd: rnd}
}

// Generate returns exactly in.Count problems drawn from the selected
// operands, or an empty set when nothing matches. When fewer unique facts
// exist than requested, independently shuffled copies of the unique set are
// appended until the count is reached.
func (g *Generator) Generate(in GenerateInput) []facts.Problem {
	if in.Count <= 0 {
		return nil
	}
	unique := g.Unique(in)
	if len(unique) == 0 {
		return nil
	}

	if in.Mode == facts.Multiplication {
		for i, p := range unique {
			a, b := p.Operands()
			if a != b && g.rnd.Float64() < 0.5 {
				unique[i] = p.Swapped()
			}
		}
	}

	out := g.Shuffle(unique)
	for len(out) < in.Count {
		out = append(out, g.Shuffle(unique)...)
	}
	return out[:in.Count]
}

// Unique returns the deduplicated fact space for in, in catalog order and
// without shuffling or operand swapping.
func (g *Generator) Unique(in GenerateInput) []facts.Problem {
	operands := slices.Clone(in.Operands)
	slices.Sort(operands)
	operands = slices.Compact(operands)

	var out []facts.Problem
	seen := make(map[string]bool)
	for _, op := range operands {
		for _, p := range g.catalog.Lookup(op, in.Mode) {
			if !g.accept(p, in) {
				continue
			}
			if seen[p.Key()] {
				continue
			}
			seen[p.Key()] = true
			out = append(out, p)
		}
	}
	return out
}

// Capacity returns the number of distinct facts available for in.
func (g *Generator) Capacity(in GenerateInput) int {
	return len(g.Unique(in))
}

// Shuffle returns a uniformly permuted copy of ps (Fisher-Yates).
func (g *Generator) Shuffle(ps []facts.Problem) []facts.Problem {
	out := slices.Clone(ps)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (g *Generator) accept(p facts.Problem, in GenerateInput) bool {
	switch in.Mode {
	case facts.Multiplication:
		_, partner := p.Operands()
		return partner >= 1 && partner <= facts.MaxFactor
	case facts.Division:
		if p.Answer() > facts.MaxFactor {
			return false
		}
		return in.DividendRange.Contains(p.Dividend())
	}
	return false
}
