package facts

import (
	"slices"
	"sync"
)

const (
	// MaxProduct bounds every product and dividend in the catalog.
	MaxProduct = 100

	// MaxFactor bounds the paired factor of a drilled multiplication and
	// the quotient of a drilled division.
	MaxFactor = 10
)

// Catalog indexes every fact a × b ≤ MaxProduct by operand.
// A Catalog is read-only after construction.
type Catalog struct {
	products  map[int][]Problem // keyed by the first factor
	quotients map[int][]Problem // keyed by divisor
}

// NewCatalog builds the catalog of facts whose product does not exceed
// maxProduct. Facts are generated for 1 ≤ a ≤ b and then indexed under both
// orderings, so every sequence is sorted by the partner operand.
func NewCatalog(maxProduct int) *Catalog {
	c := &Catalog{
		products:  make(map[int][]Problem),
		quotients: make(map[int][]Problem),
	}
	for a := 1; a*a <= maxProduct; a++ {
		for b := a; a*b <= maxProduct; b++ {
			c.products[a] = append(c.products[a], NewProduct(a, b))
			c.quotients[a] = append(c.quotients[a], NewQuotient(a, b))
			if a != b {
				c.products[b] = append(c.products[b], NewProduct(b, a))
				c.quotients[b] = append(c.quotients[b], NewQuotient(b, a))
			}
		}
	}
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return NewCatalog(MaxProduct)
})

// Default returns the process-wide catalog, building it on first use.
func Default() *Catalog {
	return defaultCatalog()
}

// Lookup returns the facts indexed under operand for mode. Multiplication
// facts are keyed by their first factor, division facts by their divisor.
// Unknown operands yield an empty result. The returned slice is a copy.
func (c *Catalog) Lookup(operand int, mode Mode) []Problem {
	var src []Problem
	switch mode {
	case Multiplication:
		src = c.products[operand]
	case Division:
		src = c.quotients[operand]
	}
	return slices.Clone(src)
}

// Operands returns the sorted operands that have at least one fact in mode.
func (c *Catalog) Operands(mode Mode) []int {
	idx := c.products
	if mode == Division {
		idx = c.quotients
	}
	out := make([]int, 0, len(idx))
	for k := range idx {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of indexed facts for mode.
func (c *Catalog) Len(mode Mode) int {
	idx := c.products
	if mode == Division {
		idx = c.quotients
	}
	n := 0
	for _, ps := range idx {
		n += len(ps)
	}
	return n
}

// Lookup queries the default catalog.
func Lookup(operand int, mode Mode) []Problem {
	return Default().Lookup(operand, mode)
}
