package spring

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

// ErrOverflow is returned when an arrangement count does not fit in uint64.
var ErrOverflow = errors.New("spring: arrangement count overflows uint64")

// Cache memoizes arrangement counts by Record key.
type Cache interface {
	Lookup(key string) (uint64, bool)
	Store(key string, n uint64)
}

// MapCache is an in-memory Cache. It is not safe for concurrent use; each
// Counter owns its own.
type MapCache map[string]uint64

// NewMapCache returns an empty MapCache.
func NewMapCache() MapCache { return make(MapCache) }

func (m MapCache) Lookup(key string) (uint64, bool) {
	n, ok := m[key]
	return n, ok
}

func (m MapCache) Store(key string, n uint64) { m[key] = n }

// NoCache disables memoization. Counts are identical, only slower.
type NoCache struct{}

func (NoCache) Lookup(string) (uint64, bool) { return 0, false }
func (NoCache) Store(string, uint64)         {}

// hypotheses are tried in this order at the first Unknown position.
var hypotheses = [...]Symbol{Damaged, Operational}

// Counter counts arrangements of Records. A Counter and its Cache belong to
// one input row; neither is safe for concurrent use.
type Counter struct {
	cache    Cache
	overflow bool
}

// NewCounter returns a Counter backed by cache. A nil cache disables
// memoization.
func NewCounter(cache Cache) *Counter {
	if cache == nil {
		cache = NoCache{}
	}
	return &Counter{cache: cache}
}

// Count returns the number of arrangements of r.
func (c *Counter) Count(r Record) (uint64, error) {
	n := c.count(r)
	if c.overflow {
		return 0, ErrOverflow
	}
	return n, nil
}

// CountRow reduces row once and counts the result.
func (c *Counter) CountRow(row Row) (uint64, error) {
	n := c.resolve(ReduceRow(row))
	if c.overflow {
		return 0, ErrOverflow
	}
	return n, nil
}

func (c *Counter) count(r Record) uint64 {
	if len(r.groups) == 0 {
		// Leftover unknowns are forced operational; a damaged symbol has no
		// group left to own it.
		if slices.Contains(r.symbols, Damaged) {
			return 0
		}
		return 1
	}
	if r.minLength() > len(r.symbols) {
		return 0
	}
	if n, ok := c.cache.Lookup(r.key); ok {
		return n
	}

	p := slices.Index(r.symbols, Unknown)
	if p < 0 {
		// Unreachable for Records built by Reduce.
		return c.resolve(Reduce(r.symbols, r.groups))
	}

	var total uint64
	for _, h := range hypotheses {
		next := slices.Clone(r.symbols)
		next[p] = h
		total = c.add(total, c.resolve(Reduce(next, r.groups)))
	}

	c.cache.Store(r.key, total)
	return total
}

func (c *Counter) resolve(o Outcome) uint64 {
	switch o.Kind {
	case Contradiction:
		return 0
	case Satisfied:
		return 1
	case Reduced:
		return c.count(o.Record)
	default:
		panic(fmt.Sprintf("spring: invalid outcome kind %d", o.Kind))
	}
}

func (c *Counter) add(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		c.overflow = true
	}
	return sum
}

// Arrangements counts row with a fresh memoized Counter.
func Arrangements(row Row) (uint64, error) {
	return NewCounter(NewMapCache()).CountRow(row)
}
