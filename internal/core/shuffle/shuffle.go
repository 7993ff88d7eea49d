// Package shuffle permutes ingredient effect groups.
// This is part of the Functional Core - no I/O, only pure functions over the
// input set. The only concurrency is the fork-join uniqueness pass.
package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/example/alchemyrand/internal/core/effect"
)

// Method selects how effects are randomized.
type Method int

const (
	// MethodSwap moves whole groups between ingredients.
	MethodSwap Method = iota
	// MethodShuffle redistributes individual effects across ingredients.
	MethodShuffle
)

// DefaultMaxAttempts bounds the retry loop of a single uniqueness worker.
const DefaultMaxAttempts = 1_000_000

var (
	// ErrUnsatisfiable means some effect occurs on more slots than there are
	// ingredients, so no distribution can keep every group unique.
	ErrUnsatisfiable = errors.New("effect distribution cannot be made unique")
	// ErrRetryBudgetExhausted means a worker hit MaxAttempts.
	ErrRetryBudgetExhausted = errors.New("uniqueness retry budget exhausted")
	// ErrUnknownMethod is returned for Method values outside the enum.
	ErrUnknownMethod = errors.New("unknown shuffle method")
)

func (m Method) String() string {
	switch m {
	case MethodSwap:
		return "swap"
	case MethodShuffle:
		return "shuffle"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod converts the settings-file integer into a Method.
func ParseMethod(v int) (Method, error) {
	m := Method(v)
	if m != MethodSwap && m != MethodShuffle {
		return MethodSwap, fmt.Errorf("%w: %d", ErrUnknownMethod, v)
	}
	return m, nil
}

// Engine runs shuffles. The zero value uses one worker per CPU.
type Engine struct {
	// Workers is the parallelism used to size uniqueness chunks.
	Workers int
	// MaxAttempts caps passes per chunk. Zero means DefaultMaxAttempts.
	MaxAttempts int
}

// Result is the outcome of one Run.
type Result struct {
	Groups effect.Set
	// Chunks is the number of uniqueness workers started (Shuffle only).
	Chunks int
	// Passes is the total number of re-shuffles performed by all workers.
	Passes int
}

// NewEngine returns an engine using the given worker count (<=0 means NumCPU).
func NewEngine(workers int) *Engine {
	return &Engine{Workers: workers}
}

func (e *Engine) workers() int {
	if e == nil || e.Workers <= 0 {
		return runtime.NumCPU()
	}
	return e.Workers
}

func (e *Engine) maxAttempts() int {
	if e == nil || e.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return e.MaxAttempts
}

// Run shuffles a copy of set with the given seed and method. The input is
// never modified.
func (e *Engine) Run(set effect.Set, seed uint64, method Method) (Result, error) {
	switch method {
	case MethodSwap:
		return Result{Groups: Swap(set, seed)}, nil
	case MethodShuffle:
		return e.shuffle(set, seed)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}
}

// Swap returns a uniform permutation of the groups. Each group keeps its own
// four effects.
func Swap(set effect.Set, seed uint64) effect.Set {
	out := set.Clone()
	rng := newRand(seed)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (e *Engine) shuffle(set effect.Set, seed uint64) (Result, error) {
	if !feasible(set) {
		return Result{}, ErrUnsatisfiable
	}

	out := set.Clone()
	reshuffle(out, newRand(seed))
	if out.Unique() {
		return Result{Groups: out}, nil
	}

	spans := mergeInfeasible(out, partition(len(out), e.workers()))
	passes := make([]int, len(spans))
	budget := e.maxAttempts()

	var g errgroup.Group
	for i, sp := range spans {
		chunk := out[sp.lo:sp.hi]
		chunkSeed := ChunkSeed(seed, i)
		g.Go(func() error {
			n, err := settle(chunk, chunkSeed, budget)
			passes[i] = n
			if err != nil {
				return fmt.Errorf("chunk %d [%d,%d): %w", i, sp.lo, sp.hi, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	total := 0
	for _, n := range passes {
		total += n
	}
	return Result{Groups: out, Chunks: len(spans), Passes: total}, nil
}

// reshuffle flattens s, permutes the effects and writes them back in place.
func reshuffle(s effect.Set, rng *rand.Rand) {
	flat := s.Flatten()
	rng.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })
	copy(s, effect.Chunk(flat))
}

// settle re-shuffles chunk in place until every group in it is unique.
func settle(chunk effect.Set, seed uint64, budget int) (int, error) {
	rng := newRand(seed)
	passes := 0
	for !chunk.Unique() {
		if passes >= budget {
			return passes, ErrRetryBudgetExhausted
		}
		reshuffle(chunk, rng)
		passes++
	}
	return passes, nil
}

type span struct{ lo, hi int }

// maxChunk caps the groups one worker settles. Success odds for a pass fall
// off exponentially with chunk size.
const maxChunk = 8

// partition splits n groups into contiguous spans of n/workers groups,
// clamped to [1, maxChunk]. The remainder forms a final shorter span.
func partition(n, workers int) []span {
	if n == 0 {
		return nil
	}
	size := min(max(1, n/workers), maxChunk)
	spans := make([]span, 0, n/size+1)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		spans = append(spans, span{lo, hi})
	}
	return spans
}

// mergeInfeasible joins spans that could never become unique on their own
// with a neighbour until every span is feasible.
func mergeInfeasible(s effect.Set, spans []span) []span {
	for i := 0; i < len(spans); {
		if len(spans) == 1 || feasible(s[spans[i].lo:spans[i].hi]) {
			i++
			continue
		}
		if i+1 < len(spans) {
			spans[i].hi = spans[i+1].hi
			spans = append(spans[:i+1], spans[i+2:]...)
			continue
		}
		spans[i-1].hi = spans[i].hi
		spans = spans[:i]
		i--
	}
	return spans
}

// feasible reports whether the groups in s can be rearranged so that every
// group is unique: no base effect may occur more often than there are groups.
func feasible(s effect.Set) bool {
	for _, c := range s.BaseCounts() {
		if c > len(s) {
			return false
		}
	}
	return true
}
