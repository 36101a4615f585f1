// Package sample draws candidates from pools using a caller-owned random
// source.
package sample

// Source yields floats in [0, 1).
type Source interface {
	Float() float64
}

// index maps one draw onto [0, n).
func index(src Source, n int) int {
	i := int(src.Float() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// WithoutReplacement draws min(k, len(pool)) elements in draw order.
//
// Each draw picks a uniform index from a shrinking working copy and removes
// it, so no element is returned twice and k >= len(pool) returns every
// element. The input slice is not modified.
func WithoutReplacement[T any](src Source, pool []T, k int) []T {
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	work := make([]T, len(pool))
	copy(work, pool)
	if k > len(work) {
		k = len(work)
	}
	out := make([]T, 0, k)
	for len(out) < k {
		i := index(src, len(work))
		out = append(out, work[i])
		work = append(work[:i], work[i+1:]...)
	}
	return out
}

// PickUniqueBounded draws an element whose id is not in used.
//
// Once len(used) >= len(pool), or every id in pool is already used, uniqueness
// is exhausted: a single draw is made and returned even if it repeats. This
// keeps the loop finite when pool ids collide. The returned boolean is false
// only for an empty pool. used is not modified.
func PickUniqueBounded[T any](src Source, pool []T, used map[string]struct{}, id func(T) string) (T, bool) {
	var zero T
	if len(pool) == 0 {
		return zero, false
	}
	if len(used) >= len(pool) || !hasUnused(pool, used, id) {
		return pool[index(src, len(pool))], true
	}
	for {
		candidate := pool[index(src, len(pool))]
		if _, taken := used[id(candidate)]; !taken {
			return candidate, true
		}
	}
}

func hasUnused[T any](pool []T, used map[string]struct{}, id func(T) string) bool {
	for _, item := range pool {
		if _, taken := used[id(item)]; !taken {
			return true
		}
	}
	return false
}

// One draws a single element. It returns false for an empty pool.
func One[T any](src Source, pool []T) (T, bool) {
	var zero T
	if len(pool) == 0 {
		return zero, false
	}
	return pool[index(src, len(pool))], true
}
