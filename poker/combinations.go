package poker

import "iter"

// combinations yields every k-element subset of items, preserving the order of
// items within each subset and advancing subsets lexicographically by index.
//
// The yielded slice is reused between iterations; copy it to keep it.
func combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		if k < 0 || k > n {
			return
		}

		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		buf := make([]T, k)

		for {
			for i, j := range idx {
				buf[i] = items[j]
			}
			if !yield(buf) {
				return
			}

			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
