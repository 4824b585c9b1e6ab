package tod

import "iter"

// Robust iterates *list by index, re-reading its length on every step, so the
// slice may be appended to or shrunk while the loop body runs.
//
// With includeNew set, elements appended during the traversal are visited
// before it ends. Without it, the traversal stops at the length the slice had
// when iteration began. Either way the bound is clamped to the live length, so
// removals never index past the end.
func Robust[T any](list *[]T, includeNew bool) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		initial := len(*list)
		for i := 0; ; i++ {
			n := len(*list)
			if !includeNew && initial < n {
				n = initial
			}
			if i >= n {
				return
			}
			if !yield(i, (*list)[i]) {
				return
			}
		}
	}
}
