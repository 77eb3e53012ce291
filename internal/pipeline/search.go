package pipeline

// UpperBoundIndex returns the last index of items for which pred holds, or -1.
// items must be ordered so that pred is true for a prefix and false after it.
func UpperBoundIndex[T any](items []T, pred func(T) bool) int {
	lo, hi := 0, len(items)-1
	result := -1

	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		if pred(items[mid]) {
			result = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return result
}
