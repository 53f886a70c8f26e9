package tle

// Partition groups items into consecutive non-overlapping slices of length
// n, dropping a short remainder. The record parser uses it with n = 3 for
// name/line1/line2 triplets, but it works for any n-grouping:
//
//	Partition([]int{0, 1, 2, 3, 4, 5, 6, 7}, 3)
//	// [[0 1 2] [3 4 5]]
func Partition[T any](items []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	groups := make([][]T, 0, len(items)/n)
	for i := 0; i+n <= len(items); i += n {
		groups = append(groups, items[i:i+n])
	}
	return groups
}

// PartitionRest is Partition keeping a short trailing group:
//
//	PartitionRest([]int{0, 1, 2, 3, 4, 5, 6, 7}, 3)
//	// [[0 1 2] [3 4 5] [6 7]]
//
// Callers feeding an incomplete triplet to FromLines get a
// MalformedLineError back.
func PartitionRest[T any](items []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	groups := Partition(items, n)
	if rem := len(items) % n; rem != 0 {
		groups = append(groups, items[len(items)-rem:])
	}
	return groups
}
