package knn

import (
	"sort"
)

// Nearest returns the k smallest pairs in ascending order. The input is not
// modified.
func Nearest(pairs []Pair, k int) []Pair {
	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	if k >= 0 && k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// Vote returns the most frequent label among neighbors, which must be in
// ascending order. Among equally frequent labels the one that occurs first
// wins, that is the label of the closest tied neighbour.
func Vote(neighbors []Pair) (string, error) {
	if len(neighbors) == 0 {
		return "", ErrNoNeighbors
	}

	counts := make(map[string]int)
	var order []string
	for _, n := range neighbors {
		if counts[n.Label] == 0 {
			order = append(order, n.Label)
		}
		counts[n.Label]++
	}

	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}

	return best, nil
}

func Predict(pairs []Pair, k int) (string, error) {
	return Vote(Nearest(pairs, k))
}

// Combine keeps the local k nearest pairs of one map task. The global k
// nearest are always among the union of every task's local k nearest, so
// combining does not change the prediction.
func Combine(pairs []Pair, k int) []Pair {
	return Nearest(pairs, k)
}
