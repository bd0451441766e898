package knn

import (
	"fmt"
	"math"
)

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: dimension %d vs %d", ErrArity, len(a), len(b))
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum), nil
}
