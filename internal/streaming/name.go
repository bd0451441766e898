package streaming

import (
	"math/rand"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// WorkerName returns a random name identifying a map worker to the shuffle
// server.
func WorkerName() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}

	return "worker-" + string(b)
}
