package dispatch

import "math/rand"

// Shuffle permutes queue in place with a Fisher-Yates walk from the end.
// Unseeded on purpose: each run shuffles independently and the order is never
// persisted. Empty and single-element queues are left untouched.
func Shuffle(queue []string) {
	for n := len(queue); n > 1; n-- {
		k := rand.Intn(n)
		queue[n-1], queue[k] = queue[k], queue[n-1]
	}
}
