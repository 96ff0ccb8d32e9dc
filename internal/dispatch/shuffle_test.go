package dispatch

import (
	"fmt"
	"sort"
	"testing"
)

func TestShuffleNoOpOnSmallInputs(t *testing.T) {
	t.Parallel()

	var empty []string
	Shuffle(empty)
	if len(empty) != 0 {
		t.Fatal("empty queue must stay empty")
	}

	one := []string{"a@b.co"}
	Shuffle(one)
	if one[0] != "a@b.co" {
		t.Fatalf("singleton changed: %v", one)
	}
}

func TestShufflePreservesElements(t *testing.T) {
	t.Parallel()
	queue := make([]string, 100)
	for i := range queue {
		queue[i] = fmt.Sprintf("user%03d@example.com", i)
	}
	orig := append([]string(nil), queue...)

	Shuffle(queue)
	if len(queue) != len(orig) {
		t.Fatalf("length changed: %d -> %d", len(orig), len(queue))
	}
	a := append([]string(nil), queue...)
	b := append([]string(nil), orig...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("element set changed at %d: %s vs %s", i, a[i], b[i])
		}
	}
}
