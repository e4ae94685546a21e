package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversEveryIndexExactlyOnce(t *testing.T) {
	const n = 137
	var seen [n]int32
	For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestForZeroIsNoop(t *testing.T) {
	called := false
	For(0, func(int) { called = true })
	if called {
		t.Fatal("fn should not be called for n=0")
	}
}

func TestForPropagatesPanicAfterBarrier(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}
	}()
	var completed int32
	For(8, func(i int) {
		if i == 3 {
			panic("boom")
		}
		atomic.AddInt32(&completed, 1)
	})
}
