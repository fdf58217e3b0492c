package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("battle-1:user-1", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "liked", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if g.InFlight("battle-1:user-1") {
		t.Fatalf("expected key to be released after completion")
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	a, _, _ := g.Do("a", func() (any, error) { return 1, nil })
	b, _, _ := g.Do("b", func() (any, error) { return 2, nil })
	if a.(int) != 1 || b.(int) != 2 {
		t.Fatalf("unexpected values: a=%v b=%v", a, b)
	}
}
