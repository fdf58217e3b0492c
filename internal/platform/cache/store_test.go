package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "knight:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "knight:id:1", 1)
	store.Set(ctx, "knight:list:", 2)
	store.Set(ctx, "stigma:list", 3)

	store.DeletePrefix(ctx, "knight:")

	if _, ok := store.Get(ctx, "knight:id:1"); ok {
		t.Fatalf("expected knight entry removed")
	}
	if _, ok := store.Get(ctx, "stigma:list"); !ok {
		t.Fatalf("expected stigma entry kept")
	}
}

func TestLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	var calls atomic.Int32
	boom := errors.New("boom")

	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 42, nil
	}

	if _, err := Load(ctx, store, "role:u1", loader); !errors.Is(err, boom) {
		t.Fatalf("unexpected error: got=%v want=%v", err, boom)
	}
	got, err := Load(ctx, store, "role:u1", loader)
	if err != nil {
		t.Fatalf("second Load error: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected value: got=%d want=42", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
