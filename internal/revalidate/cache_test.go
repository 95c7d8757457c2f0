package revalidate

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recordingObserver struct {
	mu          sync.Mutex
	served      []string
	revalidated []string
}

func (r *recordingObserver) PageServed(path string, hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := "miss"
	if hit {
		state = "hit"
	}
	r.served = append(r.served, path+":"+state)
}

func (r *recordingObserver) Revalidated(path string, stale bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := "noop"
	if stale {
		state = "evicted"
	}
	r.revalidated = append(r.revalidated, path+":"+state)
}

func counterBuild(calls *int) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		*calls++
		return []byte("page"), nil
	}
}

func TestPageCachesUntilRevalidated(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	cache := New(NewMemory(), WithObserver(obs))

	calls := 0
	for i := 0; i < 2; i++ {
		page, err := cache.Page(ctx, "/configuracion/empresas", counterBuild(&calls))
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		if string(page) != "page" {
			t.Fatalf("unexpected page %q", page)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one build, got %d", calls)
	}

	if err := cache.Revalidate(ctx, "/configuracion/empresas/"); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if _, err := cache.Page(ctx, "/configuracion/empresas", counterBuild(&calls)); err != nil {
		t.Fatalf("page: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected rebuild after revalidate, got %d builds", calls)
	}

	want := []string{"/configuracion/empresas:miss", "/configuracion/empresas:hit", "/configuracion/empresas:miss"}
	if diff := cmp.Diff(want, obs.served); diff != "" {
		t.Fatalf("served mismatch (-want +got):\n%s", diff)
	}
}

func TestRevalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	cache := New(nil, WithObserver(obs))

	if _, err := cache.Page(ctx, "/configuracion/transportistas", func(context.Context) ([]byte, error) { return []byte("x"), nil }); err != nil {
		t.Fatalf("page: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := cache.Revalidate(ctx, "/configuracion/transportistas"); err != nil {
			t.Fatalf("revalidate %d: %v", i, err)
		}
	}
	if err := cache.Revalidate(ctx, "/never/cached"); err != nil {
		t.Fatalf("revalidate unknown path: %v", err)
	}

	want := []string{"/configuracion/transportistas:evicted", "/configuracion/transportistas:noop", "/never/cached:noop"}
	if diff := cmp.Diff(want, obs.revalidated); diff != "" {
		t.Fatalf("revalidated mismatch (-want +got):\n%s", diff)
	}
}

func TestPageBuildErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	cache := New(backend)
	boom := errors.New("db down")

	_, err := cache.Page(ctx, "/x", func(context.Context) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
	if backend.Len() != 0 {
		t.Fatalf("failed builds must not be stored")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return now }

	if err := backend.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := backend.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	now = now.Add(time.Minute)
	if _, ok, _ := backend.Get(ctx, "k"); ok {
		t.Fatalf("expected miss at expiry")
	}
	if backend.Len() != 0 {
		t.Fatalf("expired entry should be dropped")
	}
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	backend, err := DialRedis(ctx, url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer backend.Close()

	cache := New(backend, WithPrefix("test:"+t.Name()+":"), WithTTL(time.Minute))
	if _, err := cache.Page(ctx, "/p", func(context.Context) ([]byte, error) { return []byte("v"), nil }); err != nil {
		t.Fatalf("page: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := cache.Revalidate(ctx, "/p"); err != nil {
			t.Fatalf("revalidate: %v", err)
		}
	}
}
