package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedCourse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, s
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	client, s := newTestClient(t)
	helper := NewCacheHelper(client, "course:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedCourse{ID: 1, Title: "Go"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !s.Exists("course:id:1") {
		t.Fatal("expected prefixed key in redis")
	}

	var got cachedCourse
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Go" {
		t.Errorf("Get() = %+v", got)
	}

	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_TTL(t *testing.T) {
	client, s := newTestClient(t)
	helper := NewCacheHelper(client, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatal(err)
	}
	s.FastForward(2 * time.Minute)

	var v int
	if err := helper.Get(ctx, "k", &v); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected expired key, got %v", err)
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "course:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set() with nil client should be a no-op, got %v", err)
	}
	var v int
	if err := helper.Get(ctx, "k", &v); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	client, _ := newTestClient(t)
	helper := NewCacheHelper(client, "course:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedCourse{ID: 9, Title: "Cached"}, nil
	}

	for i := 0; i < 3; i++ {
		var got cachedCourse
		if err := helper.CacheOrExecute(ctx, "id:9", &got, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute() error = %v", err)
		}
		if got.Title != "Cached" {
			t.Errorf("got %+v", got)
		}
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestCacheHelper_CacheOrExecute_FetchError(t *testing.T) {
	helper := NewCacheHelper(nil, "course:")
	wantErr := errors.New("db down")

	var got cachedCourse
	err := helper.CacheOrExecute(context.Background(), "id:1", &got, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	client, s := newTestClient(t)
	helper := NewCacheHelper(client, "user:")
	ctx := context.Background()

	for _, k := range []string{"u1:dashboard", "u1:profile", "u2:dashboard"} {
		if err := helper.Set(ctx, k, k, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "u1:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	if s.Exists("user:u1:dashboard") || s.Exists("user:u1:profile") {
		t.Error("u1 keys should be gone")
	}
	if !s.Exists("user:u2:dashboard") {
		t.Error("u2 key should remain")
	}
}

func TestCacheManager_InvalidateCourseCache(t *testing.T) {
	client, s := newTestClient(t)
	cm := NewCacheManager(client)
	ctx := context.Background()

	_ = cm.Course.Set(ctx, CourseKey(3), cachedCourse{ID: 3}, time.Minute)
	_ = cm.Stats.Set(ctx, CourseStatsKey(3), 10, time.Minute)

	InvalidateCourseCache(ctx, cm, 3)

	if s.Exists("course:id:3") || s.Exists("stats:course:3:enrollments") {
		t.Error("course cache entries should be removed")
	}
	if err := cm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}
