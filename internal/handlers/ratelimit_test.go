package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/careerkit-service/internal/testutil"
	"github.com/careerkit/careerkit-service/internal/utils"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter()
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "u1", 2, time.Minute); !ok {
			t.Fatalf("hit %d rejected", i+1)
		}
	}
	if ok, _ := limiter.Allow(ctx, "u1", 2, time.Minute); ok {
		t.Fatal("third hit allowed")
	}
	if ok, _ := limiter.Allow(ctx, "u2", 2, time.Minute); !ok {
		t.Fatal("other key rejected")
	}

	now = now.Add(61 * time.Second)
	if ok, _ := limiter.Allow(ctx, "u1", 2, time.Minute); !ok {
		t.Fatal("hit after window rejected")
	}
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "ai:u1", 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !ok {
			t.Fatalf("hit %d rejected", i+1)
		}
	}
	if ok, _ := limiter.Allow(ctx, "ai:u1", 3, time.Minute); ok {
		t.Fatal("fourth hit allowed")
	}
	if ttl := mr.TTL("ratelimit:ai:u1"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v, want within one minute", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, _ := limiter.Allow(ctx, "ai:u1", 3, time.Minute); !ok {
		t.Fatal("hit after expiry rejected")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := utils.NewSlogLogger(testutil.NewTestLogger())

	router := gin.New()
	router.Use(headerAuth())
	router.POST("/generate", RateLimitMiddleware(NewRedisLimiter(client), "ai", 1, time.Minute, logger), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.Header.Set("X-Test-User", user)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("u1"); code != http.StatusCreated {
		t.Fatalf("first = %d", code)
	}
	if code := send("u1"); code != http.StatusTooManyRequests {
		t.Fatalf("second = %d, want 429", code)
	}
	if code := send("u2"); code != http.StatusCreated {
		t.Fatalf("other user = %d", code)
	}

	// an unavailable limiter does not block requests
	mr.Close()
	if code := send("u1"); code != http.StatusCreated {
		t.Fatalf("with redis down = %d, want 201", code)
	}
}
