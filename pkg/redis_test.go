package pkg

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/careerkit/careerkit-service/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + s.Addr()})
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	defer client.Close()
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.Config{RedisURL: "://bad"}); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
