package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("got %q ok=%v, want v", got, ok)
	}
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Hour)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(time.Hour + time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestMemoryZeroTTLIsNoop(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"), 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("zero ttl should not store")
	}
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}
