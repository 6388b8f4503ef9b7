package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type item struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}

func TestMemoryStore_GetMiss(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrMiss) {
		t.Errorf("Expected ErrMiss, got %v", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Set(ctx, "post:hello", "v", time.Minute)
	if ok, _ := s.Exists(ctx, "post:hello"); !ok {
		t.Fatal("Expected key to exist before expiry")
	}

	now = now.Add(time.Minute)
	if ok, _ := s.Exists(ctx, "post:hello"); ok {
		t.Error("Expected key to expire after its TTL")
	}
}

func TestMemoryStore_DeleteByPattern(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "posts:list:page:1", "a", 0)
	_ = s.Set(ctx, "posts:list:page:2", "b", 0)
	_ = s.Set(ctx, "post:hello", "c", 0)

	if err := s.DeleteByPattern(ctx, "posts:list:*"); err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}

	if s.Len() != 1 {
		t.Errorf("Expected 1 key left, got %d", s.Len())
	}
	if ok, _ := s.Exists(ctx, "post:hello"); !ok {
		t.Error("Expected unrelated key to survive")
	}
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	SetJSON(ctx, s, "item", item{Title: "hi", Views: 3}, time.Minute)

	var got item
	if !GetJSON(ctx, s, "item", &got) {
		t.Fatal("Expected cache hit")
	}
	if got.Title != "hi" || got.Views != 3 {
		t.Errorf("Unexpected value %+v", got)
	}

	_ = s.Set(ctx, "broken", "{not json", time.Minute)
	if GetJSON(ctx, s, "broken", &got) {
		t.Error("Expected undecodable entry to be treated as a miss")
	}
}

func TestHelpersWithNilStore(t *testing.T) {
	ctx := context.Background()
	var got item

	SetJSON(ctx, nil, "k", item{}, time.Minute)
	Invalidate(ctx, nil, []string{"k"}, "p:*")
	if GetJSON(ctx, nil, "k", &got) {
		t.Error("Expected nil store to always miss")
	}
}

func TestInvalidate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "post:a", "1", 0)
	_ = s.Set(ctx, "posts:list:1", "2", 0)
	_ = s.Set(ctx, "settings:all", "3", 0)

	Invalidate(ctx, s, []string{"post:a"}, "posts:list:*")

	if s.Len() != 1 {
		t.Errorf("Expected only settings key to remain, got %d keys", s.Len())
	}
}
