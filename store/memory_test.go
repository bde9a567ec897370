package store

import (
	"bytes"
	"context"
	"testing"
)

func TestMemoryPutGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

func TestMemoryMiss(t *testing.T) {
	s := NewMemory()
	got, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("expected a miss, got %q", got)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	in := []byte("original")
	if err := s.Put(ctx, "k", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in[0] = 'X' // caller mutation must not reach the store

	got, _, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("original")) {
		t.Fatalf("stored value mutated: %q", got)
	}

	got[0] = 'Y' // returned slice is the caller's to scribble on
	again, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(again, []byte("original")) {
		t.Fatalf("returned slice aliased the store: %q", again)
	}
}

func TestMemoryCloseDrops(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("expected entries to be dropped on close")
	}
}
