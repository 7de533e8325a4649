package store

import (
	"bytes"
	"context"
	"testing"
)

func TestMemoryKVMissingKeyReturnsNil(t *testing.T) {
	kv := NewMemoryKV()
	v, err := kv.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get missing: unexpected error %v", err)
	}
	if v != nil {
		t.Fatalf("get missing: want nil, got %q", v)
	}
}

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, "k", []byte("value-1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(v, []byte("value-1")) {
		t.Fatalf("get: want value-1, got %q", v)
	}

	if err := kv.Set(ctx, "k", []byte("value-2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _ = kv.Get(ctx, "k")
	if !bytes.Equal(v, []byte("value-2")) {
		t.Fatalf("overwrite: want value-2, got %q", v)
	}
}

func TestMemoryKVDelete(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v, _ := kv.Get(ctx, "k"); v != nil {
		t.Fatalf("after delete: want nil, got %q", v)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("double delete must be a no-op, got %v", err)
	}
}

func TestMemoryKVCopiesOnBothSides(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	in := []byte("original")
	if err := kv.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'X'

	out, _ := kv.Get(ctx, "k")
	if !bytes.Equal(out, []byte("original")) {
		t.Fatalf("store shares the caller's buffer: got %q", out)
	}

	out[0] = 'Y'
	again, _ := kv.Get(ctx, "k")
	if !bytes.Equal(again, []byte("original")) {
		t.Fatalf("reader mutated the stored value: got %q", again)
	}
}
