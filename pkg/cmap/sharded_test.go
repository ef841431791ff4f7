package cmap

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},  // invalid → default
		{-1, DefaultShardCount}, // invalid → default
		{3, DefaultShardCount},  // not power of 2 → default
		{1, 1},
		{4, 4},
		{32, 32},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[string, int](tt.input)
			if got := m.ShardCount(); got != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMap_Basic(t *testing.T) {
	m := New[string, int]()

	m.Set("a", 1)
	m.Set("b", 2)

	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d,%v, want 1,true", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should report absent")
	}
	if !m.Has("b") {
		t.Error("Has(b) = false, want true")
	}
	if got := m.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}

	m.Set("a", 10)
	if v, _ := m.Get("a"); v != 10 {
		t.Errorf("Get(a) after overwrite = %d, want 10", v)
	}

	m.Delete("a")
	if m.Has("a") {
		t.Error("Has(a) after Delete = true, want false")
	}

	m.Clear()
	if got := m.Count(); got != 0 {
		t.Errorf("Count after Clear = %d, want 0", got)
	}
}

func TestMap_SetIfAbsent(t *testing.T) {
	m := New[string, string]()

	if !m.SetIfAbsent("k", "first") {
		t.Error("SetIfAbsent on empty map should store")
	}
	if m.SetIfAbsent("k", "second") {
		t.Error("SetIfAbsent on existing key should not store")
	}
	if v, _ := m.Get("k"); v != "first" {
		t.Errorf("value = %q, want first", v)
	}
}

func TestMap_Pop(t *testing.T) {
	m := New[string, int]()
	m.Set("k", 7)

	if v, ok := m.Pop("k"); !ok || v != 7 {
		t.Errorf("Pop(k) = %d,%v, want 7,true", v, ok)
	}
	if _, ok := m.Pop("k"); ok {
		t.Error("second Pop should report absent")
	}
}

func TestMap_NonStringKeys(t *testing.T) {
	m := New[int, string]()
	for i := 0; i < 100; i++ {
		m.Set(i, fmt.Sprintf("v%d", i))
	}
	if got := m.Count(); got != 100 {
		t.Errorf("Count = %d, want 100", got)
	}
	if v, ok := m.Get(42); !ok || v != "v42" {
		t.Errorf("Get(42) = %q,%v, want v42,true", v, ok)
	}
}

func TestMap_Concurrent(t *testing.T) {
	m := New[string, int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				if v, ok := m.Get(key); !ok || v != i {
					t.Errorf("Get(%s) = %d,%v, want %d,true", key, v, ok, i)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if got := m.Count(); got != 8*200 {
		t.Errorf("Count = %d, want %d", got, 8*200)
	}

	keys := m.Keys()
	sort.Strings(keys)
	if len(keys) != 8*200 {
		t.Errorf("Keys returned %d keys, want %d", len(keys), 8*200)
	}
}
