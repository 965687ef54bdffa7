package cache

import (
	"sync"
	"testing"
)

func TestStoreBasics(t *testing.T) {
	s := NewStore[int]()

	if _, ok := s.Get("a"); ok {
		t.Fatal("empty store should miss")
	}

	s.Set("a", 1)
	s.Set("b", 2)
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v)", v, ok)
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}

	s.Set("a", 3)
	if v, _ := s.Get("a"); v != 3 {
		t.Fatalf("Set should overwrite, got %d", v)
	}
	if s.Size() != 2 {
		t.Fatalf("overwrite must not grow the store, Size() = %d", s.Size())
	}

	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Fatal("deleted key should miss")
	}
	s.Delete("never-existed")
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%4))
			for j := 0; j < 100; j++ {
				s.Set(key, j)
				s.Get(key)
				s.Size()
			}
		}(i)
	}
	wg.Wait()
	if s.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", s.Size())
	}
}
