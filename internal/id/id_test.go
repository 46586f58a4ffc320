package id

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// isULID reports whether s has the 26-character Crockford Base32 form.
func isULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(ulidAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

func TestULID_Format(t *testing.T) {
	id := ULID()
	if len(id) != 26 {
		t.Errorf("ULID() length = %d, want 26", len(id))
	}
	if !isULID(id) {
		t.Errorf("ULID() = %q is not a valid ULID", id)
	}
	if strings.ContainsAny(id, "ILOU") {
		t.Errorf("ULID() = %q contains excluded alphabet characters", id)
	}
}

func TestULID_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ULID()
		if seen[id] {
			t.Fatalf("ULID() produced duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestULID_Sortable(t *testing.T) {
	first := ULID()
	time.Sleep(2 * time.Millisecond)
	second := ULID()

	if !(first < second) {
		t.Errorf("ULIDs not time-sortable: %q >= %q", first, second)
	}
}

func TestULID_Concurrent(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := ULID()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate ULID %q under concurrency", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
