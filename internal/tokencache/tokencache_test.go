package tokencache

import (
	"testing"

	"veil-client/pkg/types"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	sess := &types.Session{Uid: "sess-1", Token: "tok-1", Address: "0xabc"}
	if err := cache.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.Token != "tok-1" || got.Uid != "sess-1" {
		t.Errorf("Load = %+v, want the saved session", got)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	t.Parallel()

	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load on empty cache = %+v, want nil", got)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Clearing an empty cache is fine.
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear (empty): %v", err)
	}

	if err := cache.Save(&types.Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load after Clear = %+v, want nil", got)
	}
}
