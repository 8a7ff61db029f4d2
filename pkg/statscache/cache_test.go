package statscache

import (
	"testing"
	"time"

	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

func TestGetMissAndHit(t *testing.T) {
	cache := New(time.Minute, nil)

	if _, ok := cache.Get(700, review.UserScope); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	stats := &review.Stats{Total: 5, Learned: 2}
	cache.Put(700, review.UserScope, stats)

	got, ok := cache.Get(700, review.UserScope)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got.Total != 5 || got.Learned != 2 {
		t.Fatalf("unexpected cached stats %+v", got)
	}

	if _, ok := cache.Get(700, 3); ok {
		t.Fatal("expected a miss for a different set id")
	}
	if _, ok := cache.Get(900, review.UserScope); ok {
		t.Fatal("expected a miss for a different user")
	}
}

func TestEntriesExpire(t *testing.T) {
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	cache := New(time.Minute, func() time.Time { return now })

	cache.Put(700, review.UserScope, &review.Stats{Total: 1})
	now = now.Add(2 * time.Minute)

	if _, ok := cache.Get(700, review.UserScope); ok {
		t.Fatal("expected the entry to expire")
	}
}

func TestInvalidateUserGlobal(t *testing.T) {
	cache := New(time.Minute, nil)
	cache.Put(700, review.UserScope, &review.Stats{Total: 1})
	cache.Put(700, 3, &review.Stats{Total: 2})
	cache.Put(900, review.UserScope, &review.Stats{Total: 9})

	if err := cache.Invalidate(700, review.UserScope); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	if _, ok := cache.Get(700, review.UserScope); ok {
		t.Fatal("user-global entry should be gone")
	}
	if _, ok := cache.Get(700, 3); ok {
		t.Fatal("set entry should be gone after user-global invalidation")
	}
	if _, ok := cache.Get(900, review.UserScope); !ok {
		t.Fatal("other users' entries must survive")
	}
}

func TestInvalidateSingleSet(t *testing.T) {
	cache := New(time.Minute, nil)
	cache.Put(700, review.UserScope, &review.Stats{Total: 1})
	cache.Put(700, 3, &review.Stats{Total: 2})
	cache.Put(700, 4, &review.Stats{Total: 3})

	if err := cache.Invalidate(700, 3); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	if _, ok := cache.Get(700, 3); ok {
		t.Fatal("set 3 entry should be gone")
	}
	if _, ok := cache.Get(700, review.UserScope); ok {
		t.Fatal("user-global aggregate should be dropped with the set")
	}
	if _, ok := cache.Get(700, 4); !ok {
		t.Fatal("unrelated set entry must survive")
	}
}
