package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

func newTestTally(t *testing.T) (*ApplicationTally, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(newTestConfig("redis://" + mr.Addr()))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return NewApplicationTally(rc), mr
}

func TestApplicationTally_CountsPerCourse(t *testing.T) {
	tally, _ := newTestTally(t)
	ctx := context.Background()

	for _, course := range []string{"Data Science", "Web Development", "Data Science"} {
		counted, err := tally.Increment(ctx, uuid.New(), course)
		if err != nil {
			t.Fatalf("Increment(%q): %v", course, err)
		}
		if !counted {
			t.Fatalf("expected fresh event to be counted for %q", course)
		}
	}

	counts, err := tally.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["Data Science"] != 2 || counts["Web Development"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestApplicationTally_RedeliveryCountedOnce(t *testing.T) {
	tally, _ := newTestTally(t)
	ctx := context.Background()
	id := uuid.New()

	if _, err := tally.Increment(ctx, id, "Data Science"); err != nil {
		t.Fatalf("first Increment: %v", err)
	}
	counted, err := tally.Increment(ctx, id, "Data Science")
	if err != nil {
		t.Fatalf("second Increment: %v", err)
	}
	if counted {
		t.Fatal("expected redelivered event to be skipped")
	}

	counts, _ := tally.Counts(ctx)
	if counts["Data Science"] != 1 {
		t.Fatalf("expected 1, got %d", counts["Data Science"])
	}
}

func TestApplicationTally_EmptyCounts(t *testing.T) {
	tally, _ := newTestTally(t)

	counts, err := tally.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected empty tally, got %v", counts)
	}
}

func TestApplicationTally_CorruptValue(t *testing.T) {
	tally, mr := newTestTally(t)
	mr.HSet(TallyKey, "Data Science", "many")

	if _, err := tally.Counts(context.Background()); err == nil {
		t.Fatal("expected parse error for non-numeric tally")
	}
}

func TestApplicationTally_RedisDown(t *testing.T) {
	tally, mr := newTestTally(t)
	mr.Close()

	if _, err := tally.Increment(context.Background(), uuid.New(), "Data Science"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

func TestApplicationTally_MarkerExpires(t *testing.T) {
	tally, mr := newTestTally(t)
	id := uuid.New()

	if _, err := tally.Increment(context.Background(), id, "Data Science"); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if ttl := mr.TTL(tally.seenKey(id)); ttl != tallySeenTTL {
		t.Fatalf("marker TTL: got %v, want %v", ttl, tallySeenTTL)
	}
}

func TestApplicationTally_FailedIncrementLeavesNoMarker(t *testing.T) {
	tally, mr := newTestTally(t)
	ctx := context.Background()
	id := uuid.New()
	mr.HSet(TallyKey, "Data Science", "many")

	if _, err := tally.Increment(ctx, id, "Data Science"); err == nil {
		t.Fatal("expected HINCRBY on a non-integer field to fail")
	}
	if mr.Exists(tally.seenKey(id)) {
		t.Fatal("marker written although the count failed")
	}

	mr.HSet(TallyKey, "Data Science", "0")
	counted, err := tally.Increment(ctx, id, "Data Science")
	if err != nil {
		t.Fatalf("retry Increment: %v", err)
	}
	if !counted {
		t.Fatal("expected retried event to be counted")
	}
	counts, _ := tally.Counts(ctx)
	if counts["Data Science"] != 1 {
		t.Fatalf("expected 1, got %d", counts["Data Science"])
	}
}
