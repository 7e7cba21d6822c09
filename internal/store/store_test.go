package store

import (
	"testing"
)

func TestStore_Replace(t *testing.T) {
	s := New()

	if applied := s.Replace(1, sample()); !applied {
		t.Fatal("first replace must apply")
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}

	// A newer fetch replaces wholesale.
	newer := sample()[:2]
	if applied := s.Replace(2, newer); !applied {
		t.Fatal("newer replace must apply")
	}
	if s.Len() != 2 {
		t.Fatalf("Len after newer replace = %d, want 2", s.Len())
	}
}

func TestStore_DiscardsStaleFetch(t *testing.T) {
	s := New()
	s.Replace(5, sample())

	stale := sample()[:1]
	if applied := s.Replace(4, stale); applied {
		t.Error("a fetch older than the last applied one must be discarded")
	}
	if applied := s.Replace(5, stale); applied {
		t.Error("a fetch with the same sequence must be discarded")
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4 (stale data applied)", s.Len())
	}
	if s.Seq() != 5 {
		t.Errorf("Seq = %d, want 5", s.Seq())
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := New()
	s.Replace(1, sample())

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	if s.Snapshot()[0].Title == "mutated" {
		t.Error("Snapshot must not expose internal state")
	}
}
