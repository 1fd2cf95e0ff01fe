package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbaria/plants-api/internal/core/ports"
)

type collectingService struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (s *collectingService) Process(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *collectingService) snapshot() []ports.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func waitForEntries(t *testing.T, svc *collectingService, want int) []ports.AuditEntry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := svc.snapshot(); len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d entries, have %d", want, len(svc.snapshot()))
	return nil
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &collectingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	d.Record(ports.AuditEntry{Actor: "alice", Action: "login"})
	d.Record(ports.AuditEntry{Actor: "bob", Action: "plant_created", EntityID: "p1"})

	entries := waitForEntries(t, svc, 2)
	actions := map[string]bool{}
	for _, e := range entries {
		actions[e.Action] = true
	}
	if !actions["login"] || !actions["plant_created"] {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDispatcher_SameActorSameShard(t *testing.T) {
	d := NewDispatcher(4, &collectingService{}, zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("alice"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	// Workers are never started, so every buffer eventually fills and
	// Record must drop instead of blocking.
	d := NewDispatcher(1, &collectingService{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Record(ports.AuditEntry{Actor: "alice", Action: "login"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
