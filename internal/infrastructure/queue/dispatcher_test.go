package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/core/domain"
)

type captureSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	seen   chan struct{}
}

func newCaptureSink(expected int) *captureSink {
	return &captureSink{seen: make(chan struct{}, expected)}
}

func (s *captureSink) Record(_ context.Context, event domain.AuthEvent) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.seen <- struct{}{}
	return nil
}

func (s *captureSink) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	sink := newCaptureSink(3)
	d := NewDispatcher(2, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 3; i++ {
		d.Enqueue(domain.AuthEvent{
			Phone: fmt.Sprintf("055512345%d", i),
			Kind:  domain.AuthLoginOK,
			At:    time.Now().UTC(),
		})
	}

	sink.wait(t, 3)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(sink.events))
	}
}

func TestDispatcher_PreservesPerPhoneOrder(t *testing.T) {
	const perPhone = 50

	sink := newCaptureSink(2 * perPhone)
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perPhone; i++ {
		d.Enqueue(domain.AuthEvent{Phone: "0555111111", Kind: domain.AuthLoginFailed, Detail: fmt.Sprintf("%d", i)})
		d.Enqueue(domain.AuthEvent{Phone: "0555222222", Kind: domain.AuthLoginFailed, Detail: fmt.Sprintf("%d", i)})
	}

	sink.wait(t, 2*perPhone)

	sink.mu.Lock()
	defer sink.mu.Unlock()

	last := map[string]int{"0555111111": -1, "0555222222": -1}
	for _, ev := range sink.events {
		var seq int
		if _, err := fmt.Sscanf(ev.Detail, "%d", &seq); err != nil {
			t.Fatalf("bad detail %q: %v", ev.Detail, err)
		}
		if seq <= last[ev.Phone] {
			t.Fatalf("order violated for %s: %d after %d", ev.Phone, seq, last[ev.Phone])
		}
		last[ev.Phone] = seq
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newCaptureSink(0), zerolog.Nop())

	first := d.shardIndex("0555123456")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("0555123456"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}
