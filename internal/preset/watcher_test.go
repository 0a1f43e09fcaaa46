package preset

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherAppliesEdits(t *testing.T) {
	params := newParams(t)
	path := filepath.Join(t.TempDir(), "live.json")
	if err := Save(path, Preset{Frequency: 1, GainModDB: -60}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	applied := make(chan Preset, 16)
	w := NewWatcher(path, params, log.New(io.Discard, "", 0))
	w.OnApply = func(p Preset) {
		select {
		case applied <- p:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The watch is registered asynchronously; keep rewriting until seen.
	want := Preset{Frequency: 42, GainModDB: -6}
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

wait:
	for {
		select {
		case p := <-applied:
			if p == want {
				break wait
			}
		case <-tick.C:
			if err := Save(path, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
		case <-deadline:
			t.Fatal("watcher did not apply the edited preset")
		}
	}

	if got := params.Frequency.PlainValue(); got != 42 {
		t.Fatalf("frequency = %v, want 42", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope", "p.json"), newParams(t), log.New(io.Discard, "", 0))
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error for missing directory")
	}
}
