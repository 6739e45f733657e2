package defs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "bots.yaml")
	if err := os.WriteFile(table, []byte(minimalTable), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	w, err := NewWatcher(table)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(table, []byte(minimalTable), 0o644); err != nil {
		t.Fatalf("rewrite table: %v", err)
	}
	select {
	case got := <-w.Events:
		if filepath.Base(got) != "bots.yaml" {
			t.Fatalf("unexpected event path %q", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for a watched file write")
	}

	// A sibling file in the same directory stays silent, even with a
	// definition-looking extension.
	sibling := filepath.Join(dir, "notes.yaml")
	if err := os.WriteFile(sibling, []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case got, ok := <-w.Events:
		if ok {
			t.Fatalf("unexpected event for unwatched file: %q", got)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "bots.yaml")
	if err := os.WriteFile(table, []byte(minimalTable), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	w, err := NewWatcher(table)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel still open after close")
	}
}
