package bot

import (
	"testing"
	"time"
)

func TestNewFileIDShape(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	id := NewFileID("tg-handle-1", now)

	if len(id) != 16 {
		t.Fatalf("file id %q should be 16 characters", id)
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("file id %q contains non-hex character %q", id, r)
		}
	}
}

func TestNewFileIDDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	if NewFileID("tg-handle-1", now) != NewFileID("tg-handle-1", now) {
		t.Fatal("same handle and instant must yield the same id")
	}
	if NewFileID("tg-handle-1", now) == NewFileID("tg-handle-2", now) {
		t.Fatal("different handles must yield different ids")
	}
	if NewFileID("tg-handle-1", now) == NewFileID("tg-handle-1", now.Add(time.Nanosecond)) {
		t.Fatal("different instants must yield different ids")
	}
}
