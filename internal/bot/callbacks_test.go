package bot

import (
	"context"
	"strings"
	"testing"

	"filevault_bot/internal/adapters/telegram"
)

func press(chatID, userID int64, data string) telegram.Callback {
	return telegram.Callback{
		ID:        "cb-1",
		ChatID:    chatID,
		MessageID: 55,
		UserID:    userID,
		Data:      data,
	}
}

func TestCallbacksAreAlwaysAnswered(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleCallback(context.Background(), press(100, 42, prefixStream+"ffffffffffffffff"))

	if len(h.gw.answered) != 1 {
		t.Fatalf("callback must be acknowledged even on failure, got %d answers", len(h.gw.answered))
	}
}

func TestFileButtonsEnforceOwnership(t *testing.T) {
	prefixes := []string{prefixDownload, prefixStream, prefixWeb, prefixMX, prefixVLC, prefixFileInfo, prefixDelete}

	for _, prefix := range prefixes {
		t.Run(strings.TrimSuffix(prefix, "_"), func(t *testing.T) {
			h := newHarness(t, 0)
			h.seedFile(t, "abc123def4567890", 42)

			h.orch.HandleCallback(context.Background(), press(100, 7, prefix+"abc123def4567890"))

			if h.gw.lastText(t) != deniedText {
				t.Fatalf("expected ownership rejection, got %q", h.gw.lastText(t))
			}
			if len(h.storage.presigned) != 0 {
				t.Fatal("denied press must not mint a signed URL")
			}
			if len(h.storage.deleted) != 0 {
				t.Fatal("denied press must not delete the object")
			}
		})
	}
}

func TestStreamButtonMintsFreshURLPerPress(t *testing.T) {
	h := newHarness(t, 0)
	h.seedFile(t, "abc123def4567890", 42)

	cb := press(100, 42, prefixStream+"abc123def4567890")
	h.orch.HandleCallback(context.Background(), cb)
	h.orch.HandleCallback(context.Background(), cb)

	if len(h.storage.presigned) != 2 {
		t.Fatalf("every press mints a fresh URL, got %d presign calls", len(h.storage.presigned))
	}
}

func TestDeleteButtonRemovesFile(t *testing.T) {
	h := newHarness(t, 0)
	rec := h.seedFile(t, "abc123def4567890", 42)

	h.orch.HandleCallback(context.Background(), press(100, 42, prefixDelete+"abc123def4567890"))

	if len(h.storage.deleted) != 1 || h.storage.deleted[0] != rec.StorageKey {
		t.Fatalf("expected object delete for %q, got %v", rec.StorageKey, h.storage.deleted)
	}
	if h.store.Len() != 0 {
		t.Fatal("record should be removed")
	}
}

func TestFileInfoButton(t *testing.T) {
	h := newHarness(t, 0)
	rec := h.seedFile(t, "abc123def4567890", 42)

	h.orch.HandleCallback(context.Background(), press(100, 42, prefixFileInfo+"abc123def4567890"))

	text := h.gw.lastText(t)
	if !strings.Contains(text, rec.FileName) || !strings.Contains(text, "abc123def4567890") {
		t.Fatalf("file info should name the file and its id: %q", text)
	}
}

func TestListButtonEmpty(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleCallback(context.Background(), press(100, 42, actionList))

	if !strings.Contains(h.gw.lastText(t), "No files found") {
		t.Fatalf("expected empty listing, got %q", h.gw.lastText(t))
	}
}

func TestConnectionTestButton(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleCallback(context.Background(), press(100, 42, actionTest))

	if !strings.Contains(h.gw.lastText(t), "Connected successfully") {
		t.Fatalf("expected connection result, got %q", h.gw.lastText(t))
	}
}
