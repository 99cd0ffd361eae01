package bot

import (
	"context"
	"strings"
	"testing"

	"filevault_bot/internal/metastore"
)

func TestUploadStoresRecord(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 10<<20))

	if len(h.storage.uploads) != 1 {
		t.Fatalf("expected 1 storage upload, got %d", len(h.storage.uploads))
	}
	upload := h.storage.uploads[0]
	if !strings.HasPrefix(upload.key, "files/") {
		t.Fatalf("storage key %q missing namespace prefix", upload.key)
	}
	if !strings.HasSuffix(upload.key, "_report.pdf") {
		t.Fatalf("storage key %q missing file name suffix", upload.key)
	}
	if upload.contentType != "application/pdf" {
		t.Fatalf("content type = %q", upload.contentType)
	}

	if h.store.Len() != 1 {
		t.Fatalf("expected 1 stored record, got %d", h.store.Len())
	}
	entries := h.store.ListByOwner(42)
	if len(entries) != 1 {
		t.Fatalf("expected record owned by uploader, got %d", len(entries))
	}
	rec := entries[0]
	if rec.FileType != metastore.TypeDocument {
		t.Fatalf("file type = %q", rec.FileType)
	}
	if rec.FileSize != 10<<20 {
		t.Fatalf("file size = %d", rec.FileSize)
	}
	if len(rec.FileID) != 16 {
		t.Fatalf("file id %q should be 16 hex characters", rec.FileID)
	}

	final := h.gw.lastText(t)
	if !strings.Contains(final, "Upload complete") {
		t.Fatalf("final message %q should confirm the upload", final)
	}
	if !strings.Contains(final, rec.FileID) {
		t.Fatalf("final message should carry the file id %q", rec.FileID)
	}
}

func TestUploadSizeGateBoundary(t *testing.T) {
	h := newHarness(t, 0)

	// Exactly at the limit passes.
	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 4<<30))
	if len(h.storage.uploads) != 1 {
		t.Fatalf("upload at the limit should pass, got %d uploads", len(h.storage.uploads))
	}
}

func TestUploadSizeGateRejectsOversize(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 4<<30+1))

	if len(h.storage.uploads) != 0 {
		t.Fatal("oversize file must not reach storage")
	}
	if h.store.Len() != 0 {
		t.Fatal("oversize file must not be recorded")
	}
	if h.gw.lastText(t) != msgTooLarge {
		t.Fatalf("expected size rejection, got %q", h.gw.lastText(t))
	}
}

func TestUploadProgressEditsEndWithSuccess(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if len(h.gw.edits) < 3 {
		t.Fatalf("expected progress edits plus the final one, got %d", len(h.gw.edits))
	}
	for _, e := range h.gw.edits[:len(h.gw.edits)-1] {
		if !strings.Contains(e.text, "Downloading") && !strings.Contains(e.text, "Uploading") {
			t.Fatalf("unexpected intermediate edit %q", e.text)
		}
	}
}

func TestUploadDownloadFailure(t *testing.T) {
	h := newHarness(t, 0)
	h.gw.downloadErr = errBoom

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if len(h.storage.uploads) != 0 {
		t.Fatal("failed download must not reach storage")
	}
	if h.store.Len() != 0 {
		t.Fatal("failed download must not be recorded")
	}
	if !strings.HasPrefix(h.gw.lastText(t), "❌") {
		t.Fatalf("expected error reply, got %q", h.gw.lastText(t))
	}
}

func TestUploadStorageFailure(t *testing.T) {
	h := newHarness(t, 0)
	h.storage.uploadErr = errBoom

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if h.store.Len() != 0 {
		t.Fatal("failed storage upload must not be recorded")
	}
	if !strings.HasPrefix(h.gw.lastText(t), "❌") {
		t.Fatalf("expected error reply, got %q", h.gw.lastText(t))
	}
}

func TestUploadRelaysBackup(t *testing.T) {
	h := newHarness(t, -1001234)

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if len(h.gw.documents) != 1 {
		t.Fatalf("expected 1 backup relay, got %d", len(h.gw.documents))
	}
	if h.gw.documents[0].chatID != -1001234 {
		t.Fatalf("backup sent to %d", h.gw.documents[0].chatID)
	}
	entries := h.store.ListByOwner(42)
	if len(entries) != 1 || entries[0].BackupMessageID != 777 {
		t.Fatalf("backup message id not recorded: %+v", entries)
	}
}

func TestUploadBackupFailureDoesNotFailUpload(t *testing.T) {
	h := newHarness(t, -1001234)
	h.gw.documentErr = errBoom

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if h.store.Len() != 1 {
		t.Fatal("upload should succeed despite backup failure")
	}
	entries := h.store.ListByOwner(42)
	if entries[0].BackupMessageID != 0 {
		t.Fatalf("failed backup must not record a message id, got %d", entries[0].BackupMessageID)
	}
	if !strings.Contains(h.gw.lastText(t), "Upload complete") {
		t.Fatalf("expected success reply, got %q", h.gw.lastText(t))
	}
}

func TestUploadWithoutBackupChannelSkipsRelay(t *testing.T) {
	h := newHarness(t, 0)

	h.orch.HandleMessage(context.Background(), docMessage(100, 42, 1<<20))

	if len(h.gw.documents) != 0 {
		t.Fatal("no backup channel configured, relay must be skipped")
	}
}
