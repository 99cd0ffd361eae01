package bot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/metastore"
	"filevault_bot/platform/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// storageKeyPrefix is the object key namespace for uploaded files.
const storageKeyPrefix = "files/"

// progressEvent carries a total-scale percentage from the transfer worker to
// the goroutine that owns the progress message.
type progressEvent struct {
	phase   string
	percent float64
}

type transferResult struct {
	fileID string
	rec    metastore.FileRecord
	backup BackupOutcome
	err    error
}

// handleUpload runs the full upload flow for an inbound file message:
// size gate, temp copy, storage upload, metadata write, best-effort backup,
// temp cleanup, final reply. The transfer itself runs on a worker goroutine;
// progress events flow back over a channel drained here, so only this
// goroutine ever edits the progress message.
func (o *Orchestrator) handleUpload(ctx context.Context, msg telegram.Message) {
	att := msg.Attachment

	if att.Size > o.maxFileSize {
		_, _ = o.gw.SendMessage(ctx, msg.ChatID, msgTooLarge, nil)
		return
	}

	progressID, err := o.gw.SendMessage(ctx, msg.ChatID, msgUploadStarting, nil)
	if err != nil {
		o.log.Warn("failed to start upload conversation", "error", err, "chat_id", msg.ChatID)
		return
	}

	if err := os.MkdirAll(o.tempDir, 0o755); err != nil {
		o.log.Error("failed to create temp dir", "error", err, "dir", o.tempDir)
		_ = o.gw.EditMessage(ctx, msg.ChatID, progressID, errorText(apperr.Internal("temporary storage unavailable")), nil)
		return
	}
	tempPath := filepath.Join(o.tempDir, "upload_"+uuid.NewString())
	defer o.cleanupTemp(tempPath)

	progress := make(chan progressEvent, 64)
	done := make(chan transferResult, 1)
	go func() {
		res := o.runTransfer(ctx, att, msg.UserID, tempPath, progress)
		close(progress)
		done <- res
	}()

	for ev := range progress {
		// Edit failures are ignored; the next event redraws the bar.
		_ = o.gw.EditMessage(ctx, msg.ChatID, progressID, renderProgress(ev.phase, ev.percent), nil)
	}
	res := <-done

	if res.err != nil {
		o.log.Error("upload failed", "error", res.err, "user_id", msg.UserID, "file_name", att.Name)
		if err := o.gw.EditMessage(ctx, msg.ChatID, progressID, errorText(res.err), nil); err != nil {
			_, _ = o.gw.SendMessage(ctx, msg.ChatID, errorText(res.err), nil)
		}
		return
	}

	o.log.UploadEvent("completed", res.fileID, res.rec.FileName, res.rec.FileSize, msg.UserID)
	_ = o.gw.EditMessage(ctx, msg.ChatID, progressID,
		uploadSuccessText(res.fileID, res.rec), uploadSuccessKeyboard(res.fileID))
}

// runTransfer performs the blocking download and upload off the update
// goroutine. Metadata is written only after the storage upload succeeds.
func (o *Orchestrator) runTransfer(ctx context.Context, att *telegram.Attachment, ownerID int64, tempPath string, progress chan<- progressEvent) transferResult {
	err := o.gw.DownloadFile(ctx, att.Handle, tempPath, func(p float64) {
		progress <- progressEvent{phase: phaseDownload, percent: p / 2}
	})
	if err != nil {
		return transferResult{err: apperr.Wrap(apperr.KindUnavailable, "download from chat failed", err)}
	}

	now := time.Now()
	fileID := NewFileID(att.Handle, now)

	name := att.Name
	if name == "" {
		name = "file_" + fileID
	}

	mime := att.MimeType
	if mime == "" {
		if detected, derr := mimetype.DetectFile(tempPath); derr == nil {
			mime = detected.String()
		} else {
			mime = "application/octet-stream"
		}
	}

	key := storageKeyPrefix + fileID + "_" + name
	objectURL, err := o.storage.Upload(ctx, tempPath, key, mime, func(p float64) {
		progress <- progressEvent{phase: phaseUpload, percent: 50 + p/2}
	})
	if err != nil {
		return transferResult{err: apperr.Wrap(apperr.KindUnavailable, "upload to cloud storage failed", err)}
	}

	backup := o.relayBackup(ctx, tempPath, name, fileID)

	rec := metastore.FileRecord{
		FileName:        name,
		FileSize:        att.Size,
		FileType:        att.Kind,
		MimeType:        mime,
		OwnerID:         ownerID,
		UploadTimestamp: now.Format(time.RFC3339),
		StorageKey:      key,
		StorageURL:      objectURL,
		ChatFileID:      att.Handle,
		BackupMessageID: backup.MessageID,
	}
	if err := o.store.Put(fileID, rec); err != nil {
		// The record stays live in memory for this process; only the
		// on-disk rewrite failed.
		o.log.StoreError("put", err)
	}

	return transferResult{fileID: fileID, rec: rec, backup: backup}
}

// cleanupTemp removes the local copy on both success and failure paths.
func (o *Orchestrator) cleanupTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		o.log.Warn("failed to remove temp file", "error", err, "path", path)
	}
}
