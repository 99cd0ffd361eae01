package bot

import (
	"context"
	"fmt"
)

// BackupStatus is the typed outcome of the best-effort backup relay.
type BackupStatus int

const (
	// BackupSkipped means no backup channel is configured.
	BackupSkipped BackupStatus = iota
	// BackupDone means the copy reached the backup channel.
	BackupDone
	// BackupFailed means the relay failed; the failure was logged and the
	// upload itself is unaffected.
	BackupFailed
)

// BackupOutcome reports what happened to the backup relay for one upload.
type BackupOutcome struct {
	Status    BackupStatus
	MessageID int
	Err       error
}

// relayBackup sends a copy of the uploaded file to the configured backup
// channel. It must never fail the overall upload.
func (o *Orchestrator) relayBackup(ctx context.Context, localPath, fileName, fileID string) BackupOutcome {
	chatID := o.BackupChannel()
	if chatID == 0 {
		return BackupOutcome{Status: BackupSkipped}
	}

	caption := fmt.Sprintf("Backup: %s\nFile ID: %s", fileName, fileID)
	msgID, err := o.gw.SendDocument(ctx, chatID, localPath, caption)
	if err != nil {
		o.log.Warn("backup relay failed", "error", err, "channel_id", chatID, "file_id", fileID)
		return BackupOutcome{Status: BackupFailed, Err: err}
	}

	return BackupOutcome{Status: BackupDone, MessageID: msgID}
}
