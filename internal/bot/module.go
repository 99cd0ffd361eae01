// Package bot implements the command and upload orchestrator. It receives
// inbound chat messages and button presses from the telegram adapter,
// enforces size and ownership policies, and drives the object storage
// adapter and the metadata store.
package bot

import (
	"sync"
	"time"

	"filevault_bot/internal/adapters/storage"
	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/metastore"
	"filevault_bot/platform/apperr"
	"filevault_bot/platform/config"
	"filevault_bot/platform/logger"
)

// Config combines the configuration the orchestrator needs: upload policy
// plus the storage identity shown in the connection test report.
type Config interface {
	config.BotConfig
	GetStorageBucket() string
	GetStorageRegion() string
}

// Orchestrator handles one conversation turn at a time per update; the
// telegram client may run turns for different chats concurrently.
type Orchestrator struct {
	gw      telegram.Gateway
	store   *metastore.Store
	storage storage.ObjectStorage
	log     *logger.Logger

	maxFileSize int64
	tempDir     string
	presignTTL  time.Duration
	bucket      string
	region      string

	// The backup destination is runtime-mutable through /setchannel.
	mu           sync.Mutex
	backupChatID int64
}

// New wires the orchestrator. The backup channel starts from configuration
// and can be changed at runtime via SetBackupChannel.
func New(gw telegram.Gateway, store *metastore.Store, objStore storage.ObjectStorage, cfg Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		gw:           gw,
		store:        store,
		storage:      objStore,
		log:          log,
		maxFileSize:  cfg.GetMaxFileSize(),
		tempDir:      cfg.GetTempDir(),
		presignTTL:   cfg.GetPresignTTL(),
		bucket:       cfg.GetStorageBucket(),
		region:       cfg.GetStorageRegion(),
		backupChatID: cfg.GetBackupChannelID(),
	}
}

// SetBackupChannel updates the best-effort backup destination. Zero disables
// the relay.
func (o *Orchestrator) SetBackupChannel(chatID int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.backupChatID = chatID
}

// BackupChannel returns the current backup destination, zero when disabled.
func (o *Orchestrator) BackupChannel() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.backupChatID
}

// authorize loads the record for fileID and enforces the owner check. Every
// read and action path goes through here, commands and buttons alike.
func (o *Orchestrator) authorize(userID int64, fileID string) (metastore.FileRecord, error) {
	rec, ok := o.store.Get(fileID)
	if !ok {
		return metastore.FileRecord{}, apperr.NotFound("file not found")
	}
	if rec.OwnerID != userID {
		return metastore.FileRecord{}, apperr.Forbidden("file belongs to another user")
	}
	return rec, nil
}
