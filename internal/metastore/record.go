// Package metastore provides the metadata store for uploaded files: an
// in-memory mapping persisted as a single JSON document, rewritten wholesale
// on every mutation. Mutations are serialized by a mutex inside the process;
// the on-disk format carries no version field and no locking, so a second
// writer process can lose updates (known limitation, dashboard is read-only).
package metastore

import "time"

// File type values stored in FileRecord.FileType.
const (
	TypeDocument = "document"
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypePhoto    = "photo"
)

// FileRecord is one entry per uploaded file. JSON field names are fixed by
// the on-disk document, which the dashboard process reads independently.
type FileRecord struct {
	FileName        string `json:"file_name"`
	FileSize        int64  `json:"file_size"`
	FileType        string `json:"file_type"`
	MimeType        string `json:"mime_type"`
	OwnerID         int64  `json:"owner_id"`
	UploadTimestamp string `json:"upload_timestamp"`
	StorageKey      string `json:"storage_key"`
	StorageURL      string `json:"storage_url"`
	ChatFileID      string `json:"chat_file_id"`
	BackupMessageID int    `json:"backup_message_id,omitempty"`
}

// UploadedAt parses the record's upload timestamp. The zero time is returned
// for records with a malformed timestamp.
func (r FileRecord) UploadedAt() time.Time {
	t, err := time.Parse(time.RFC3339, r.UploadTimestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Entry pairs a record with its external identifier for listings.
type Entry struct {
	FileID string
	FileRecord
}
