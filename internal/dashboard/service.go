// Package dashboard provides the read-only stats reporter. It runs as a
// separate process and loads the same JSON metadata document the bot writes,
// with no coordination between the two (accepted limitation).
package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"filevault_bot/internal/metastore"
	"filevault_bot/platform/logger"
)

// Stats is the aggregate view rendered on the dashboard and served from
// /api/stats.
type Stats struct {
	TotalFiles    int            `json:"total_files"`
	TotalSize     string         `json:"total_size"`
	FileTypes     map[string]int `json:"file_types"`
	RecentUploads int            `json:"recent_uploads"`
	StorageRegion string         `json:"storage_region"`
	BackupChannel string         `json:"backup_channel"`
}

// FileSummary is one row of the recent-files listing.
type FileSummary struct {
	FileID  string `json:"file_id"`
	Name    string `json:"name"`
	Size    string `json:"size"`
	Type    string `json:"type"`
	Date    string `json:"date"`
	OwnerID int64  `json:"owner_id"`
}

// Service computes statistics over the metadata document. The file is
// re-read on every request so the dashboard tracks the bot without sharing
// a process.
type Service struct {
	dbPath        string
	storageRegion string
	backupChannel string
	log           *logger.Logger
	now           func() time.Time
}

// New creates the stats service.
func New(cfg Config, log *logger.Logger) *Service {
	backup := "Not configured"
	if cfg.GetBackupChannelID() != 0 {
		backup = strconv.FormatInt(cfg.GetBackupChannelID(), 10)
	}
	return &Service{
		dbPath:        cfg.GetFilesDBPath(),
		storageRegion: cfg.GetStorageRegion(),
		backupChannel: backup,
		log:           log,
		now:           time.Now,
	}
}

// Config is the slice of application configuration the dashboard needs.
type Config interface {
	GetFilesDBPath() string
	GetStorageRegion() string
	GetBackupChannelID() int64
}

// load reads the metadata document. Missing or corrupt files degrade to an
// empty view rather than an error page.
func (s *Service) load() map[string]metastore.FileRecord {
	files, err := metastore.Snapshot(s.dbPath)
	if err != nil {
		s.log.StoreError("snapshot", err)
		return map[string]metastore.FileRecord{}
	}
	return files
}

// Stats computes the aggregate view. "Recent" counts uploads less than 24
// hours old, not calendar-day aligned.
func (s *Service) Stats() Stats {
	files := s.load()

	var totalSize int64
	fileTypes := map[string]int{}
	recent := 0
	now := s.now()

	for _, rec := range files {
		totalSize += rec.FileSize
		fileTypes[rec.FileType]++

		uploaded := rec.UploadedAt()
		if !uploaded.IsZero() && now.Sub(uploaded) < 24*time.Hour {
			recent++
		}
	}

	return Stats{
		TotalFiles:    len(files),
		TotalSize:     formatBytes(totalSize),
		FileTypes:     fileTypes,
		RecentUploads: recent,
		StorageRegion: s.storageRegion,
		BackupChannel: s.backupChannel,
	}
}

// RecentFiles returns up to limit files, most recent upload first.
func (s *Service) RecentFiles(limit int) []FileSummary {
	files := s.load()

	summaries := make([]FileSummary, 0, len(files))
	for id, rec := range files {
		summaries = append(summaries, FileSummary{
			FileID:  id,
			Name:    rec.FileName,
			Size:    formatBytes(rec.FileSize),
			Type:    rec.FileType,
			Date:    rec.UploadTimestamp,
			OwnerID: rec.OwnerID,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// formatBytes renders a byte count with 1024-based units and one decimal.
func formatBytes(size int64) string {
	value := float64(size)
	for _, unit := range byteUnits[:len(byteUnits)-1] {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f PB", value)
}
