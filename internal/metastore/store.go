package metastore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"

	"filevault_bot/platform/logger"
)

// Store owns the on-disk JSON document. Every mutation rewrites the whole
// file; record counts are assumed small enough for that to be acceptable.
type Store struct {
	mu    sync.Mutex
	path  string
	files map[string]FileRecord
	log   *logger.Logger
}

// Open loads the store from path. A missing file yields an empty store; a
// corrupt or unreadable file is logged and also yields an empty store rather
// than failing startup.
func Open(path string, log *logger.Logger) *Store {
	files, err := Snapshot(path)
	if err != nil {
		log.StoreError("load", err)
		files = map[string]FileRecord{}
	}
	return &Store{
		path:  path,
		files: files,
		log:   log,
	}
}

// Snapshot reads the JSON document at path without retaining any state.
// A missing file returns an empty mapping and no error. The dashboard
// process uses this directly for its read-only view.
func Snapshot(path string) (map[string]FileRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]FileRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := map[string]FileRecord{}
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Put inserts or overwrites a record and immediately persists the full
// mapping. An existing record under the same id is silently replaced.
func (s *Store) Put(fileID string, rec FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[fileID] = rec
	return s.save()
}

// Get returns the record for fileID, if present.
func (s *Store) Get(fileID string) (FileRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.files[fileID]
	return rec, ok
}

// ListByOwner returns all records owned by ownerID, most recent upload first.
func (s *Store) ListByOwner(ownerID int64) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []Entry
	for id, rec := range s.files {
		if rec.OwnerID == ownerID {
			entries = append(entries, Entry{FileID: id, FileRecord: rec})
		}
	}

	// RFC 3339 timestamps sort correctly as strings.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UploadTimestamp > entries[j].UploadTimestamp
	})
	return entries
}

// Remove deletes the record for fileID and persists. Returns false when the
// id is unknown.
func (s *Store) Remove(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileID]; !ok {
		return false
	}
	delete(s.files, fileID)
	if err := s.save(); err != nil {
		return false
	}
	return true
}

// Len returns the number of stored records across all owners.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// save serializes the full mapping and overwrites the file. There is no
// rollback on failure; the in-memory mapping keeps the new state.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.files, "", "  ")
	if err != nil {
		s.log.StoreError("save", err)
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.StoreError("save", err)
		return err
	}
	return nil
}
