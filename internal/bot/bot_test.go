package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"filevault_bot/internal/adapters/storage"
	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/metastore"
	"filevault_bot/platform/logger"
)

// fakeGateway records outbound chat traffic and simulates the platform side
// of file transfers.
type fakeGateway struct {
	sent      []sentMessage
	edits     []sentMessage
	documents []sentDocument
	answered  []string

	nextMessageID int
	sendErr       error
	downloadErr   error
	documentErr   error
	reachable     map[int64]bool
	downloadBody  []byte
}

type sentMessage struct {
	chatID int64
	text   string
	kb     telegram.Keyboard
}

type sentDocument struct {
	chatID  int64
	path    string
	caption string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		reachable:    map[int64]bool{},
		downloadBody: []byte("file contents"),
	}
}

func (g *fakeGateway) SendMessage(_ context.Context, chatID int64, text string, kb telegram.Keyboard) (int, error) {
	if g.sendErr != nil {
		return 0, g.sendErr
	}
	g.sent = append(g.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	g.nextMessageID++
	return g.nextMessageID, nil
}

func (g *fakeGateway) EditMessage(_ context.Context, chatID int64, _ int, text string, kb telegram.Keyboard) error {
	g.edits = append(g.edits, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (g *fakeGateway) SendDocument(_ context.Context, chatID int64, localPath, caption string) (int, error) {
	if g.documentErr != nil {
		return 0, g.documentErr
	}
	g.documents = append(g.documents, sentDocument{chatID: chatID, path: localPath, caption: caption})
	return 777, nil
}

func (g *fakeGateway) DownloadFile(_ context.Context, _ string, destPath string, onProgress func(float64)) error {
	if g.downloadErr != nil {
		return g.downloadErr
	}
	if err := os.WriteFile(destPath, g.downloadBody, 0o644); err != nil {
		return err
	}
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	return nil
}

func (g *fakeGateway) ChatReachable(_ context.Context, chatID int64) bool {
	return g.reachable[chatID]
}

func (g *fakeGateway) AnswerCallback(_ context.Context, callbackID string) {
	g.answered = append(g.answered, callbackID)
}

func (g *fakeGateway) lastText(t *testing.T) string {
	t.Helper()
	if len(g.edits) > 0 {
		return g.edits[len(g.edits)-1].text
	}
	if len(g.sent) > 0 {
		return g.sent[len(g.sent)-1].text
	}
	t.Fatal("no outbound messages recorded")
	return ""
}

// fakeObjectStorage records calls and reports success unless told otherwise.
type fakeObjectStorage struct {
	uploads      []uploadCall
	presigned    []string
	deleted      []string
	uploadErr    error
	presignErr   error
	deleteResult bool
	probeResult  bool
}

type uploadCall struct {
	localPath   string
	key         string
	contentType string
}

func (s *fakeObjectStorage) Upload(_ context.Context, localPath, key, contentType string, onProgress storage.ProgressFunc) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, uploadCall{localPath: localPath, key: key, contentType: contentType})
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	return "https://s3.test/bucket/" + key, nil
}

func (s *fakeObjectStorage) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	s.presigned = append(s.presigned, key)
	return "https://s3.test/signed/" + key, nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, key string) bool {
	s.deleted = append(s.deleted, key)
	return s.deleteResult
}

func (s *fakeObjectStorage) Probe(_ context.Context) bool {
	return s.probeResult
}

type testConfig struct {
	maxFileSize   int64
	tempDir       string
	backupChannel int64
	presignTTL    time.Duration
}

func (c testConfig) GetMaxFileSize() int64        { return c.maxFileSize }
func (c testConfig) GetTempDir() string           { return c.tempDir }
func (c testConfig) GetBackupChannelID() int64    { return c.backupChannel }
func (c testConfig) GetPresignTTL() time.Duration { return c.presignTTL }
func (c testConfig) GetStorageBucket() string     { return "test-bucket" }
func (c testConfig) GetStorageRegion() string     { return "us-east-1" }

type harness struct {
	orch    *Orchestrator
	gw      *fakeGateway
	storage *fakeObjectStorage
	store   *metastore.Store
}

func newHarness(t *testing.T, backupChannel int64) *harness {
	t.Helper()

	gw := newFakeGateway()
	objStore := &fakeObjectStorage{deleteResult: true, probeResult: true}
	store := metastore.Open(filepath.Join(t.TempDir(), "files.json"), logger.New("test"))
	cfg := testConfig{
		maxFileSize:   4 << 30,
		tempDir:       t.TempDir(),
		backupChannel: backupChannel,
		presignTTL:    24 * time.Hour,
	}

	return &harness{
		orch:    New(gw, store, objStore, cfg, logger.New("test")),
		gw:      gw,
		storage: objStore,
		store:   store,
	}
}

func (h *harness) seedFile(t *testing.T, fileID string, ownerID int64) metastore.FileRecord {
	t.Helper()
	rec := metastore.FileRecord{
		FileName:        "movie.mp4",
		FileSize:        10 << 20,
		FileType:        metastore.TypeVideo,
		MimeType:        "video/mp4",
		OwnerID:         ownerID,
		UploadTimestamp: "2026-08-20T10:00:00Z",
		StorageKey:      "files/" + fileID + "_movie.mp4",
		StorageURL:      "https://s3.test/bucket/files/" + fileID + "_movie.mp4",
		ChatFileID:      "chat-handle",
	}
	if err := h.store.Put(fileID, rec); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return rec
}

func docMessage(chatID, userID, size int64) telegram.Message {
	return telegram.Message{
		ChatID: chatID,
		UserID: userID,
		Attachment: &telegram.Attachment{
			Handle:   "tg-handle-1",
			Name:     "report.pdf",
			Size:     size,
			MimeType: "application/pdf",
			Kind:     telegram.KindDocument,
		},
	}
}

func command(chatID, userID int64, cmd string, args ...string) telegram.Message {
	return telegram.Message{ChatID: chatID, UserID: userID, Command: cmd, Args: args}
}

var errBoom = errors.New("boom")
