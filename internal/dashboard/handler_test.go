package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filevault_bot/internal/metastore"
	"filevault_bot/platform/logger"
)

type routerConfig struct{ testConfig }

func (c routerConfig) GetCORSOrigins() []string { return []string{"*"} }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	files := map[string]metastore.FileRecord{
		"abc123def4567890": record(42, metastore.TypeVideo, time.Now().UTC().Format(time.RFC3339), 1024),
	}
	cfg := routerConfig{testConfig{
		dbPath:        writeFixture(t, files),
		region:        "eu-central-1",
		backupChannel: -1001234,
	}}
	return NewRouter(cfg, "test", logger.New("test"))
}

func TestDashboardPage(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "File Vault Dashboard") {
		t.Fatal("page title missing")
	}
	if !strings.Contains(body, "eu-central-1") {
		t.Fatal("storage region missing from config section")
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var stats Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.TotalFiles != 1 {
		t.Fatalf("total_files = %d", stats.TotalFiles)
	}
	if stats.RecentUploads != 1 {
		t.Fatalf("recent_uploads = %d", stats.RecentUploads)
	}
}

func TestFilesEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var files []FileSummary
	if err := json.Unmarshal(w.Body.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(files) != 1 || files[0].FileID != "abc123def4567890" {
		t.Fatalf("unexpected listing: %+v", files)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("unexpected health payload %q", w.Body.String())
	}
}
