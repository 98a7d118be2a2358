package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"doctracker/internal/app/client/config"
	"doctracker/internal/domain/document"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []document.Record {
	auditDate := document.Date{Year: 2024, Month: time.February, Day: 20}
	return []document.Record{
		{ID: "DOC-001", DocumentName: "Budget report", SenderName: "Finance", ReceiverName: "Board",
			DocumentType: "memo", Status: "approved", Notes: "urgent", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "DOC-002", DocumentName: "Hiring plan", SenderName: "HR", ReceiverName: "CEO",
			DocumentType: "letter", Status: document.DefaultPendingStatus, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ID: "DOC-003", DocumentName: "Audit memo", SenderName: "Audit", ReceiverName: "Finance",
			DocumentType: "memo", Status: "needs_edit", DocumentDate: &auditDate, CreatedAt: testNow.AddDate(0, 0, -20)},
		{ID: "DOC-004", DocumentName: "Old contract", SenderName: "Legal", ReceiverName: "Ops",
			DocumentType: "letter", Status: "approved", CreatedAt: testNow.AddDate(0, 0, -60)},
	}
}

// fakeService - сервис документов в памяти с тем же HTTP-контрактом
type fakeService struct {
	mu       sync.Mutex
	records  []document.Record
	statuses []string
	types    []string
	nextID   int
	calls    map[string]int
	token    string
	fail     int
}

func newFakeService(t *testing.T, records []document.Record) (*fakeService, *httptest.Server) {
	t.Helper()

	f := &fakeService{
		records:  records,
		statuses: []string{document.DefaultPendingStatus, "approved", "needs_edit"},
		types:    []string{"memo", "letter"},
		nextID:   len(records) + 1,
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(f.middleware)
	r.Get("/data", f.list)
	r.Get("/data/statuses", func(w http.ResponseWriter, _ *http.Request) { f.json(w, http.StatusOK, f.statuses) })
	r.Get("/data/document-types", func(w http.ResponseWriter, _ *http.Request) { f.json(w, http.StatusOK, f.types) })
	r.Get("/data/{id}", f.get)
	r.Post("/data", f.create)
	r.Put("/data/{id}", f.update)
	r.Delete("/data/{id}", f.delete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		fail := f.fail
		token := f.token
		f.mu.Unlock()

		if fail != 0 {
			f.json(w, fail, map[string]string{"error": "forced failure"})
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			f.json(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeService) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeService) setFail(status int) {
	f.mu.Lock()
	f.fail = status
	f.mu.Unlock()
}

func (f *fakeService) setToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeService) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeService) list(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	records := append([]document.Record(nil), f.records...)
	f.mu.Unlock()
	f.json(w, http.StatusOK, records)
}

func (f *fakeService) find(id string) int {
	for i, r := range f.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeService) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(chi.URLParam(r, "id"))
	if i < 0 {
		f.json(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	f.json(w, http.StatusOK, f.records[i])
}

func (f *fakeService) create(w http.ResponseWriter, r *http.Request) {
	var fields document.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		f.json(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	id := fmt.Sprintf("DOC-%03d", f.nextID)
	f.nextID++
	f.records = append(f.records, recordFrom(id, fields, testNow))
	f.mu.Unlock()

	f.json(w, http.StatusCreated, map[string]string{"document_id": id})
}

func (f *fakeService) update(w http.ResponseWriter, r *http.Request) {
	var fields document.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		f.json(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(chi.URLParam(r, "id"))
	if i < 0 {
		f.json(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	f.records[i] = recordFrom(f.records[i].ID, fields, f.records[i].CreatedAt)
	f.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *fakeService) delete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(chi.URLParam(r, "id"))
	if i < 0 {
		f.json(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	f.records = append(f.records[:i], f.records[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func recordFrom(id string, f document.Fields, createdAt time.Time) document.Record {
	return document.Record{
		ID:           id,
		DocumentName: f.DocumentName,
		SenderName:   f.SenderName,
		ReceiverName: f.ReceiverName,
		DocumentType: f.DocumentType,
		Status:       f.Status,
		Action:       f.Action,
		Notes:        f.Notes,
		DocumentDate: f.DocumentDate,
		CreatedAt:    createdAt,
	}
}

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:            config.EnvLocal,
		ServerAddress:  serverURL,
		ConfigDir:      dir,
		TokenPath:      filepath.Join(dir, "token"),
		CachePath:      filepath.Join(dir, "documents.db"),
		RequestTimeout: 5 * time.Second,
		PageSize:       15,
		PageSizes:      []int{15, 25, 50},
		DefaultStatus:  document.DefaultPendingStatus,
		ExportDir:      dir,
		Location:       time.UTC,
		CacheEnabled:   true,
		EnumTTL:        time.Minute,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(cfg, testLogger())
	require.NoError(t, err)
	app.now = func() time.Time { return testNow }
	t.Cleanup(func() { _ = app.Close() })
	return app
}
