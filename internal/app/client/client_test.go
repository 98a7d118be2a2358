package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"doctracker/internal/domain/document"
	"doctracker/internal/domain/export"
)

func TestApp_List(t *testing.T) {
	_, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria document.Criteria
		want     []string
	}{
		{name: "all", criteria: document.DefaultCriteria(), want: []string{"DOC-001", "DOC-002", "DOC-003", "DOC-004"}},
		{name: "week", criteria: document.Criteria{Bucket: document.BucketWeek}, want: []string{"DOC-001", "DOC-002"}},
		{name: "search", criteria: document.Criteria{SearchText: "FINANCE"}, want: []string{"DOC-001", "DOC-003"}},
		{name: "status", criteria: document.Criteria{Status: "approved"}, want: []string{"DOC-001", "DOC-004"}},
		{name: "today", criteria: document.Criteria{Bucket: document.BucketToday}, want: []string{"DOC-001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := app.List(ctx, ListRequest{Criteria: tt.criteria})
			require.NoError(t, err)

			ids := make([]string, len(v.Items))
			for i, r := range v.Items {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), v.Total)
			assert.Equal(t, 15, v.PageSize)
		})
	}
}

func TestApp_List_PageSize(t *testing.T) {
	_, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))

	_, err := app.List(context.Background(), ListRequest{PageSize: 7})

	assert.ErrorIs(t, err, document.ErrValidation)
}

func TestApp_CreateRefreshes(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))
	ctx := context.Background()
	require.NoError(t, app.Load(ctx))

	id, err := app.CreateDocument(ctx, document.Fields{
		DocumentName: "New memo",
		SenderName:   "Ops",
		ReceiverName: "HR",
		DocumentType: "memo",
	})

	require.NoError(t, err)
	assert.Equal(t, "DOC-005", id)
	rec, ok := app.Store().Snapshot().Lookup(id)
	require.True(t, ok, "после создания список перечитан")
	assert.Equal(t, document.DefaultPendingStatus, rec.Status)
	assert.Equal(t, 2, fake.count("GET /data"))
}

func TestApp_CreateUnknownType(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))
	ctx := context.Background()
	require.NoError(t, app.Load(ctx))

	_, err := app.CreateDocument(ctx, document.Fields{
		DocumentName: "New memo",
		SenderName:   "Ops",
		ReceiverName: "HR",
		DocumentType: "fax",
	})

	assert.ErrorIs(t, err, document.ErrValidation)
	assert.Equal(t, []string{"document_type"}, document.InvalidFields(err))
	assert.Zero(t, fake.count("POST /data"))
}

func TestApp_SaveDraft(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))
	ctx := context.Background()

	tr, err := app.OpenDraft(ctx, "DOC-002")
	require.NoError(t, err)

	t.Run("NoChanges", func(t *testing.T) {
		outcome, err := app.SaveDraft(ctx, tr)

		require.NoError(t, err)
		assert.Equal(t, SaveNoChanges, outcome)
		assert.Zero(t, fake.count("PUT /data/DOC-002"))
	})

	t.Run("NotesAdded", func(t *testing.T) {
		tr.Draft().Notes = "x"
		require.True(t, tr.HasChanges())

		outcome, err := app.SaveDraft(ctx, tr)

		require.NoError(t, err)
		assert.Equal(t, SaveApplied, outcome)
		assert.Equal(t, 1, fake.count("PUT /data/DOC-002"))
		assert.False(t, tr.HasChanges(), "сохраненный черновик становится исходным")

		rec, ok := app.Store().Snapshot().Lookup("DOC-002")
		require.True(t, ok)
		assert.Equal(t, "x", rec.Notes)
	})

	t.Run("BlankRequired", func(t *testing.T) {
		tr.Draft().SenderName = "   "

		_, err := app.SaveDraft(ctx, tr)

		assert.ErrorIs(t, err, document.ErrValidation)
		assert.Equal(t, []string{"sender_name"}, document.InvalidFields(err))
		assert.Equal(t, 1, fake.count("PUT /data/DOC-002"))
	})
}

func TestApp_Export(t *testing.T) {
	_, srv := newFakeService(t, testRecords())
	app := newTestApp(t, testConfig(t, srv.URL))
	ctx := context.Background()

	from := document.Date{Year: 2024, Month: time.March, Day: 1}
	to := document.Date{Year: 2024, Month: time.March, Day: 12}

	t.Run("Range", func(t *testing.T) {
		table, err := app.Export(ctx, ExportRequest{
			Criteria: document.DefaultCriteria(),
			From:     &from,
			To:       &to,
			Columns:  []export.ColumnID{export.ColumnNumber, export.ColumnDocumentDate},
		})

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"DOC-002", document.Placeholder}}, table.Rows)
		assert.Equal(t, "document_export_20240315_103000.xlsx", table.Filename)
	})

	t.Run("DefaultColumns", func(t *testing.T) {
		table, err := app.Export(ctx, ExportRequest{Criteria: document.Criteria{Status: "needs_edit"}})

		require.NoError(t, err)
		assert.Equal(t, export.DefaultColumns(), table.Columns)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "DOC-003", table.Rows[0][0])
	})

	t.Run("InvertedRange", func(t *testing.T) {
		_, err := app.Export(ctx, ExportRequest{From: &to, To: &from})

		assert.ErrorIs(t, err, document.ErrValidation)
	})

	t.Run("NothingMatches", func(t *testing.T) {
		_, err := app.Export(ctx, ExportRequest{Criteria: document.Criteria{SearchText: "nothing like this"}})

		assert.ErrorIs(t, err, document.ErrEmptyExport)
	})
}

func TestApp_ExportToFile(t *testing.T) {
	_, srv := newFakeService(t, testRecords())
	cfg := testConfig(t, srv.URL)
	app := newTestApp(t, cfg)

	path, err := app.ExportToFile(context.Background(), ExportRequest{Criteria: document.DefaultCriteria()}, "")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ExportDir, "document_export_20240315_103000.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.DefaultSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 5, "заголовок и четыре документа")
}

func TestApp_LoadFallsBackToCache(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	cfg := testConfig(t, srv.URL)
	ctx := context.Background()

	first, err := New(cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Close())

	fake.setFail(503)

	second := newTestApp(t, cfg)
	require.NoError(t, second.Load(ctx))

	snap := second.Store().Snapshot()
	assert.True(t, snap.Stale())
	assert.Equal(t, 4, snap.Len())
	assert.ErrorIs(t, second.Store().Err(), document.ErrNetwork)
}

func TestApp_LoadWithoutCache(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	cfg := testConfig(t, srv.URL)
	cfg.CacheEnabled = false
	fake.setFail(500)

	app := newTestApp(t, cfg)
	err := app.Load(context.Background())

	assert.ErrorIs(t, err, document.ErrNetwork)
	assert.Zero(t, app.Store().Snapshot().Len())
}

func TestApp_RequireAuth(t *testing.T) {
	fake, srv := newFakeService(t, testRecords())
	cfg := testConfig(t, srv.URL)
	cfg.RequireAuth = true
	fake.setToken("secret")

	app := newTestApp(t, cfg)
	err := app.Load(context.Background())
	assert.ErrorIs(t, err, document.ErrUnauthenticated)
	assert.Zero(t, fake.count("GET /data"))

	require.NoError(t, os.WriteFile(cfg.TokenPath, []byte("secret\n"), 0o600))
	authed := newTestApp(t, cfg)
	require.NoError(t, authed.Load(context.Background()))
	assert.Equal(t, 4, authed.Store().Snapshot().Len())
}
