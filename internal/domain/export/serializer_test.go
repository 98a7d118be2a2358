package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"doctracker/internal/domain/document"
)

var (
	exportNow = time.Date(2024, time.March, 15, 9, 5, 7, 0, time.UTC)
	formatter = document.NewFormatter(time.UTC)
)

func exportRecords() []document.Record {
	d := document.Date{Year: 2024, Month: time.March, Day: 1}
	return []document.Record{
		{
			ID:           "DOC-001",
			DocumentName: "Budget request",
			SenderName:   "Finance",
			ReceiverName: "Board",
			Status:       "approved",
			Notes:        "Q2",
			DocumentDate: &d,
			CreatedAt:    time.Date(2024, time.March, 14, 16, 45, 0, 0, time.UTC),
		},
		{
			ID:           "DOC-002",
			DocumentName: "Hiring plan",
			SenderName:   "HR",
			ReceiverName: "Director",
			CreatedAt:    time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestSerializer_Serialize(t *testing.T) {
	s := NewSerializer(formatter)
	columns := []ColumnID{ColumnCreatedAt, ColumnNumber, ColumnNotes, ColumnDocumentDate}

	table, err := s.Serialize(exportRecords(), columns, exportNow)
	require.NoError(t, err)

	assert.Equal(t, "Documents", table.Sheet)
	assert.Equal(t, columns, table.Columns)
	assert.Equal(t, []string{"วันที่สร้าง", "เลขที่เอกสาร", "หมายเหตุ", "วันที่เอกสาร"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"14/03/2024 16:45", "DOC-001", "Q2", "01/03/2024"}, table.Rows[0])
	assert.Equal(t, []string{"15/03/2024 08:00", "DOC-002", "-", "-"}, table.Rows[1])
	assert.Equal(t, "document_export_20240315_090507.xlsx", table.Filename)
}

func TestSerializer_Dimensions(t *testing.T) {
	s := NewSerializer(formatter)
	records := exportRecords()

	for _, columns := range [][]ColumnID{
		{ColumnNumber},
		DefaultColumns(),
		{ColumnStatus, ColumnAction, ColumnDocumentType, ColumnReceiverName, ColumnSenderName},
	} {
		table, err := s.Serialize(records, columns, exportNow)
		require.NoError(t, err)
		assert.Len(t, table.Rows, len(records))
		for _, row := range table.Rows {
			assert.Len(t, row, len(columns))
		}
	}
}

func TestSerializer_Errors(t *testing.T) {
	s := NewSerializer(formatter)

	_, err := s.Serialize(nil, DefaultColumns(), exportNow)
	assert.True(t, errors.Is(err, document.ErrEmptyExport))

	_, err = s.Serialize([]document.Record{}, []ColumnID{"unknown"}, exportNow)
	assert.True(t, errors.Is(err, document.ErrEmptyExport))

	_, err = s.Serialize(exportRecords(), nil, exportNow)
	assert.True(t, errors.Is(err, document.ErrValidation))

	_, err = s.Serialize(exportRecords(), []ColumnID{ColumnNumber, "secret"}, exportNow)
	assert.True(t, errors.Is(err, document.ErrValidation))
	assert.Equal(t, []string{"secret"}, document.InvalidFields(err))
}

func TestFilename_UsesFormatterLocation(t *testing.T) {
	s := NewSerializer(document.NewFormatter(time.FixedZone("ICT", 7*60*60)))
	assert.Equal(t, "document_export_20240315_160507.xlsx", s.Filename(exportNow))
}

func TestParseColumns(t *testing.T) {
	got, err := ParseColumns([]string{"notes, id", "", "created_at"})
	require.NoError(t, err)
	assert.Equal(t, []ColumnID{ColumnNotes, ColumnNumber, ColumnCreatedAt}, got)

	_, err = ParseColumns([]string{"id,password"})
	assert.True(t, errors.Is(err, document.ErrValidation))
	assert.Equal(t, []string{"password"}, document.InvalidFields(err))
}

func TestTable_WriteXLSX(t *testing.T) {
	table, err := NewSerializer(formatter).Serialize(exportRecords(), DefaultColumns(), exportNow)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.WriteXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Documents"}, f.GetSheetList())
	rows, err := f.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, table.Header, rows[0])
	assert.Equal(t, table.Rows[0], rows[1])
	assert.Equal(t, table.Rows[1], rows[2])
}

func TestTable_WriteXLSX_BoldHeader(t *testing.T) {
	table, err := NewSerializer(formatter).Serialize(exportRecords(), DefaultColumns(), exportNow)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.WriteXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	last, err := excelize.CoordinatesToCellName(len(table.Header), 1)
	require.NoError(t, err)
	for _, cell := range []string{"A1", last} {
		id, err := f.GetCellStyle("Documents", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(id)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
	}

	id, err := f.GetCellStyle("Documents", "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	assert.False(t, style.Font != nil && style.Font.Bold)
}

func TestTable_Save(t *testing.T) {
	table, err := NewSerializer(formatter).Serialize(exportRecords(), DefaultColumns(), exportNow)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := table.Save(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "document_export_20240315_090507.xlsx"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
