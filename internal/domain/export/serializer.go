package export

import (
	"time"

	"doctracker/internal/domain/document"
)

const (
	DefaultSheet   = "Documents"
	filenamePrefix = "document_export_"
	filenameLayout = "20060102_150405"
	fileExtension  = ".xlsx"
)

// Table - табличное представление выгрузки: заголовок и по строке на документ
type Table struct {
	Sheet    string
	Columns  []ColumnID
	Header   []string
	Rows     [][]string
	Filename string
}

// Serializer строит таблицу выгрузки с тем же форматированием, что и список
type Serializer struct {
	formatter document.Formatter
	sheet     string
}

func NewSerializer(formatter document.Formatter) *Serializer {
	return &Serializer{formatter: formatter, sheet: DefaultSheet}
}

// Filename returns the artifact name for an export made at now. Two exports
// within the same second get the same name.
func (s *Serializer) Filename(now time.Time) string {
	loc := s.formatter.Location
	if loc == nil {
		loc = time.Local
	}
	return filenamePrefix + now.In(loc).Format(filenameLayout) + fileExtension
}

// Serialize maps records to rows in the order of columns as supplied. An
// empty record set fails with ErrEmptyExport whatever the columns are.
func (s *Serializer) Serialize(records []document.Record, columns []ColumnID, now time.Time) (*Table, error) {
	const op = "export"

	if len(records) == 0 {
		return nil, document.NewError(op, document.ErrEmptyExport, nil)
	}
	if len(columns) == 0 {
		return nil, document.ValidationError(op, "columns")
	}
	cols := make([]Column, len(columns))
	var unknown []string
	for i, id := range columns {
		c, ok := Lookup(id)
		if !ok {
			unknown = append(unknown, string(id))
			continue
		}
		cols[i] = c
	}
	if len(unknown) > 0 {
		return nil, document.ValidationError(op, unknown...)
	}

	header := make([]string, len(cols))
	ids := make([]ColumnID, len(cols))
	for i, c := range cols {
		header[i] = c.Label
		ids[i] = c.ID
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.value(s.formatter, r)
		}
		rows[i] = row
	}

	return &Table{
		Sheet:    s.sheet,
		Columns:  ids,
		Header:   header,
		Rows:     rows,
		Filename: s.Filename(now),
	}, nil
}
