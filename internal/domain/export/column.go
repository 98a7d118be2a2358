package export

import (
	"strings"

	"doctracker/internal/domain/document"
)

// ColumnID - идентификатор выгружаемого поля документа
type ColumnID string

const (
	ColumnNumber       ColumnID = "id"
	ColumnDocumentName ColumnID = "document_name"
	ColumnSenderName   ColumnID = "sender_name"
	ColumnReceiverName ColumnID = "receiver_name"
	ColumnDocumentType ColumnID = "document_type"
	ColumnStatus       ColumnID = "status"
	ColumnAction       ColumnID = "action"
	ColumnNotes        ColumnID = "notes"
	ColumnDocumentDate ColumnID = "document_date"
	ColumnCreatedAt    ColumnID = "created_at"
)

// Column связывает поле с заголовком и способом отображения
type Column struct {
	ID    ColumnID
	Label string
	value func(f document.Formatter, r document.Record) string
}

var columns = []Column{
	{ID: ColumnNumber, Label: "เลขที่เอกสาร", value: text(func(r document.Record) string { return r.ID })},
	{ID: ColumnDocumentName, Label: "เรื่อง", value: text(func(r document.Record) string { return r.DocumentName })},
	{ID: ColumnSenderName, Label: "จาก", value: text(func(r document.Record) string { return r.SenderName })},
	{ID: ColumnReceiverName, Label: "ถึง", value: text(func(r document.Record) string { return r.ReceiverName })},
	{ID: ColumnDocumentType, Label: "ประเภทเอกสาร", value: text(func(r document.Record) string { return r.DocumentType })},
	{ID: ColumnStatus, Label: "สถานะ", value: text(func(r document.Record) string { return r.Status })},
	{ID: ColumnAction, Label: "การดำเนินการ", value: text(func(r document.Record) string { return r.Action })},
	{ID: ColumnNotes, Label: "หมายเหตุ", value: text(func(r document.Record) string { return r.Notes })},
	{
		ID:    ColumnDocumentDate,
		Label: "วันที่เอกสาร",
		value: func(f document.Formatter, r document.Record) string { return f.FormatDate(r.DocumentDate) },
	},
	{
		ID:    ColumnCreatedAt,
		Label: "วันที่สร้าง",
		value: func(f document.Formatter, r document.Record) string { return f.FormatTimestamp(r.CreatedAt) },
	},
}

func text(get func(document.Record) string) func(document.Formatter, document.Record) string {
	return func(f document.Formatter, r document.Record) string {
		return f.FormatText(get(r))
	}
}

// DefaultColumns - набор колонок, выбранный при открытии выгрузки
func DefaultColumns() []ColumnID {
	return []ColumnID{
		ColumnNumber,
		ColumnDocumentName,
		ColumnSenderName,
		ColumnReceiverName,
		ColumnNotes,
		ColumnCreatedAt,
	}
}

// Columns возвращает все доступные колонки в каноническом порядке
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// Lookup ищет колонку по идентификатору
func Lookup(id ColumnID) (Column, bool) {
	for _, c := range columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// ParseColumns разбирает список идентификаторов, сохраняя порядок.
// Неизвестные идентификаторы возвращаются как ошибка валидации.
func ParseColumns(raw []string) ([]ColumnID, error) {
	var (
		ids     []ColumnID
		unknown []string
	)
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := Lookup(ColumnID(part)); !ok {
				unknown = append(unknown, part)
				continue
			}
			ids = append(ids, ColumnID(part))
		}
	}
	if len(unknown) > 0 {
		return nil, document.ValidationError("parse columns", unknown...)
	}
	return ids, nil
}
