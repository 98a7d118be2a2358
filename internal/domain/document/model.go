package document

import (
	"time"
)

// DefaultPendingStatus - статус, который сервис присваивает новым документам
const DefaultPendingStatus = "รอดำเนินการ"

// Record - документ в том виде, в котором его отдает удаленный сервис
type Record struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	Action       string    `json:"action,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	DocumentDate *Date     `json:"document_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Normalize приводит пустую дату документа, пришедшую строкой "", к nil
func (r *Record) Normalize() {
	if r.DocumentDate != nil && r.DocumentDate.IsZero() {
		r.DocumentDate = nil
	}
}

// Fields - редактируемая часть документа (без ID и CreatedAt)
type Fields struct {
	DocumentName string `json:"document_name" validate:"notblank"`
	SenderName   string `json:"sender_name" validate:"notblank"`
	ReceiverName string `json:"receiver_name" validate:"notblank"`
	DocumentType string `json:"document_type" validate:"notblank"`
	Status       string `json:"status"`
	Action       string `json:"action"`
	Notes        string `json:"notes"`
	DocumentDate *Date  `json:"document_date"`
}

// Fields возвращает копию редактируемых полей записи
func (r Record) Fields() Fields {
	return Fields{
		DocumentName: r.DocumentName,
		SenderName:   r.SenderName,
		ReceiverName: r.ReceiverName,
		DocumentType: r.DocumentType,
		Status:       r.Status,
		Action:       r.Action,
		Notes:        r.Notes,
		DocumentDate: r.DocumentDate.Clone(),
	}
}

// Clone возвращает независимую копию полей
func (f Fields) Clone() Fields {
	f.DocumentDate = f.DocumentDate.Clone()
	return f
}

// WithDefaults подставляет статус по умолчанию, если он не задан
func (f Fields) WithDefaults(pendingStatus string) Fields {
	if f.Status == "" {
		f.Status = pendingStatus
	}
	return f
}

// Enums - перечисления, которые предоставляет сервис
type Enums struct {
	Statuses      []string `json:"statuses"`
	DocumentTypes []string `json:"document_types"`
}
