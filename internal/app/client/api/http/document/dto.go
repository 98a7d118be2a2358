package document

import (
	"strings"
	"time"

	"doctracker/internal/domain/document"
	"doctracker/internal/domain/view"
)

type listInput struct {
	Search   string `query:"search" doc:"Поиск по номеру, названию, отправителю, получателю, примечаниям и действию"`
	Bucket   string `query:"bucket" doc:"Окно по дате создания"`
	Status   string `query:"status" doc:"Статус документа, all - без фильтра"`
	Page     int    `query:"page" minimum:"0" doc:"Номер страницы, начиная с 0"`
	PageSize int    `query:"page_size" minimum:"0" doc:"Размер страницы"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Items     []documentBody    `json:"items"`
	Total     int               `json:"total" doc:"Число документов после фильтрации"`
	PageIndex int               `json:"page_index"`
	PageSize  int               `json:"page_size"`
	PageCount int               `json:"page_count"`
	Criteria  document.Criteria `json:"criteria"`
}

type findInput struct {
	ID string `path:"id" example:"DOC-001" doc:"Номер документа"`
}

type findOutput struct {
	Body documentBody
}

type createInput struct {
	Body fieldsBody
}

type createOutput struct {
	Body response
}

type updateInput struct {
	ID   string `path:"id" example:"DOC-001" doc:"Номер документа"`
	Body fieldsBody
}

type output struct {
	Body response
}

type refreshOutput struct {
	Body refreshResponse
}

type refreshResponse struct {
	Documents int       `json:"documents"`
	Version   uint64    `json:"version"`
	FetchedAt time.Time `json:"fetched_at"`
}

type enumsOutput struct {
	Body document.Enums
}

type exportInput struct {
	Search  string   `query:"search"`
	Bucket  string   `query:"bucket"`
	Status  string   `query:"status"`
	From    string   `query:"from" doc:"Начало периода по дате создания, YYYY-MM-DD"`
	To      string   `query:"to" doc:"Конец периода по дате создания, YYYY-MM-DD"`
	Columns []string `query:"columns" doc:"Колонки выгрузки через запятую"`
}

type exportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type response struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// fieldsBody - тело запроса на создание или изменение документа
type fieldsBody struct {
	DocumentName string `json:"document_name" doc:"Название документа"`
	SenderName   string `json:"sender_name" doc:"Отправитель"`
	ReceiverName string `json:"receiver_name" doc:"Получатель"`
	DocumentType string `json:"document_type" doc:"Тип документа"`
	Status       string `json:"status,omitempty" doc:"Статус, по умолчанию статус ожидания"`
	Action       string `json:"action,omitempty" doc:"Действие"`
	Notes        string `json:"notes,omitempty" doc:"Примечания"`
	DocumentDate string `json:"document_date,omitempty" doc:"Дата документа, YYYY-MM-DD"`
}

func (b fieldsBody) fields(op string) (document.Fields, error) {
	f := document.Fields{
		DocumentName: b.DocumentName,
		SenderName:   b.SenderName,
		ReceiverName: b.ReceiverName,
		DocumentType: b.DocumentType,
		Status:       b.Status,
		Action:       b.Action,
		Notes:        b.Notes,
	}
	if date := strings.TrimSpace(b.DocumentDate); date != "" {
		d, err := document.ParseDate(date)
		if err != nil {
			return document.Fields{}, document.ValidationError(op, "document_date")
		}
		f.DocumentDate = &d
	}
	return f, nil
}

// documentBody - документ с отображаемыми значениями полей
type documentBody struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	Action       string    `json:"action"`
	Notes        string    `json:"notes"`
	DocumentDate string    `json:"document_date"`
	CreatedAt    time.Time `json:"created_at"`
	Display      display   `json:"display"`
}

type display struct {
	Action       string `json:"action"`
	Notes        string `json:"notes"`
	DocumentDate string `json:"document_date"`
	CreatedAt    string `json:"created_at"`
}

func newDocumentBody(f document.Formatter, r document.Record) documentBody {
	body := documentBody{
		ID:           r.ID,
		DocumentName: r.DocumentName,
		SenderName:   r.SenderName,
		ReceiverName: r.ReceiverName,
		DocumentType: r.DocumentType,
		Status:       r.Status,
		Action:       r.Action,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		Display: display{
			Action:       f.FormatText(r.Action),
			Notes:        f.FormatText(r.Notes),
			DocumentDate: f.FormatDate(r.DocumentDate),
			CreatedAt:    f.FormatTimestamp(r.CreatedAt),
		},
	}
	if r.DocumentDate != nil {
		body.DocumentDate = r.DocumentDate.String()
	}
	return body
}

func newListResponse(f document.Formatter, v view.View) listResponse {
	items := make([]documentBody, len(v.Items))
	for i, r := range v.Items {
		items[i] = newDocumentBody(f, r)
	}
	return listResponse{
		Items:     items,
		Total:     v.Total,
		PageIndex: v.PageIndex,
		PageSize:  v.PageSize,
		PageCount: v.PageCount,
		Criteria:  v.Criteria,
	}
}

func parseOptionalDate(op, field, raw string) (*document.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := document.ParseDate(raw)
	if err != nil {
		return nil, document.ValidationError(op, field)
	}
	return &d, nil
}
