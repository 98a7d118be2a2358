package document

import "strings"

// HasChanges compares every editable field. Dates are compared by calendar day.
func HasChanges(draft, original Fields) bool {
	return draft.DocumentName != original.DocumentName ||
		draft.SenderName != original.SenderName ||
		draft.ReceiverName != original.ReceiverName ||
		draft.DocumentType != original.DocumentType ||
		draft.Status != original.Status ||
		draft.Action != original.Action ||
		draft.Notes != original.Notes ||
		!SameDay(draft.DocumentDate, original.DocumentDate)
}

// Tracker хранит черновик редактирования и исходные значения записи
type Tracker struct {
	id       string
	draft    Fields
	original Fields
}

// NewTracker открывает черновик для записи rec
func NewTracker(rec Record) *Tracker {
	f := rec.Fields()
	return &Tracker{
		id:       rec.ID,
		draft:    f.Clone(),
		original: f.Clone(),
	}
}

// ID возвращает идентификатор редактируемой записи
func (t *Tracker) ID() string {
	return t.id
}

// Draft возвращает изменяемый черновик
func (t *Tracker) Draft() *Fields {
	return &t.draft
}

// Original возвращает копию исходных значений
func (t *Tracker) Original() Fields {
	return t.original.Clone()
}

func (t *Tracker) HasChanges() bool {
	return HasChanges(t.draft, t.original)
}

// CanSave разрешает сохранение только при наличии изменений и заполненных
// обязательных полях
func (t *Tracker) CanSave() bool {
	return t.HasChanges() && requiredFilled(t.draft)
}

// MarkSaved делает сохраненный черновик новым исходным состоянием
func (t *Tracker) MarkSaved() {
	t.original = t.draft.Clone()
}

// Reset отменяет правки черновика
func (t *Tracker) Reset() {
	t.draft = t.original.Clone()
}

func requiredFilled(f Fields) bool {
	for _, s := range [...]string{f.DocumentName, f.SenderName, f.ReceiverName, f.DocumentType} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
