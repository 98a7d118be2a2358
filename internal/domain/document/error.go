package document

import (
	"errors"
	"strings"
)

var (
	ErrNetwork         = errors.New("document service unavailable")
	ErrValidation      = errors.New("invalid document data")
	ErrNotFound        = errors.New("document not found")
	ErrEmptyExport     = errors.New("no documents to export")
	ErrUnauthenticated = errors.New("authentication required")
	ErrRemote          = errors.New("unexpected document service response")
)

// Error - ошибка операции над документами. Kind содержит одну из
// сентинельных ошибок пакета и проверяется через errors.Is.
type Error struct {
	Op     string
	Kind   error
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError оборачивает cause в ошибку заданного вида
func NewError(op string, kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

// ValidationError описывает незаполненные или некорректные поля
func ValidationError(op string, fields ...string) *Error {
	return &Error{Op: op, Kind: ErrValidation, Fields: fields}
}

// IsRetryable сообщает, имеет ли смысл повторить операцию
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// InvalidFields возвращает список полей из ошибки валидации
func InvalidFields(err error) []string {
	var docErr *Error
	if errors.As(err, &docErr) && errors.Is(docErr.Kind, ErrValidation) {
		return docErr.Fields
	}
	return nil
}
