package document

import (
	"strings"
	"time"
)

// Placeholder выводится вместо незаполненного значения
const Placeholder = "-"

const (
	DefaultDateLayout      = "02/01/2006"
	DefaultTimestampLayout = "02/01/2006 15:04"
)

// Formatter - единое отображение значений полей для списка, API и выгрузки
type Formatter struct {
	Location        *time.Location
	DateLayout      string
	TimestampLayout string
}

// NewFormatter создает форматтер для часового пояса loc
func NewFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.Local
	}
	return Formatter{
		Location:        loc,
		DateLayout:      DefaultDateLayout,
		TimestampLayout: DefaultTimestampLayout,
	}
}

func (f Formatter) FormatText(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func (f Formatter) FormatDate(d *Date) string {
	if d == nil || d.IsZero() {
		return Placeholder
	}
	return d.In(time.UTC).Format(f.dateLayout())
}

func (f Formatter) FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	layout := f.TimestampLayout
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return t.In(loc).Format(layout)
}

func (f Formatter) dateLayout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}
