package document

import (
	"strings"
	"time"
)

// DateBucket - относительное окно по времени создания документа
type DateBucket string

const (
	BucketAll   DateBucket = "all"
	BucketToday DateBucket = "today"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
)

// StatusAll отключает фильтр по статусу
const StatusAll = "all"

// Buckets возвращает допустимые окна в порядке отображения
func Buckets() []DateBucket {
	return []DateBucket{BucketAll, BucketToday, BucketWeek, BucketMonth}
}

// ParseBucket разбирает название окна; неизвестное значение означает all
func ParseBucket(s string) DateBucket {
	switch b := DateBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketToday, BucketWeek, BucketMonth:
		return b
	default:
		return BucketAll
	}
}

// Criteria - активная комбинация поиска, окна по дате и статуса
type Criteria struct {
	SearchText string     `json:"search_text"`
	Bucket     DateBucket `json:"date_bucket"`
	Status     string     `json:"status"`
}

// DefaultCriteria возвращает критерии без ограничений
func DefaultCriteria() Criteria {
	return Criteria{Bucket: BucketAll, Status: StatusAll}
}

// IsDefault сообщает, что критерии ничего не отсекают
func (c Criteria) IsDefault() bool {
	return c.SearchText == "" &&
		ParseBucket(string(c.Bucket)) == BucketAll &&
		(c.Status == "" || c.Status == StatusAll)
}

// Filter returns the records matching every criterion, in input order.
// The result is always a new slice.
func Filter(records []Record, c Criteria, now time.Time) []Record {
	needle := strings.ToLower(c.SearchText)
	bucket := ParseBucket(string(c.Bucket))
	status := c.Status

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !matchesText(r, needle) {
			continue
		}
		if !inBucket(r.CreatedAt, bucket, now) {
			continue
		}
		if status != "" && status != StatusAll && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesText(r Record, needle string) bool {
	for _, s := range [...]string{r.ID, r.DocumentName, r.SenderName, r.ReceiverName, r.Notes, r.Action} {
		if s != "" && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func inBucket(createdAt time.Time, bucket DateBucket, now time.Time) bool {
	switch bucket {
	case BucketToday:
		return DateOf(createdAt.In(now.Location())) == DateOf(now)
	case BucketWeek:
		return !createdAt.Before(now.AddDate(0, 0, -7))
	case BucketMonth:
		return !createdAt.Before(now.AddDate(0, -1, 0))
	default:
		return true
	}
}

// FilterByCreatedRange оставляет документы, созданные в диапазоне дней
// [from, to] включительно. Пустая граница не ограничивает.
func FilterByCreatedRange(records []Record, from, to *Date, loc *time.Location) []Record {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		day := DateOf(r.CreatedAt.In(loc)).In(time.UTC)
		if from != nil && day.Before(from.In(time.UTC)) {
			continue
		}
		if to != nil && day.After(to.In(time.UTC)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
