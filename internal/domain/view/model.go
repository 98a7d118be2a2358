package view

import (
	"time"

	"doctracker/internal/domain/document"
)

// View - вычисленное представление: текущая страница отфильтрованного набора
type View struct {
	Items     []document.Record `json:"items"`
	Total     int               `json:"total"`
	PageIndex int               `json:"page_index"`
	PageSize  int               `json:"page_size"`
	PageCount int               `json:"page_count"`
	Criteria  document.Criteria `json:"criteria"`
}

// Model composes the record set, the criteria and the pagination. Every
// change goes through recompute, so a new filtered set always starts at page 0.
type Model struct {
	records   []document.Record
	criteria  document.Criteria
	paginator *Paginator
	now       func() time.Time

	filtered []document.Record
	version  uint64
}

// NewModel создает модель представления
func NewModel(paginator *Paginator, now func() time.Time) *Model {
	if paginator == nil {
		paginator = NewPaginator(nil, DefaultPageSize)
	}
	if now == nil {
		now = time.Now
	}
	m := &Model{
		criteria:  document.DefaultCriteria(),
		paginator: paginator,
		now:       now,
	}
	m.recompute()
	return m
}

// Apply принимает снимок хранилища. Снимки старее уже примененного пропускаются.
func (m *Model) Apply(snap document.Snapshot) bool {
	if snap.Version() != 0 && snap.Version() <= m.version {
		return false
	}
	m.version = snap.Version()
	m.SetRecords(snap.Records())
	return true
}

func (m *Model) SetRecords(records []document.Record) {
	m.records = records
	m.recompute()
}

func (m *Model) SetCriteria(c document.Criteria) {
	c.Bucket = document.ParseBucket(string(c.Bucket))
	if c.Status == "" {
		c.Status = document.StatusAll
	}
	m.criteria = c
	m.recompute()
}

func (m *Model) SetSearch(text string) {
	c := m.criteria
	c.SearchText = text
	m.SetCriteria(c)
}

func (m *Model) SetBucket(b document.DateBucket) {
	c := m.criteria
	c.Bucket = b
	m.SetCriteria(c)
}

func (m *Model) SetStatus(status string) {
	c := m.criteria
	c.Status = status
	m.SetCriteria(c)
}

// ClearFilters сбрасывает критерии к all/all без поиска
func (m *Model) ClearFilters() {
	m.SetCriteria(document.DefaultCriteria())
}

func (m *Model) SetPageSize(n int) error {
	return m.paginator.SetPageSize(n)
}

func (m *Model) SetPage(k int) {
	m.paginator.SetPage(k, len(m.filtered))
}

func (m *Model) NextPage() {
	m.SetPage(m.paginator.State().PageIndex + 1)
}

func (m *Model) PrevPage() {
	m.SetPage(m.paginator.State().PageIndex - 1)
}

func (m *Model) Criteria() document.Criteria {
	return m.criteria
}

// Filtered возвращает копию всего отфильтрованного набора
func (m *Model) Filtered() []document.Record {
	out := make([]document.Record, len(m.filtered))
	copy(out, m.filtered)
	return out
}

// View возвращает текущую страницу
func (m *Model) View() View {
	state := m.paginator.State()
	return View{
		Items:     Page(m.filtered, state),
		Total:     len(m.filtered),
		PageIndex: state.PageIndex,
		PageSize:  state.PageSize,
		PageCount: PageCount(len(m.filtered), state.PageSize),
		Criteria:  m.criteria,
	}
}

func (m *Model) recompute() {
	m.filtered = document.Filter(m.records, m.criteria, m.now())
	m.paginator.Reset()
}
