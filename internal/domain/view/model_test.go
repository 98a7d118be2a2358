package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctracker/internal/domain/document"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func generate(n int) []document.Record {
	out := make([]document.Record, n)
	for i := range out {
		status := "approved"
		if i%2 == 0 {
			status = document.DefaultPendingStatus
		}
		out[i] = document.Record{
			ID:           fmt.Sprintf("DOC-%03d", i),
			DocumentName: fmt.Sprintf("Document %d", i),
			Status:       status,
			CreatedAt:    now.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newModel() *Model {
	return NewModel(NewPaginator(DefaultPageSizes, DefaultPageSize), func() time.Time { return now })
}

func TestModel_PageSizeScenario(t *testing.T) {
	m := newModel()
	m.SetRecords(generate(16))

	v := m.View()
	assert.Len(t, v.Items, 15)
	assert.Equal(t, 2, v.PageCount)
	assert.Equal(t, 16, v.Total)

	m.SetPage(1)
	v = m.View()
	assert.Equal(t, 1, v.PageIndex)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "DOC-015", v.Items[0].ID)

	require.NoError(t, m.SetPageSize(25))
	v = m.View()
	assert.Equal(t, 0, v.PageIndex)
	assert.Len(t, v.Items, 16)
	assert.Equal(t, 1, v.PageCount)
}

func TestModel_CriteriaChangesResetPage(t *testing.T) {
	changes := []struct {
		name   string
		change func(m *Model)
	}{
		{name: "search", change: func(m *Model) { m.SetSearch("document") }},
		{name: "bucket", change: func(m *Model) { m.SetBucket(document.BucketWeek) }},
		{name: "status", change: func(m *Model) { m.SetStatus("approved") }},
		{name: "clear", change: func(m *Model) { m.ClearFilters() }},
		{name: "records", change: func(m *Model) { m.SetRecords(generate(40)) }},
	}

	for _, tt := range changes {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel()
			m.SetRecords(generate(60))
			m.SetPage(3)
			require.Equal(t, 3, m.View().PageIndex)

			tt.change(m)

			assert.Equal(t, 0, m.View().PageIndex)
		})
	}
}

func TestModel_FiltersAndClears(t *testing.T) {
	m := newModel()
	m.SetRecords(generate(30))

	m.SetStatus("approved")
	m.SetSearch("document 1")
	v := m.View()
	for _, r := range v.Items {
		assert.Equal(t, "approved", r.Status)
		assert.Contains(t, r.DocumentName, "Document 1")
	}
	assert.Equal(t, []string{"DOC-001", "DOC-011", "DOC-013", "DOC-015", "DOC-017", "DOC-019"}, recordIDs(v.Items))

	m.SetBucket(document.BucketToday)
	assert.Equal(t, document.BucketToday, m.Criteria().Bucket)

	m.ClearFilters()
	assert.True(t, m.Criteria().IsDefault())
	assert.Equal(t, 30, m.View().Total)
	assert.Len(t, m.Filtered(), 30)
}

func TestModel_SetCriteriaNormalizes(t *testing.T) {
	m := newModel()
	m.SetCriteria(document.Criteria{Bucket: "fortnight"})

	assert.Equal(t, document.BucketAll, m.Criteria().Bucket)
	assert.Equal(t, document.StatusAll, m.Criteria().Status)
}

func TestModel_NextPrev(t *testing.T) {
	m := newModel()
	m.SetRecords(generate(31))

	m.PrevPage()
	assert.Equal(t, 0, m.View().PageIndex)
	m.NextPage()
	m.NextPage()
	m.NextPage()
	assert.Equal(t, 2, m.View().PageIndex)
	assert.Len(t, m.View().Items, 1)
}

func TestModel_EmptyView(t *testing.T) {
	m := newModel()
	v := m.View()

	assert.Empty(t, v.Items)
	assert.Equal(t, 0, v.Total)
	assert.Equal(t, 0, v.PageCount)
}

func recordIDs(records []document.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
