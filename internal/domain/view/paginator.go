package view

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidPageSize = errors.New("page size is not allowed")

// DefaultPageSizes - допустимые размеры страницы по умолчанию
var DefaultPageSizes = []int{15, 25, 50}

const DefaultPageSize = 15

// Pagination - номер текущей страницы и ее размер
type Pagination struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Paginator хранит состояние постраничного просмотра
type Paginator struct {
	allowed []int
	state   Pagination
}

// NewPaginator создает пагинатор. Пустой allowed заменяется
// DefaultPageSizes, недопустимый size - первым допустимым размером.
func NewPaginator(allowed []int, size int) *Paginator {
	sizes := make([]int, 0, len(allowed))
	for _, n := range allowed {
		if n > 0 && !slices.Contains(sizes, n) {
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		sizes = slices.Clone(DefaultPageSizes)
	}
	if !slices.Contains(sizes, size) {
		size = sizes[0]
	}
	return &Paginator{allowed: sizes, state: Pagination{PageSize: size}}
}

// AllowedSizes возвращает копию допустимых размеров страницы
func (p *Paginator) AllowedSizes() []int {
	return slices.Clone(p.allowed)
}

func (p *Paginator) State() Pagination {
	return p.state
}

// SetPageSize меняет размер страницы и возвращает на первую страницу
func (p *Paginator) SetPageSize(n int) error {
	if !slices.Contains(p.allowed, n) {
		return fmt.Errorf("%w: %d, allowed %v", ErrInvalidPageSize, n, p.allowed)
	}
	p.state = Pagination{PageIndex: 0, PageSize: n}
	return nil
}

// SetPage переходит на страницу k, приводя ее к диапазону [0, last]
func (p *Paginator) SetPage(k, count int) {
	last := PageCount(count, p.state.PageSize) - 1
	switch {
	case last < 0 || k < 0:
		k = 0
	case k > last:
		k = last
	}
	p.state.PageIndex = k
}

// Reset возвращает на первую страницу
func (p *Paginator) Reset() {
	p.state.PageIndex = 0
}

// PageCount returns the number of pages for count items, zero for no items
func PageCount(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Page returns the items of page state.PageIndex. The last page may be short.
func Page[T any](items []T, state Pagination) []T {
	if state.PageSize <= 0 || state.PageIndex < 0 {
		return []T{}
	}
	start := state.PageIndex * state.PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+state.PageSize, len(items))
	return slices.Clone(items[start:end])
}
