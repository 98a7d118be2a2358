package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"doctracker/internal/domain/document"
	"doctracker/internal/domain/view"
)

var ErrUnknownCommand = errors.New("unknown browse command")

// BrowseSession - интерактивный просмотр документов. Модель представления
// получает каждый новый снимок хранилища через подписку.
type BrowseSession struct {
	store       *document.Store
	mu          sync.Mutex
	model       *view.Model
	unsubscribe func()
}

// Browse открывает сессию просмотра поверх текущего снимка
func (a *App) Browse() *BrowseSession {
	b := &BrowseSession{
		store: a.store,
		model: a.NewViewModel(),
	}
	b.model.Apply(a.store.Snapshot())
	b.unsubscribe = a.store.Subscribe(func(snap document.Snapshot) {
		b.mu.Lock()
		b.model.Apply(snap)
		b.mu.Unlock()
	})
	return b
}

// View возвращает текущую страницу
func (b *BrowseSession) View() view.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.model.View()
}

// Execute выполняет команду просмотра и возвращает новую страницу.
// Номера страниц в командах начинаются с 1.
func (b *BrowseSession) Execute(ctx context.Context, line string) (view.View, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	if strings.ToLower(name) == "refresh" {
		if err := b.store.Refresh(ctx); err != nil {
			return b.View(), err
		}
		return b.View(), nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch strings.ToLower(name) {
	case "search", "s":
		b.model.SetSearch(arg)
	case "bucket", "b":
		b.model.SetBucket(document.ParseBucket(arg))
	case "status":
		if arg == "" {
			arg = document.StatusAll
		}
		b.model.SetStatus(arg)
	case "clear":
		b.model.ClearFilters()
	case "next", "n":
		b.model.NextPage()
	case "prev", "p":
		b.model.PrevPage()
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return b.model.View(), fmt.Errorf("номер страницы: %w", err)
		}
		b.model.SetPage(n - 1)
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return b.model.View(), fmt.Errorf("размер страницы: %w", err)
		}
		if err := b.model.SetPageSize(n); err != nil {
			return b.model.View(), err
		}
	default:
		return b.model.View(), fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return b.model.View(), nil
}

// Close отменяет подписку на хранилище
func (b *BrowseSession) Close() {
	b.unsubscribe()
}
