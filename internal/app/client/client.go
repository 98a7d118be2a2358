package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"doctracker/internal/app/client/config"
	"doctracker/internal/domain/document"
	"doctracker/internal/domain/export"
	"doctracker/internal/domain/view"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	storage    *SQLiteStorage
	store      *document.Store
	formatter  document.Formatter
	serializer *export.Serializer
	gate       document.Gate
	now        func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)
	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		formatter:  document.NewFormatter(cfg.Location),
		now:        time.Now,
	}
	app.serializer = export.NewSerializer(app.formatter)

	opts := []document.Option{
		document.WithPendingStatus(cfg.DefaultStatus),
		document.WithEnumTTL(cfg.EnumTTL),
	}

	// Локальный снимок необязателен: без него клиент работает только онлайн
	if cfg.CacheEnabled {
		storage, err := NewSQLiteStorage(cfg.CachePath)
		if err != nil {
			log.Warn("Не удалось инициализировать SQLite, кэш документов отключен", "error", err)
		} else {
			app.storage = storage
			opts = append(opts, document.WithCache(storage))
		}
	}

	if token, err := app.GetToken(); err == nil && token != "" {
		httpCl.SetToken(token)
		log.Debug("Токен загружен из файла")
	}
	if cfg.RequireAuth {
		app.gate = tokenGate{path: cfg.TokenPath}
		opts = append(opts, document.WithGate(app.gate))
	} else {
		app.gate = document.GateFunc(func() bool { return true })
	}

	app.store = document.NewStore(httpCl, log, opts...)
	return app, nil
}

// tokenGate считает сессию установленной, пока существует файл токена
type tokenGate struct {
	path string
}

func (g tokenGate) Authenticated() bool {
	data, err := os.ReadFile(g.path)
	return err == nil && strings.TrimSpace(string(data)) != ""
}

// GetToken читает токен сессии из файла
func (a *App) GetToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) Config() *config.Config         { return a.config }
func (a *App) Logger() *slog.Logger           { return a.log }
func (a *App) Store() *document.Store         { return a.store }
func (a *App) Formatter() document.Formatter  { return a.formatter }
func (a *App) Serializer() *export.Serializer { return a.serializer }
func (a *App) Gate() document.Gate            { return a.gate }

// GetDocument загружает документ с сервера
func (a *App) GetDocument(ctx context.Context, id string) (*document.Record, error) {
	return a.store.Get(ctx, id)
}

// CreateDocument создает документ и возвращает его идентификатор
func (a *App) CreateDocument(ctx context.Context, f document.Fields) (string, error) {
	return a.store.Create(ctx, f)
}

// UpdateDocument сохраняет поля документа
func (a *App) UpdateDocument(ctx context.Context, id string, f document.Fields) error {
	return a.store.Update(ctx, id, f)
}

// DeleteDocument удаляет документ
func (a *App) DeleteDocument(ctx context.Context, id string) error {
	return a.store.Remove(ctx, id)
}

// Refresh перечитывает документы с сервера и возвращает новый снимок
func (a *App) Refresh(ctx context.Context) (document.Snapshot, error) {
	if err := a.store.Refresh(ctx); err != nil {
		return a.store.Snapshot(), err
	}
	return a.store.Snapshot(), nil
}

// Enums возвращает статусы и типы документов
func (a *App) Enums(ctx context.Context) (document.Enums, error) {
	return a.store.Enums(ctx)
}

// NewViewModel создает модель просмотра с настройками страниц из конфигурации
func (a *App) NewViewModel() *view.Model {
	return view.NewModel(view.NewPaginator(a.config.PageSizes, a.config.PageSize), a.now)
}

// Load загружает документы и справочники. При недоступном сервисе
// используется локальный снимок, если он есть.
func (a *App) Load(ctx context.Context) error {
	err := a.store.Load(ctx)
	if err == nil {
		return nil
	}
	if a.store.Snapshot().Stale() {
		a.log.Warn("Сервис документов недоступен, показан локальный снимок",
			"fetched_at", a.store.Snapshot().FetchedAt(),
			"error", err,
		)
		return nil
	}
	return err
}

// ListRequest - параметры постраничного списка
type ListRequest struct {
	Criteria document.Criteria
	Page     int
	PageSize int
}

// List загружает документы и возвращает запрошенную страницу
func (a *App) List(ctx context.Context, req ListRequest) (view.View, error) {
	if err := a.Load(ctx); err != nil {
		return view.View{}, err
	}

	model := a.NewViewModel()
	model.SetRecords(a.store.Snapshot().Records())
	model.SetCriteria(req.Criteria)
	if req.PageSize != 0 {
		if err := model.SetPageSize(req.PageSize); err != nil {
			return view.View{}, document.NewError("list", document.ErrValidation, err)
		}
	}
	model.SetPage(req.Page)
	return model.View(), nil
}

// SaveOutcome - результат сохранения черновика
type SaveOutcome int

const (
	SaveApplied SaveOutcome = iota
	SaveNoChanges
)

// OpenDraft загружает документ и открывает черновик редактирования
func (a *App) OpenDraft(ctx context.Context, id string) (*document.Tracker, error) {
	rec, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return document.NewTracker(*rec), nil
}

// SaveDraft отправляет черновик, если в нем есть изменения
func (a *App) SaveDraft(ctx context.Context, tr *document.Tracker) (SaveOutcome, error) {
	if !tr.HasChanges() {
		return SaveNoChanges, nil
	}
	if !tr.CanSave() {
		if err := a.store.Validate("update", *tr.Draft()); err != nil {
			return SaveApplied, err
		}
	}
	if err := a.store.Update(ctx, tr.ID(), tr.Draft().Clone()); err != nil {
		return SaveApplied, err
	}
	tr.MarkSaved()
	return SaveApplied, nil
}

// ExportRequest - параметры выгрузки
type ExportRequest struct {
	Criteria document.Criteria
	From     *document.Date
	To       *document.Date
	Columns  []export.ColumnID
}

// Export строит таблицу выгрузки по текущему набору документов
func (a *App) Export(ctx context.Context, req ExportRequest) (*export.Table, error) {
	if err := a.Load(ctx); err != nil {
		return nil, err
	}
	if req.From != nil && req.To != nil && req.To.In(time.UTC).Before(req.From.In(time.UTC)) {
		return nil, document.ValidationError("export", "from", "to")
	}

	now := a.now()
	records := document.Filter(a.store.Snapshot().Records(), req.Criteria, now)
	records = document.FilterByCreatedRange(records, req.From, req.To, a.config.Location)

	columns := req.Columns
	if len(columns) == 0 {
		columns = export.DefaultColumns()
	}
	return a.serializer.Serialize(records, columns, now)
}

// ExportToFile сохраняет выгрузку в каталог dir или в каталог из конфигурации
func (a *App) ExportToFile(ctx context.Context, req ExportRequest, dir string) (string, error) {
	table, err := a.Export(ctx, req)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = a.config.ExportDir
	}
	path, err := table.Save(dir)
	if err != nil {
		return "", fmt.Errorf("сохранение выгрузки: %w", err)
	}
	a.log.Info("Выгрузка сохранена", "path", path, "rows", len(table.Rows))
	return path, nil
}

// Close освобождает локальные ресурсы
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	if err := a.storage.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("закрытие кэша: %w", err)
	}
	return nil
}
