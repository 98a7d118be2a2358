// Локальный API просмотра документов, команда serve.
//
// GET    /api/v1/health               # Состояние снимка (публичный)
// GET    /api/v1/enums                # Статусы и типы документов
// GET    /api/v1/documents            # Страница документов с фильтрами
// POST   /api/v1/documents            # Создать документ
// POST   /api/v1/documents/refresh    # Перечитать документы с сервиса
// GET    /api/v1/documents/export     # Выгрузка XLSX
// GET    /api/v1/documents/{id}       # Получить документ
// PUT    /api/v1/documents/{id}       # Обновить документ
// DELETE /api/v1/documents/{id}       # Удалить документ

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"doctracker/internal/app/client"
	documentAPI "doctracker/internal/app/client/api/http/document"
	healthAPI "doctracker/internal/app/client/api/http/health"
	"doctracker/internal/app/client/api/http/middleware"
	"doctracker/internal/app/client/api/http/middleware/logger"
	"doctracker/internal/app/client/api/http/middleware/session"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Document *documentAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(app *client.App, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Doctracker View API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(app, log)
	h.Health.SetupRoutes(API)
	h.Document.SetupRoutes(API)

	return mux
}

func handlers(app *client.App, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	sessionMW := session.New(app.Gate(), log)
	middlewares := middleware.NewContainer(loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(app.Store(), log, middlewares.GetAllAndClear())

	middlewares.Add(sessionMW.Middleware())
	documentHandler := documentAPI.NewHandler(app, app.Formatter(), log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Document: documentHandler,
	}
}
