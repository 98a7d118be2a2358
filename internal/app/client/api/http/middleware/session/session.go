package session

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"doctracker/internal/domain/document"
)

// Session пропускает запросы только при установленной сессии клиента
type Session struct {
	gate document.Gate
	log  *slog.Logger
}

func New(gate document.Gate, log *slog.Logger) *Session {
	return &Session{
		gate: gate,
		log:  log.With(slog.String("component", "session_middleware")),
	}
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (s *Session) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if s.gate != nil && !s.gate.Authenticated() {
			s.log.Warn("request rejected: no session", slog.String("path", ctx.URL().Path))
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")

			err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
				"error": "Unauthorized",
			})
			if err != nil {
				s.log.Error("json encode", slog.Any("error", err))
			}
			return
		}
		next(ctx)
	}
}
