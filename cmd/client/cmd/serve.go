// cmd/client/cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"doctracker/internal/app/client/api"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить локальный API просмотра документов",
	Long: `Запускает HTTP API поверх клиента: постраничный список с фильтрами,
операции с документами, обновление списка и выгрузку XLSX.

Документация OpenAPI доступна по адресу /docs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		addr := cfg.ViewAddress
		if serveAddr != "" {
			addr = serveAddr
		}

		if err := app.Load(ctx); err != nil {
			log.Warn("Первоначальная загрузка документов не удалась", "error", err)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.New(app, log),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("API просмотра запущен", "addr", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ошибка сервера: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Остановка API просмотра")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "адрес API (по умолчанию VIEW_ADDRESS)")
}
