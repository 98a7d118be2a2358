package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"doctracker/internal/domain/document"
	"doctracker/internal/infrastructure/migration"
)

// SQLiteStorage - локальный снимок последнего загруженного набора документов
type SQLiteStorage struct {
	db *sql.DB
}

var _ document.SnapshotCache = (*SQLiteStorage)(nil)

// NewSQLiteStorage применяет миграции и открывает базу кэша
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := migration.NewMigration(path, migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Save заменяет сохраненный снимок целиком
func (s *SQLiteStorage) Save(ctx context.Context, records []document.Record, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("ошибка очистки снимка: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (position, id, document_name, sender_name, receiver_name,
		                       document_type, status, action, notes, document_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var docDate sql.NullString
		if r.DocumentDate != nil {
			docDate = sql.NullString{String: r.DocumentDate.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.DocumentName, r.SenderName, r.ReceiverName,
			r.DocumentType, r.Status, r.Action, r.Notes, docDate,
			r.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("ошибка сохранения документа %s: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (singleton, fetched_at, total) VALUES (1, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET fetched_at = excluded.fetched_at, total = excluded.total
	`, fetchedAt.UTC().Format(time.RFC3339Nano), len(records)); err != nil {
		return fmt.Errorf("ошибка сохранения метаданных снимка: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}

// Load возвращает сохраненный снимок в исходном порядке. Пустой кэш
// возвращает nil без ошибки.
func (s *SQLiteStorage) Load(ctx context.Context) ([]document.Record, time.Time, error) {
	var fetchedRaw string
	err := s.db.QueryRowContext(ctx, "SELECT fetched_at FROM snapshot_meta WHERE singleton = 1").Scan(&fetchedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка чтения метаданных снимка: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, fetchedRaw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка парсинга времени снимка: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_name, sender_name, receiver_name, document_type,
		       status, action, notes, document_date, created_at
		FROM documents
		ORDER BY position
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var records []document.Record
	for rows.Next() {
		var (
			r         document.Record
			docDate   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.DocumentName, &r.SenderName, &r.ReceiverName, &r.DocumentType,
			&r.Status, &r.Action, &r.Notes, &docDate, &createdAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("ошибка сканирования документа: %w", err)
		}

		if docDate.Valid && docDate.String != "" {
			d, err := document.ParseDate(docDate.String)
			if err != nil {
				return nil, time.Time{}, fmt.Errorf("ошибка парсинга даты документа %s: %w", r.ID, err)
			}
			r.DocumentDate = &d
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("ошибка парсинга времени создания %s: %w", r.ID, err)
		}

		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("ошибка чтения документов: %w", err)
	}

	return records, fetchedAt, nil
}

// CountRecords возвращает число документов в снимке
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
