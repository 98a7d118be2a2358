package document

import (
	"context"
	"time"
)

// Remote - удаленный сервис документов
type Remote interface {
	ListDocuments(ctx context.Context) ([]Record, error)
	GetDocument(ctx context.Context, id string) (*Record, error)
	CreateDocument(ctx context.Context, f Fields) (string, error)
	UpdateDocument(ctx context.Context, id string, f Fields) error
	DeleteDocument(ctx context.Context, id string) error
	ListStatuses(ctx context.Context) ([]string, error)
	ListDocumentTypes(ctx context.Context) ([]string, error)
}

// SnapshotCache хранит последний загруженный набор документов локально
type SnapshotCache interface {
	Save(ctx context.Context, records []Record, fetchedAt time.Time) error
	Load(ctx context.Context) ([]Record, time.Time, error)
}

// Gate сообщает, установлена ли сессия пользователя
type Gate interface {
	Authenticated() bool
}

// GateFunc позволяет использовать функцию как Gate
type GateFunc func() bool

func (f GateFunc) Authenticated() bool { return f() }
