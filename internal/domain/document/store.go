package document

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultEnumTTL = 5 * time.Minute

// Snapshot - неизменяемый срез состояния хранилища
type Snapshot struct {
	records   []Record
	index     map[string]int
	version   uint64
	fetchedAt time.Time
	stale     bool
}

func newSnapshot(records []Record, version uint64, fetchedAt time.Time, stale bool) Snapshot {
	owned := make([]Record, len(records))
	index := make(map[string]int, len(records))
	for i, r := range records {
		r.Normalize()
		owned[i] = r
		if _, dup := index[r.ID]; !dup {
			index[r.ID] = i
		}
	}
	return Snapshot{records: owned, index: index, version: version, fetchedAt: fetchedAt, stale: stale}
}

// Records возвращает копию записей в порядке, полученном от сервиса
func (s Snapshot) Records() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		r.DocumentDate = r.DocumentDate.Clone()
		out[i] = r
	}
	return out
}

func (s Snapshot) Len() int { return len(s.records) }

// Lookup ищет запись по идентификатору
func (s Snapshot) Lookup(id string) (Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	r := s.records[i]
	r.DocumentDate = r.DocumentDate.Clone()
	return r, true
}

// Version растет с каждым примененным обновлением
func (s Snapshot) Version() uint64 { return s.version }

func (s Snapshot) FetchedAt() time.Time { return s.fetchedAt }

// Stale сообщает, что набор восстановлен из локального кэша
func (s Snapshot) Stale() bool { return s.stale }

// Store owns the record set loaded from the remote service. Every successful
// mutation is followed by a full refresh; nothing is merged locally.
type Store struct {
	remote    Remote
	cache     SnapshotCache
	gate      Gate
	validator *Validator
	log       *slog.Logger

	pendingStatus string
	enumTTL       time.Duration
	now           func() time.Time

	mu      sync.RWMutex
	snap    Snapshot
	err     error
	applied uint64
	subs    map[int]func(Snapshot)
	nextSub int

	seq atomic.Uint64

	enumGroup singleflight.Group
	enumMu    sync.Mutex
	enums     Enums
	enumsAt   time.Time
}

// Option настраивает Store
type Option func(*Store)

func WithCache(c SnapshotCache) Option {
	return func(s *Store) { s.cache = c }
}

func WithGate(g Gate) Option {
	return func(s *Store) { s.gate = g }
}

func WithPendingStatus(status string) Option {
	return func(s *Store) {
		if status != "" {
			s.pendingStatus = status
		}
	}
}

func WithEnumTTL(ttl time.Duration) Option {
	return func(s *Store) { s.enumTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store backed by remote
func NewStore(remote Remote, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote:        remote,
		validator:     NewValidator(),
		log:           log.With("component", "document_store"),
		pendingStatus: DefaultPendingStatus,
		enumTTL:       DefaultEnumTTL,
		now:           time.Now,
		snap:          newSnapshot(nil, 0, time.Time{}, false),
		subs:          make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current record set
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Err returns the error of the last failed refresh, nil after a successful one
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// PendingStatus returns the status assigned to new documents
func (s *Store) PendingStatus() string {
	return s.pendingStatus
}

// Subscribe registers fn to receive every applied snapshot. The returned
// function removes the subscription. fn runs outside the store lock, so
// overlapping refreshes may deliver snapshots out of order; compare
// Snapshot.Version and drop older ones.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Refresh fetches the full record set and replaces the current one. A result
// that settles after a newer refresh has been applied is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	const op = "refresh"
	if err := s.checkGate(op); err != nil {
		return err
	}

	seq := s.seq.Add(1)
	records, err := s.remote.ListDocuments(ctx)
	if err != nil {
		err = classify(op, err)
		s.mu.Lock()
		if seq > s.applied {
			s.err = err
		}
		s.mu.Unlock()
		s.log.Error("failed to refresh documents", "seq", seq, "error", err)
		return err
	}

	fetchedAt := s.now()
	if !s.apply(seq, records, fetchedAt, false) {
		s.log.Debug("stale refresh result discarded", "seq", seq)
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, records, fetchedAt); err != nil {
			s.log.Warn("failed to save documents snapshot", "error", err)
		}
	}
	return nil
}

// Warm restores the last cached record set while nothing has been loaded yet
func (s *Store) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	records, fetchedAt, err := s.cache.Load(ctx)
	if err != nil {
		return err
	}
	if fetchedAt.IsZero() && len(records) == 0 {
		return nil
	}
	if s.apply(0, records, fetchedAt, true) {
		s.log.Info("documents restored from cache", "count", len(records), "fetched_at", fetchedAt)
	}
	return nil
}

// Load refreshes the records and the enumerations concurrently. When the
// refresh fails the cached snapshot, if any, is used instead.
func (s *Store) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.Refresh(ctx)
	})
	g.Go(func() error {
		if _, err := s.Enums(ctx); err != nil {
			s.log.Warn("failed to load enums", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, ErrUnauthenticated) {
		if werr := s.Warm(ctx); werr != nil {
			s.log.Warn("failed to restore documents from cache", "error", werr)
		}
	}
	return err
}

// Get loads a single document from the remote service
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	const op = "get"
	if err := s.checkGate(op); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ValidationError(op, "id")
	}
	rec, err := s.remote.GetDocument(ctx, id)
	if err != nil {
		return nil, classify(op, err)
	}
	rec.Normalize()
	return rec, nil
}

// Create validates fields, submits a new document and returns its id
func (s *Store) Create(ctx context.Context, f Fields) (string, error) {
	const op = "create"
	if err := s.checkGate(op); err != nil {
		return "", err
	}

	f = f.WithDefaults(s.pendingStatus)
	if err := s.validator.Validate(op, f, s.knownEnums()); err != nil {
		return "", err
	}

	id, err := s.remote.CreateDocument(ctx, f)
	if err != nil {
		err = classify(op, err)
		s.log.Error("failed to create document", "error", err)
		return "", err
	}
	s.log.Info("document created", "document_id", id)

	s.resync(ctx, op)
	return id, nil
}

// Update validates fields and submits them for the document id
func (s *Store) Update(ctx context.Context, id string, f Fields) error {
	const op = "update"
	if err := s.checkGate(op); err != nil {
		return err
	}
	if id == "" {
		return ValidationError(op, "id")
	}
	if err := s.validator.Validate(op, f, s.knownEnums()); err != nil {
		return err
	}

	if err := s.remote.UpdateDocument(ctx, id, f); err != nil {
		err = classify(op, err)
		s.log.Error("failed to update document", "document_id", id, "error", err)
		return err
	}
	s.log.Info("document updated", "document_id", id)

	s.resync(ctx, op)
	return nil
}

// Remove deletes the document id
func (s *Store) Remove(ctx context.Context, id string) error {
	const op = "remove"
	if err := s.checkGate(op); err != nil {
		return err
	}
	if id == "" {
		return ValidationError(op, "id")
	}

	if err := s.remote.DeleteDocument(ctx, id); err != nil {
		err = classify(op, err)
		s.log.Error("failed to delete document", "document_id", id, "error", err)
		return err
	}
	s.log.Info("document deleted", "document_id", id)

	s.resync(ctx, op)
	return nil
}

// Enums returns statuses and document types, cached for the configured TTL
func (s *Store) Enums(ctx context.Context) (Enums, error) {
	if e, ok := s.cachedEnums(); ok {
		return e, nil
	}

	v, err, _ := s.enumGroup.Do("enums", func() (any, error) {
		var e Enums
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			statuses, err := s.remote.ListStatuses(gctx)
			e.Statuses = statuses
			return err
		})
		g.Go(func() error {
			types, err := s.remote.ListDocumentTypes(gctx)
			e.DocumentTypes = types
			return err
		})
		if err := g.Wait(); err != nil {
			return Enums{}, classify("enums", err)
		}

		s.enumMu.Lock()
		s.enums = e
		s.enumsAt = s.now()
		s.enumMu.Unlock()
		return e, nil
	})
	if err != nil {
		return Enums{}, err
	}
	return cloneEnums(v.(Enums)), nil
}

// Validate checks fields against the required set and the known enumerations
func (s *Store) Validate(op string, f Fields) error {
	return s.validator.Validate(op, f, s.knownEnums())
}

func (s *Store) cachedEnums() (Enums, bool) {
	s.enumMu.Lock()
	defer s.enumMu.Unlock()
	if s.enumsAt.IsZero() || s.now().Sub(s.enumsAt) > s.enumTTL {
		return Enums{}, false
	}
	return cloneEnums(s.enums), true
}

func (s *Store) knownEnums() Enums {
	s.enumMu.Lock()
	defer s.enumMu.Unlock()
	return cloneEnums(s.enums)
}

// resync refreshes after a successful mutation. Its failure stays in Err.
func (s *Store) resync(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("refresh after mutation failed", "op", op, "error", err)
	}
}

func (s *Store) apply(seq uint64, records []Record, fetchedAt time.Time, stale bool) bool {
	s.mu.Lock()
	if stale {
		if s.applied > 0 || s.snap.version > 0 {
			s.mu.Unlock()
			return false
		}
	} else if seq <= s.applied {
		s.mu.Unlock()
		return false
	} else {
		s.applied = seq
		s.err = nil
	}

	s.snap = newSnapshot(records, s.snap.version+1, fetchedAt, stale)
	snap := s.snap
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return true
}

func (s *Store) checkGate(op string) error {
	if s.gate != nil && !s.gate.Authenticated() {
		return NewError(op, ErrUnauthenticated, nil)
	}
	return nil
}

func classify(op string, err error) error {
	var docErr *Error
	if errors.As(err, &docErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewError(op, ErrNetwork, err)
	}
	return NewError(op, ErrRemote, err)
}

func cloneEnums(e Enums) Enums {
	return Enums{
		Statuses:      slices.Clone(e.Statuses),
		DocumentTypes: slices.Clone(e.DocumentTypes),
	}
}
