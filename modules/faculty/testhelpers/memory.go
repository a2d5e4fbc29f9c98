package testhelpers

import (
	"context"
	"sort"
	"sync"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/pkg/constants"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/repo"
)

type memberKey struct {
	kind member.Kind
	key  string
}

// MemoryRepository is a member.Repository keyed by (kind, natural key)
// like the unique index in the database.
type MemoryRepository struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]member.Member
	byKey   map[memberKey]uint
	upserts int
	failFor map[string]error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    map[uint]member.Member{},
		byKey:   map[memberKey]uint{},
		failFor: map[string]error{},
	}
}

func (r *MemoryRepository) store(m member.Member, id uint) member.Member {
	stored := member.Hydrate(id, m.Kind(), m.NaturalKey(), m.FullName(), m.IdentificationType(),
		m.IdentificationNumber(), m.Attributes(), m.Active(), m.CreatedAt(), m.UpdatedAt())
	r.byID[id] = stored
	r.byKey[memberKey{m.Kind(), m.NaturalKey()}] = id
	return stored
}

// FailFor makes every Upsert of key return err.
func (r *MemoryRepository) FailFor(key string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failFor[key] = err
}

func (r *MemoryRepository) Upserts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upserts
}

func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *MemoryRepository) GetPaginated(ctx context.Context, params *member.FindParams) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]member.Member, 0, len(r.byID))
	for _, m := range r.byID {
		if params != nil && params.Kind != "" && m.Kind() != params.Kind {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *MemoryRepository) Count(ctx context.Context, params *member.FindParams) (int64, error) {
	items, err := r.GetPaginated(ctx, params)
	return int64(len(items)), err
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uint) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	return m, nil
}

func (r *MemoryRepository) GetByNaturalKey(ctx context.Context, kind member.Kind, key string) (member.Member, error) {
	r.mu.Lock()
	id, ok := r.byKey[memberKey{kind, key}]
	r.mu.Unlock()
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[memberKey{m.Kind(), m.NaturalKey()}]; exists {
		return member.Member{}, member.ErrDuplicate
	}
	r.nextID++
	return r.store(m, r.nextID), nil
}

func (r *MemoryRepository) Update(ctx context.Context, m member.Member) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[m.ID()]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	delete(r.byKey, memberKey{old.Kind(), old.NaturalKey()})
	return r.store(m, m.ID()), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return member.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byKey, memberKey{m.Kind(), m.NaturalKey()})
	return nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, m member.Member) (member.Member, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if err := r.failFor[m.NaturalKey()]; err != nil {
		return member.Member{}, false, err
	}
	if id, ok := r.byKey[memberKey{m.Kind(), m.NaturalKey()}]; ok {
		return r.store(m, id), false, nil
	}
	r.nextID++
	return r.store(m, r.nextID), true, nil
}

func (r *MemoryRepository) Stats(ctx context.Context) (member.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := member.Stats{Total: int64(len(r.byID))}
	for _, m := range r.byID {
		if m.Kind() == member.KindLecturer {
			stats.Lecturers++
		} else {
			stats.Staff++
		}
	}
	return stats, nil
}

// Recorder collects every faculty event published on a bus.
type Recorder struct {
	mu     sync.Mutex
	events []any
}

// NewEventRecorder returns a real event bus together with a Recorder
// subscribed to it.
func NewEventRecorder() (eventbus.EventBus, *Recorder) {
	bus := eventbus.NewEventPublisher(nil)
	rec := &Recorder{}
	add := func(e any) {
		rec.mu.Lock()
		rec.events = append(rec.events, e)
		rec.mu.Unlock()
	}
	bus.Subscribe(func(e member.CreatedEvent) { add(e) })
	bus.Subscribe(func(e member.UpdatedEvent) { add(e) })
	bus.Subscribe(func(e member.DeletedEvent) { add(e) })
	bus.Subscribe(func(e performance.CreatedEvent) { add(e) })
	bus.Subscribe(func(e performance.UpdatedEvent) { add(e) })
	bus.Subscribe(func(e performance.DeletedEvent) { add(e) })
	bus.Subscribe(func(e ingest.ImportedEvent) { add(e) })
	bus.Subscribe(func(e ingest.ImportFailedEvent) { add(e) })
	return bus, rec
}

func (r *Recorder) All() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.events...)
}

// openTx satisfies repo.Tx so InTx runs in place without a pool.
type openTx struct{ repo.Tx }

// TxContext returns a context that already carries a transaction.
func TxContext() context.Context {
	return context.WithValue(context.Background(), constants.TxKey, openTx{})
}
