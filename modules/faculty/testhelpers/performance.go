package testhelpers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
)

// PerformanceRepository is a performance.Repository keyed by the indicator
// natural key like the unique constraint in the database.
type PerformanceRepository struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]performance.Indicator
	byKey  map[string]uint
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{
		byID:  map[uint]performance.Indicator{},
		byKey: map[string]uint{},
	}
}

func (r *PerformanceRepository) store(i performance.Indicator, id uint) performance.Indicator {
	stored := performance.Hydrate(id, i.Details(), i.CreatedAt(), i.UpdatedAt())
	r.byID[id] = stored
	r.byKey[i.NaturalKey()] = id
	return stored
}

func (r *PerformanceRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func matches(i performance.Indicator, params *performance.FindParams) bool {
	if params == nil {
		return true
	}
	switch {
	case params.Year != 0 && i.Year() != params.Year:
		return false
	case params.Quarter != 0 && i.Quarter() != params.Quarter:
		return false
	case params.Category != "" && i.Category() != params.Category:
		return false
	case params.Status != "" && i.Status() != params.Status:
		return false
	}
	q := strings.ToLower(params.Q)
	return q == "" || strings.Contains(strings.ToLower(i.Name()), q) || strings.Contains(strings.ToLower(i.Category()), q)
}

func (r *PerformanceRepository) GetPaginated(ctx context.Context, params *performance.FindParams) ([]performance.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]performance.Indicator, 0, len(r.byID))
	for _, i := range r.byID {
		if matches(i, params) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out, nil
}

func (r *PerformanceRepository) Count(ctx context.Context, params *performance.FindParams) (int64, error) {
	items, err := r.GetPaginated(ctx, params)
	return int64(len(items)), err
}

func (r *PerformanceRepository) GetByID(ctx context.Context, id uint) (performance.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return performance.Indicator{}, performance.ErrNotFound
	}
	return i, nil
}

func (r *PerformanceRepository) Create(ctx context.Context, i performance.Indicator) (performance.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[i.NaturalKey()]; exists {
		return performance.Indicator{}, performance.ErrDuplicate
	}
	r.nextID++
	return r.store(i, r.nextID), nil
}

func (r *PerformanceRepository) Update(ctx context.Context, i performance.Indicator) (performance.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[i.ID()]
	if !ok {
		return performance.Indicator{}, performance.ErrNotFound
	}
	if id, taken := r.byKey[i.NaturalKey()]; taken && id != i.ID() {
		return performance.Indicator{}, performance.ErrDuplicate
	}
	delete(r.byKey, old.NaturalKey())
	return r.store(i, i.ID()), nil
}

func (r *PerformanceRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return performance.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byKey, i.NaturalKey())
	return nil
}

func (r *PerformanceRepository) Upsert(ctx context.Context, i performance.Indicator) (performance.Indicator, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[i.NaturalKey()]; ok {
		return r.store(i, id), false, nil
	}
	r.nextID++
	return r.store(i, r.nextID), true, nil
}

func (r *PerformanceRepository) Stats(ctx context.Context, year int) (performance.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats performance.Stats
	perCategory := map[string]int64{}
	for _, i := range r.byID {
		if year != 0 && i.Year() != year {
			continue
		}
		stats.Total++
		perCategory[i.Category()]++
		switch i.Status() {
		case performance.StatusOnTrack:
			stats.OnTrack++
		case performance.StatusAchieved:
			stats.Achieved++
		case performance.StatusNotAchieved:
			stats.NotAchieved++
		default:
			stats.Pending++
		}
	}
	for category, n := range perCategory {
		stats.ByCategory = append(stats.ByCategory, performance.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(stats.ByCategory, func(a, b int) bool { return stats.ByCategory[a].Category < stats.ByCategory[b].Category })
	return stats, nil
}
