package performance

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound  = errors.New("performance indicator not found")
	ErrDuplicate = errors.New("performance indicator already exists")
)

type FindParams struct {
	Q        string
	Year     int
	Quarter  int
	Category string
	Status   Status
	Limit    int
	Offset   int
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Stats struct {
	Total       int64           `json:"total"`
	Pending     int64           `json:"pending"`
	OnTrack     int64           `json:"on_track"`
	Achieved    int64           `json:"achieved"`
	NotAchieved int64           `json:"not_achieved"`
	ByCategory  []CategoryCount `json:"by_category"`
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Indicator, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uint) (Indicator, error)
	Create(ctx context.Context, i Indicator) (Indicator, error)
	Update(ctx context.Context, i Indicator) (Indicator, error)
	Delete(ctx context.Context, id uint) error
	// Upsert inserts i or updates the indicator with the same year, quarter,
	// category and name; inserted reports which happened.
	Upsert(ctx context.Context, i Indicator) (stored Indicator, inserted bool, err error)
	// Stats counts indicators per status, optionally within one year.
	Stats(ctx context.Context, year int) (Stats, error)
}
