package member

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound  = errors.New("member not found")
	ErrDuplicate = errors.New("member already exists")
)

type FindParams struct {
	Q                  string
	Kind               Kind
	Department         string
	IdentificationType IdentificationType
	Active             *bool
	Limit              int
	Offset             int
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type Stats struct {
	Total        int64             `json:"total"`
	Lecturers    int64             `json:"lecturers"`
	Staff        int64             `json:"staff"`
	Active       int64             `json:"active"`
	ByDepartment []DepartmentCount `json:"by_department"`
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Member, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetByID(ctx context.Context, id uint) (Member, error)
	GetByNaturalKey(ctx context.Context, kind Kind, key string) (Member, error)
	Create(ctx context.Context, m Member) (Member, error)
	Update(ctx context.Context, m Member) (Member, error)
	Delete(ctx context.Context, id uint) error
	// Upsert inserts m or updates the member sharing its kind and natural
	// key in one statement; inserted reports which happened.
	Upsert(ctx context.Context, m Member) (stored Member, inserted bool, err error)
	Stats(ctx context.Context) (Stats, error)
}
