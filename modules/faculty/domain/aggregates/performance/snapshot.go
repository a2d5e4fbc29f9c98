package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the JSON shape of an indicator used by the API and the
// activity log. Decimals render as JSON strings.
type Snapshot struct {
	ID        uint                `json:"id"`
	Year      int                 `json:"year"`
	Quarter   int                 `json:"quarter"`
	Category  string              `json:"category"`
	Indicator string              `json:"indicator"`
	Target    decimal.NullDecimal `json:"target_value"`
	Achieved  decimal.NullDecimal `json:"achieved_value"`
	Progress  decimal.NullDecimal `json:"progress"`
	Unit      *string             `json:"unit"`
	Status    Status              `json:"status"`
	Notes     *string             `json:"notes"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (i Indicator) Snapshot() Snapshot {
	d := i.details
	return Snapshot{
		ID:        i.id,
		Year:      d.Year,
		Quarter:   d.Quarter,
		Category:  d.Category,
		Indicator: d.Indicator,
		Target:    d.Target,
		Achieved:  d.Achieved,
		Progress:  i.Progress(),
		Unit:      d.Unit,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: i.createdAt,
		UpdatedAt: i.updatedAt,
	}
}
