package performance

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusOnTrack     Status = "on_track"
	StatusAchieved    Status = "achieved"
	StatusNotAchieved Status = "not_achieved"
)

var Statuses = []Status{StatusPending, StatusOnTrack, StatusAchieved, StatusNotAchieved}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOnTrack, StatusAchieved, StatusNotAchieved:
		return true
	}
	return false
}

// ParseStatus folds spreadsheet spellings onto a status. Anything it does
// not recognise is pending.
func ParseStatus(s string) Status {
	v := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch v {
	case "on_track", "on track", "sesuai target", "on-track":
		return StatusOnTrack
	case "achieved", "tercapai":
		return StatusAchieved
	case "not_achieved", "not achieved", "tidak tercapai", "belum tercapai":
		return StatusNotAchieved
	}
	return StatusPending
}

// Categories are the reporting areas offered by the template.
var Categories = []string{
	"Pendidikan",
	"Penelitian",
	"Pengabdian Masyarakat",
	"Kerjasama",
	"Sumber Daya Manusia",
	"Keuangan",
	"Sarana Prasarana",
	"Kemahasiswaan",
	"Tata Kelola",
}

// Details holds the descriptive data of an indicator.
type Details struct {
	Year      int
	Quarter   int
	Category  string
	Indicator string
	Target    decimal.NullDecimal
	Achieved  decimal.NullDecimal
	Unit      *string
	Status    Status
	Notes     *string
}

// Indicator is one performance indicator of a reporting quarter. Year,
// quarter, category and indicator name identify it.
type Indicator struct {
	id        uint
	details   Details
	createdAt time.Time
	updatedAt time.Time
}

func New(d Details) Indicator {
	return Indicator{}.WithDetails(d)
}

func Hydrate(id uint, d Details, createdAt, updatedAt time.Time) Indicator {
	return Indicator{id: id, details: d, createdAt: createdAt, updatedAt: updatedAt}
}

// WithDetails returns a copy with d trimmed and an invalid status replaced
// by pending.
func (i Indicator) WithDetails(d Details) Indicator {
	d.Category = strings.TrimSpace(d.Category)
	d.Indicator = strings.TrimSpace(d.Indicator)
	if !d.Status.IsValid() {
		d.Status = StatusPending
	}
	i.details = d
	return i
}

// NaturalKey joins the identifying columns the upsert reconciles on.
func (i Indicator) NaturalKey() string {
	d := i.details
	return strings.Join([]string{
		strconv.Itoa(d.Year),
		"Q" + strconv.Itoa(d.Quarter),
		d.Category,
		d.Indicator,
	}, "/")
}

// Progress is achieved over target in percent, rounded to two places. It is
// invalid when either value is missing or the target is zero.
func (i Indicator) Progress() decimal.NullDecimal {
	d := i.details
	if !d.Target.Valid || !d.Achieved.Valid || d.Target.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	p := d.Achieved.Decimal.Div(d.Target.Decimal).Mul(decimal.NewFromInt(100)).Round(2)
	return decimal.NewNullDecimal(p)
}

func (i Indicator) ID() uint             { return i.id }
func (i Indicator) Details() Details     { return i.details }
func (i Indicator) Year() int            { return i.details.Year }
func (i Indicator) Quarter() int         { return i.details.Quarter }
func (i Indicator) Category() string     { return i.details.Category }
func (i Indicator) Name() string         { return i.details.Indicator }
func (i Indicator) Status() Status       { return i.details.Status }
func (i Indicator) CreatedAt() time.Time { return i.createdAt }
func (i Indicator) UpdatedAt() time.Time { return i.updatedAt }
