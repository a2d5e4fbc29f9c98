package persistence

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/infrastructure/persistence/models"
)

func decimalText(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func parseDecimalText(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, errors.Wrapf(err, "numeric %q", *s)
	}
	return decimal.NewNullDecimal(d), nil
}

func toDBIndicator(i performance.Indicator) models.PerformanceIndicator {
	d := i.Details()
	return models.PerformanceIndicator{
		ID:            i.ID(),
		Year:          d.Year,
		Quarter:       d.Quarter,
		Category:      d.Category,
		Indicator:     d.Indicator,
		TargetValue:   decimalText(d.Target),
		AchievedValue: decimalText(d.Achieved),
		Unit:          d.Unit,
		Status:        string(d.Status),
		Notes:         d.Notes,
		CreatedAt:     i.CreatedAt(),
		UpdatedAt:     i.UpdatedAt(),
	}
}

func toDomainIndicator(row models.PerformanceIndicator) (performance.Indicator, error) {
	target, err := parseDecimalText(row.TargetValue)
	if err != nil {
		return performance.Indicator{}, err
	}
	achieved, err := parseDecimalText(row.AchievedValue)
	if err != nil {
		return performance.Indicator{}, err
	}
	return performance.Hydrate(row.ID, performance.Details{
		Year:      row.Year,
		Quarter:   row.Quarter,
		Category:  row.Category,
		Indicator: row.Indicator,
		Target:    target,
		Achieved:  achieved,
		Unit:      row.Unit,
		Status:    performance.Status(row.Status),
		Notes:     row.Notes,
	}, row.CreatedAt, row.UpdatedAt), nil
}
