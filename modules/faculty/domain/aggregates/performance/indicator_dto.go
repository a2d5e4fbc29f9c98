package performance

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fkunand/faculty-admin/pkg/constants"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

// UpdateDTO replaces every field of an indicator.
type UpdateDTO struct {
	Year      int                 `json:"year" validate:"required,gte=1900,lte=9999"`
	Quarter   int                 `json:"quarter" validate:"required,gte=1,lte=4"`
	Category  string              `json:"category" validate:"required,max=100"`
	Indicator string              `json:"indicator" validate:"required,max=255"`
	Target    decimal.NullDecimal `json:"target_value"`
	Achieved  decimal.NullDecimal `json:"achieved_value"`
	Unit      *string             `json:"unit" validate:"omitempty,max=50"`
	Status    string              `json:"status" validate:"omitempty,oneof=pending on_track achieved not_achieved"`
	Notes     *string             `json:"notes" validate:"omitempty,max=1000"`
}

type CreateDTO = UpdateDTO

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (d *UpdateDTO) Normalize() {
	d.Category = strings.TrimSpace(d.Category)
	d.Indicator = strings.TrimSpace(d.Indicator)
	d.Status = strings.ToLower(strings.TrimSpace(d.Status))
	d.Unit = trimPtr(d.Unit)
	d.Notes = trimPtr(d.Notes)
}

// Ok normalizes the dto and returns validation errors keyed by json field.
func (d *UpdateDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	errs := map[string]string{}
	if err := constants.Validate.Struct(d); err != nil {
		validatorErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return map[string]string{"_": err.Error()}, false
		}
		errs = serrors.ProcessValidatorErrors(validatorErrs, nil)
	}
	if d.Target.Valid && d.Target.Decimal.IsNegative() {
		errs["target_value"] = "target_value must not be negative"
	}
	if d.Achieved.Valid && d.Achieved.Decimal.IsNegative() {
		errs["achieved_value"] = "achieved_value must not be negative"
	}
	return errs, len(errs) == 0
}

func (d *UpdateDTO) details() Details {
	return Details{
		Year:      d.Year,
		Quarter:   d.Quarter,
		Category:  d.Category,
		Indicator: d.Indicator,
		Target:    d.Target,
		Achieved:  d.Achieved,
		Unit:      d.Unit,
		Status:    Status(d.Status),
		Notes:     d.Notes,
	}
}

// Apply returns i with the dto applied. An empty status keeps the current one.
func (d *UpdateDTO) Apply(i Indicator) Indicator {
	next := d.details()
	if next.Status == "" {
		next.Status = i.Status()
	}
	return i.WithDetails(next)
}

func (d *UpdateDTO) ToEntity() Indicator {
	return New(d.details())
}
