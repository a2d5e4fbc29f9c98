package member

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fkunand/faculty-admin/pkg/constants"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

// UpdateDTO replaces every descriptive field of a member.
type UpdateDTO struct {
	FullName             string  `json:"full_name" validate:"required,max=255"`
	IdentificationType   string  `json:"identification_type" validate:"required,oneof=NIDN NIDK NUPTK NIP"`
	IdentificationNumber string  `json:"identification_number" validate:"required,max=50"`
	NIP                  *string `json:"nip" validate:"omitempty,max=50"`
	NIDN                 *string `json:"nidn" validate:"omitempty,max=50"`
	NIDK                 *string `json:"nidk" validate:"omitempty,max=50"`
	NUPTK                *string `json:"nuptk" validate:"omitempty,max=50"`
	Gender               *string `json:"gender" validate:"omitempty,oneof=L P"`
	BirthPlace           *string `json:"birth_place" validate:"omitempty,max=100"`
	BirthDate            *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	RetirementDate       *string `json:"retirement_date" validate:"omitempty,datetime=2006-01-02"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone" validate:"omitempty,max=30"`
	AcademicRank         *string `json:"academic_rank" validate:"omitempty,max=100"`
	Position             *string `json:"position" validate:"omitempty,max=100"`
	Grade                *string `json:"grade" validate:"omitempty,max=50"`
	Department           *string `json:"department" validate:"omitempty,max=150"`
	EmploymentStatus     *string `json:"employment_status" validate:"omitempty,max=50"`
	WorkUnit             *string `json:"work_unit" validate:"omitempty,max=150"`
	Qualification        *string `json:"qualification" validate:"omitempty,max=100"`
	Specialization       *string `json:"specialization" validate:"omitempty,max=150"`
	GraduationYear       *int    `json:"graduation_year" validate:"omitempty,gte=1900,lte=2100"`
	YearsOfService       *int    `json:"years_of_service" validate:"omitempty,gte=0,lte=80"`
	Active               *bool   `json:"active"`
}

type CreateDTO struct {
	Kind string `json:"kind" validate:"required,oneof=lecturer staff"`
	UpdateDTO
}

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
	d.FullName = strings.TrimSpace(d.FullName)
	d.IdentificationType = strings.ToUpper(strings.TrimSpace(d.IdentificationType))
	d.IdentificationNumber = strings.TrimSpace(d.IdentificationNumber)
	for _, p := range []**string{
		&d.NIP, &d.NIDN, &d.NIDK, &d.NUPTK, &d.Gender, &d.BirthPlace, &d.BirthDate, &d.RetirementDate,
		&d.Email, &d.Phone, &d.AcademicRank, &d.Position, &d.Grade, &d.Department, &d.EmploymentStatus,
		&d.WorkUnit, &d.Qualification, &d.Specialization,
	} {
		*p = trimPtr(*p)
	}
	if d.Gender != nil {
		g := strings.ToUpper(*d.Gender)
		d.Gender = &g
	}
}

func (d *CreateDTO) Normalize() {
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	d.UpdateDTO.Normalize()
}

func validate(v any) (map[string]string, bool) {
	errs := constants.Validate.Struct(v)
	if errs == nil {
		return map[string]string{}, true
	}
	validatorErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": errs.Error()}, false
	}
	return serrors.ProcessValidatorErrors(validatorErrs, nil), false
}

// Ok normalizes the dto and returns validation errors keyed by json field.
func (d *UpdateDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	return validate(d)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	return validate(d)
}

func (d *UpdateDTO) attributes() (Attributes, error) {
	birth, err := ParseDate(d.BirthDate)
	if err != nil {
		return Attributes{}, err
	}
	retirement, err := ParseDate(d.RetirementDate)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		NIP:              d.NIP,
		NIDN:             d.NIDN,
		NIDK:             d.NIDK,
		NUPTK:            d.NUPTK,
		Gender:           d.Gender,
		BirthPlace:       d.BirthPlace,
		BirthDate:        birth,
		RetirementDate:   retirement,
		Email:            d.Email,
		Phone:            d.Phone,
		AcademicRank:     d.AcademicRank,
		Position:         d.Position,
		Grade:            d.Grade,
		Department:       d.Department,
		EmploymentStatus: d.EmploymentStatus,
		WorkUnit:         d.WorkUnit,
		Qualification:    d.Qualification,
		Specialization:   d.Specialization,
		GraduationYear:   d.GraduationYear,
		YearsOfService:   d.YearsOfService,
	}, nil
}

// Apply returns m with the dto applied.
func (d *UpdateDTO) Apply(m Member) (Member, error) {
	attrs, err := d.attributes()
	if err != nil {
		return Member{}, err
	}
	out := m.WithDetails(d.FullName, IdentificationType(d.IdentificationType), d.IdentificationNumber, attrs)
	if d.Active != nil {
		out = out.SetActive(*d.Active)
	}
	return out, nil
}

func (d *CreateDTO) ToEntity() (Member, error) {
	return d.Apply(New(Kind(d.Kind), "", "", "", Attributes{}))
}
