package member

import "time"

const dateLayout = "2006-01-02"

// Snapshot is the JSON shape of a member used by the API and the activity log.
type Snapshot struct {
	ID                   uint               `json:"id"`
	Kind                 Kind               `json:"kind"`
	NaturalKey           string             `json:"natural_key"`
	FullName             string             `json:"full_name"`
	IdentificationType   IdentificationType `json:"identification_type"`
	IdentificationNumber string             `json:"identification_number"`
	NIP                  *string            `json:"nip"`
	NIDN                 *string            `json:"nidn"`
	NIDK                 *string            `json:"nidk"`
	NUPTK                *string            `json:"nuptk"`
	Gender               *string            `json:"gender"`
	BirthPlace           *string            `json:"birth_place"`
	BirthDate            *string            `json:"birth_date"`
	RetirementDate       *string            `json:"retirement_date"`
	Email                *string            `json:"email"`
	Phone                *string            `json:"phone"`
	AcademicRank         *string            `json:"academic_rank"`
	Position             *string            `json:"position"`
	Grade                *string            `json:"grade"`
	Department           *string            `json:"department"`
	EmploymentStatus     *string            `json:"employment_status"`
	WorkUnit             *string            `json:"work_unit"`
	Qualification        *string            `json:"qualification"`
	Specialization       *string            `json:"specialization"`
	GraduationYear       *int               `json:"graduation_year"`
	YearsOfService       *int               `json:"years_of_service"`
	Active               bool               `json:"active"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

func (m Member) Snapshot() Snapshot {
	a := m.attrs
	return Snapshot{
		ID:                   m.id,
		Kind:                 m.kind,
		NaturalKey:           m.naturalKey,
		FullName:             m.fullName,
		IdentificationType:   m.identificationType,
		IdentificationNumber: m.identificationNumber,
		NIP:                  a.NIP,
		NIDN:                 a.NIDN,
		NIDK:                 a.NIDK,
		NUPTK:                a.NUPTK,
		Gender:               a.Gender,
		BirthPlace:           a.BirthPlace,
		BirthDate:            FormatDate(a.BirthDate),
		RetirementDate:       FormatDate(a.RetirementDate),
		Email:                a.Email,
		Phone:                a.Phone,
		AcademicRank:         a.AcademicRank,
		Position:             a.Position,
		Grade:                a.Grade,
		Department:           a.Department,
		EmploymentStatus:     a.EmploymentStatus,
		WorkUnit:             a.WorkUnit,
		Qualification:        a.Qualification,
		Specialization:       a.Specialization,
		GraduationYear:       a.GraduationYear,
		YearsOfService:       a.YearsOfService,
		Active:               m.active,
		CreatedAt:            m.createdAt,
		UpdatedAt:            m.updatedAt,
	}
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ParseDate parses an ISO calendar date; nil and "" yield nil.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
