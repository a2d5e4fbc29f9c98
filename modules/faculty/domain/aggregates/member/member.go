package member

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
)

type Kind string

const (
	KindLecturer Kind = "lecturer"
	KindStaff    Kind = "staff"
)

var ErrUnknownKind = errors.New("unknown member kind")

// ParseKind accepts the canonical names, their plurals and the Indonesian
// "dosen" and "tendik".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lecturer", "lecturers", "dosen":
		return KindLecturer, nil
	case "staff", "tendik":
		return KindStaff, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

func (k Kind) IsValid() bool {
	return k == KindLecturer || k == KindStaff
}

type IdentificationType string

const (
	IdentificationNIDN  IdentificationType = "NIDN"
	IdentificationNIDK  IdentificationType = "NIDK"
	IdentificationNUPTK IdentificationType = "NUPTK"
	IdentificationNIP   IdentificationType = "NIP"
)

func (t IdentificationType) IsValid() bool {
	switch t {
	case IdentificationNIDN, IdentificationNIDK, IdentificationNUPTK, IdentificationNIP:
		return true
	}
	return false
}

// Attributes holds the optional member data. Nil means unknown.
type Attributes struct {
	NIP              *string
	NIDN             *string
	NIDK             *string
	NUPTK            *string
	Gender           *string
	BirthPlace       *string
	BirthDate        *time.Time
	RetirementDate   *time.Time
	Email            *string
	Phone            *string
	AcademicRank     *string
	Position         *string
	Grade            *string
	Department       *string
	EmploymentStatus *string
	WorkUnit         *string
	Qualification    *string
	Specialization   *string
	GraduationYear   *int
	YearsOfService   *int
}

type Member struct {
	id                   uint
	kind                 Kind
	naturalKey           string
	fullName             string
	identificationType   IdentificationType
	identificationNumber string
	attrs                Attributes
	active               bool
	createdAt            time.Time
	updatedAt            time.Time
}

// NaturalKey is the reconciliation key of a member: staff are keyed on NIP
// when known, everybody else on the identification number.
func NaturalKey(kind Kind, identificationNumber string, nip *string) string {
	if kind == KindStaff && nip != nil {
		if v := strings.TrimSpace(*nip); v != "" {
			return v
		}
	}
	return strings.TrimSpace(identificationNumber)
}

func New(kind Kind, fullName string, idType IdentificationType, idNumber string, attrs Attributes) Member {
	m := Member{
		kind:   kind,
		active: true,
	}
	return m.WithDetails(fullName, idType, idNumber, attrs)
}

func Hydrate(
	id uint,
	kind Kind,
	naturalKey string,
	fullName string,
	idType IdentificationType,
	idNumber string,
	attrs Attributes,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) Member {
	return Member{
		id:                   id,
		kind:                 kind,
		naturalKey:           naturalKey,
		fullName:             fullName,
		identificationType:   idType,
		identificationNumber: idNumber,
		attrs:                attrs,
		active:               active,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// WithDetails returns a copy with the descriptive data replaced and the
// natural key recomputed. The identifier column matching idType is filled
// from idNumber when it is unset.
func (m Member) WithDetails(fullName string, idType IdentificationType, idNumber string, attrs Attributes) Member {
	idNumber = strings.TrimSpace(idNumber)
	num := idNumber
	switch idType {
	case IdentificationNIDN:
		if attrs.NIDN == nil {
			attrs.NIDN = &num
		}
	case IdentificationNIDK:
		if attrs.NIDK == nil {
			attrs.NIDK = &num
		}
	case IdentificationNUPTK:
		if attrs.NUPTK == nil {
			attrs.NUPTK = &num
		}
	case IdentificationNIP:
		if attrs.NIP == nil {
			attrs.NIP = &num
		}
	}
	m.fullName = strings.TrimSpace(fullName)
	m.identificationType = idType
	m.identificationNumber = idNumber
	m.attrs = attrs
	m.naturalKey = NaturalKey(m.kind, idNumber, attrs.NIP)
	return m
}

func (m Member) SetActive(active bool) Member {
	m.active = active
	return m
}

func (m Member) ID() uint                               { return m.id }
func (m Member) Kind() Kind                             { return m.kind }
func (m Member) NaturalKey() string                     { return m.naturalKey }
func (m Member) FullName() string                       { return m.fullName }
func (m Member) IdentificationType() IdentificationType { return m.identificationType }
func (m Member) IdentificationNumber() string           { return m.identificationNumber }
func (m Member) Attributes() Attributes                 { return m.attrs }
func (m Member) Active() bool                           { return m.active }
func (m Member) CreatedAt() time.Time                   { return m.createdAt }
func (m Member) UpdatedAt() time.Time                   { return m.updatedAt }
func (m Member) IsZero() bool                           { return m.id == 0 && m.naturalKey == "" }
