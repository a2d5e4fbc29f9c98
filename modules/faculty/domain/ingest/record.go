package ingest

import "github.com/fkunand/faculty-admin/pkg/spreadsheet"

type IdentificationType string

const (
	IdentificationNIDN  IdentificationType = "NIDN"
	IdentificationNIDK  IdentificationType = "NIDK"
	IdentificationNUPTK IdentificationType = "NUPTK"
	IdentificationNIP   IdentificationType = "NIP"
)

var identificationByField = map[Field]IdentificationType{
	FieldNIDN:  IdentificationNIDN,
	FieldNIDK:  IdentificationNIDK,
	FieldNUPTK: IdentificationNUPTK,
	FieldNIP:   IdentificationNIP,
}

// Record is one cleaned data row. Optional values are nil when absent;
// dates are ISO strings.
type Record struct {
	FullName             string
	IdentificationType   IdentificationType
	IdentificationNumber string
	NIP                  *string
	NIDN                 *string
	NIDK                 *string
	NUPTK                *string

	Gender           *string
	BirthPlace       *string
	BirthDate        *string
	RetirementDate   *string
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

func (r Record) identifier(f Field) *string {
	switch f {
	case FieldNIDN:
		return r.NIDN
	case FieldNIDK:
		return r.NIDK
	case FieldNUPTK:
		return r.NUPTK
	case FieldNIP:
		return r.NIP
	}
	return nil
}

func cellOf(row spreadsheet.Row, cols ColumnMap, f Field) spreadsheet.Cell {
	i, ok := cols.Index(f)
	if !ok {
		return spreadsheet.Cell{}
	}
	return row.At(i)
}

// Normalize cleans one data row. It returns ErrSkipRow for blank rows and
// rows without a name, and ErrMissingIdentification, with FullName set,
// when no identifier is present.
func Normalize(row spreadsheet.Row, cols ColumnMap, order DateOrder) (Record, error) {
	if row.Blank() {
		return Record{}, ErrSkipRow
	}
	name, ok := cleanText(cellOf(row, cols, FieldFullName))
	if !ok {
		return Record{}, ErrSkipRow
	}

	text := func(f Field) *string { return optionalText(cellOf(row, cols, f)) }
	rec := Record{
		FullName: name,
		NIP:      text(FieldNIP),
		NIDN:     text(FieldNIDN),
		NIDK:     text(FieldNIDK),
		NUPTK:    text(FieldNUPTK),
	}
	for _, f := range IdentifierFields {
		if v := rec.identifier(f); v != nil {
			rec.IdentificationType = identificationByField[f]
			rec.IdentificationNumber = *v
			break
		}
	}
	if rec.IdentificationNumber == "" {
		return rec, ErrMissingIdentification
	}

	rec.Gender = normalizeGender(cellOf(row, cols, FieldGender))
	rec.BirthPlace = text(FieldBirthPlace)
	rec.BirthDate = parseDate(cellOf(row, cols, FieldBirthDate), order)
	rec.RetirementDate = parseDate(cellOf(row, cols, FieldRetirementDate), order)
	rec.Email = text(FieldEmail)
	rec.Phone = text(FieldPhone)
	rec.AcademicRank = text(FieldAcademicRank)
	rec.Position = text(FieldPosition)
	rec.Grade = text(FieldGrade)
	rec.Department = text(FieldDepartment)
	rec.EmploymentStatus = text(FieldEmploymentStatus)
	rec.WorkUnit = text(FieldWorkUnit)
	rec.Qualification = text(FieldQualification)
	rec.Specialization = text(FieldSpecialization)
	rec.GraduationYear = parseInt(cellOf(row, cols, FieldGraduationYear))
	rec.YearsOfService = parseInt(cellOf(row, cols, FieldYearsOfService))
	return rec, nil
}
