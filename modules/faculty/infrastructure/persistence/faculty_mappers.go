package persistence

import (
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/infrastructure/persistence/models"
)

func toDBMember(m member.Member) models.Member {
	a := m.Attributes()
	return models.Member{
		ID:                   m.ID(),
		Kind:                 string(m.Kind()),
		NaturalKey:           m.NaturalKey(),
		FullName:             m.FullName(),
		IdentificationType:   string(m.IdentificationType()),
		IdentificationNumber: m.IdentificationNumber(),
		NIP:                  a.NIP,
		NIDN:                 a.NIDN,
		NIDK:                 a.NIDK,
		NUPTK:                a.NUPTK,
		Gender:               a.Gender,
		BirthPlace:           a.BirthPlace,
		BirthDate:            a.BirthDate,
		RetirementDate:       a.RetirementDate,
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
		IsActive:             m.Active(),
		CreatedAt:            m.CreatedAt(),
		UpdatedAt:            m.UpdatedAt(),
	}
}

func toDomainMember(row models.Member) member.Member {
	return member.Hydrate(
		row.ID,
		member.Kind(row.Kind),
		row.NaturalKey,
		row.FullName,
		member.IdentificationType(row.IdentificationType),
		row.IdentificationNumber,
		member.Attributes{
			NIP:              row.NIP,
			NIDN:             row.NIDN,
			NIDK:             row.NIDK,
			NUPTK:            row.NUPTK,
			Gender:           row.Gender,
			BirthPlace:       row.BirthPlace,
			BirthDate:        row.BirthDate,
			RetirementDate:   row.RetirementDate,
			Email:            row.Email,
			Phone:            row.Phone,
			AcademicRank:     row.AcademicRank,
			Position:         row.Position,
			Grade:            row.Grade,
			Department:       row.Department,
			EmploymentStatus: row.EmploymentStatus,
			WorkUnit:         row.WorkUnit,
			Qualification:    row.Qualification,
			Specialization:   row.Specialization,
			GraduationYear:   row.GraduationYear,
			YearsOfService:   row.YearsOfService,
		},
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
