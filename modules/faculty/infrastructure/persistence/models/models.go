package models

import "time"

type Member struct {
	ID                   uint
	Kind                 string
	NaturalKey           string
	FullName             string
	IdentificationType   string
	IdentificationNumber string
	NIP                  *string
	NIDN                 *string
	NIDK                 *string
	NUPTK                *string
	Gender               *string
	BirthPlace           *string
	BirthDate            *time.Time
	RetirementDate       *time.Time
	Email                *string
	Phone                *string
	AcademicRank         *string
	Position             *string
	Grade                *string
	Department           *string
	EmploymentStatus     *string
	WorkUnit             *string
	Qualification        *string
	Specialization       *string
	GraduationYear       *int
	YearsOfService       *int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PerformanceIndicator carries numeric columns as their text rendering.
type PerformanceIndicator struct {
	ID            uint
	Year          int
	Quarter       int
	Category      string
	Indicator     string
	TargetValue   *string
	AchievedValue *string
	Unit          *string
	Status        string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
