package models

import "strings"

// GraduationYear is a class-level bucket (e.g. a year or "O_LEVEL"/"A_LEVEL").
// Student IDs are sequenced per bucket.
type GraduationYear struct {
	ID           uint   `gorm:"primaryKey"`
	Year         string `gorm:"size:20;unique;not null"`
	DisplayOrder uint   `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// ShortCode returns the level code embedded in generated student IDs.
func (g *GraduationYear) ShortCode() string {
	switch g.Year {
	case "O_LEVEL":
		return "OL"
	case "A_LEVEL":
		return "AL"
	}
	return strings.ToUpper(strings.ReplaceAll(g.Year, " ", ""))
}

// Department groups degrees.
type Department struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;unique;not null"`
	Code        string `gorm:"size:10;unique;not null"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
}

// Degree is a class level offered by a department.
type Degree struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:120;not null"`
	DegreeType    string `gorm:"size:20;not null"` // S1..S6
	DepartmentID  uint   `gorm:"not null;index"`
	DurationYears int    `gorm:"not null;default:4"`
	IsActive      bool   `gorm:"not null;default:true"`

	Department Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CompanySize string

const (
	CompanyStartup    CompanySize = "startup"
	CompanySmall      CompanySize = "small"
	CompanyMedium     CompanySize = "medium"
	CompanyLarge      CompanySize = "large"
	CompanyEnterprise CompanySize = "enterprise"
)

// Company is an employer referenced by alumni profiles and job postings.
type Company struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;unique;not null"`
	Website     string
	Industry    string      `gorm:"size:100"`
	Size        CompanySize `gorm:"size:20"`
	Location    string      `gorm:"size:200"`
	Description string
	FoundedYear *int
	IsVerified  bool  `gorm:"not null;default:false"`
	CreatedByID *uint `gorm:"index"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID"`
}
