package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPosition   = "Manager"
	DefaultDepartment = "Administration"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	FirstName  string `gorm:"type:varchar(120);not null"`
	MiddleName string `gorm:"type:varchar(120)"`
	LastName   string `gorm:"type:varchar(120);not null"`

	Company  string `gorm:"type:varchar(255);not null"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password string `gorm:"type:varchar(255);not null"`

	Position   string `gorm:"type:varchar(120);not null;default:'Manager'"`
	Department string `gorm:"type:varchar(120);not null;default:'Administration'"`
	Phone      string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
