package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// IsAdmin matches the role case-insensitively; older tokens carry "admin".
func (r Role) IsAdmin() bool {
	return strings.EqualFold(string(r), string(RoleAdmin))
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       Role      `gorm:"size:20;not null;default:Employee;index" json:"role"`
	Department string    `gorm:"size:255" json:"department"`
	Position   string    `gorm:"size:255" json:"position"`
	Phone      string    `gorm:"size:50" json:"phone"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the denormalized applicant/employee view joined into admin listings.
type UserSummary struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Position:   u.Position,
	}
}
