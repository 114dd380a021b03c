package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:100;unique;not null" json:"email"`
	Password        string     `gorm:"size:100;not null" json:"-"`
	Role            UserRole   `gorm:"size:20;default:'student'" json:"role"`
	TargetExam      string     `gorm:"size:100" json:"targetExam"`
	ExamDate        *time.Time `json:"examDate"`
	DailyStudyHours float64    `gorm:"default:2" json:"dailyStudyHours"`
	Avatar          string     `gorm:"size:255" json:"avatar"`
	Disabled        bool       `gorm:"default:false" json:"disabled"`
	LastLogin       time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen        time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
