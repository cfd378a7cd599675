package domain

import (
	"time"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusInactive  AccountStatus = "INACTIVE"
)

// Settings are the per-user notification toggles surfaced in the SPA
// settings screen.
type Settings struct {
	PushNotifications  bool `json:"push_notifications" gorm:"default:true"`
	EmailNotifications bool `json:"email_notifications" gorm:"default:true"`
	RideReminders      bool `json:"ride_reminders" gorm:"default:true"`
}

type User struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email" gorm:"uniqueIndex"`
	Password      string        `json:"-"` // bcrypt hash
	StudentID     string        `json:"student_id,omitempty"`
	AccountStatus AccountStatus `json:"account_status"`
	Settings      Settings      `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Profile is the non-secret projection returned by GET /api/auth/profile.
type Profile struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	StudentID string   `json:"student_id,omitempty"`
	Settings  Settings `json:"settings"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		StudentID: u.StudentID,
		Settings:  u.Settings,
	}
}
