package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the per-email record the scheduler reads and mutates on every poll.
// The three *Date fields act as per-user soft leases.
type User struct {
	ID                   uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Email                string        `json:"email" gorm:"uniqueIndex;not null"`
	Initial              bool          `json:"initial" gorm:"not null"`
	LastAccessDate       *time.Time    `json:"lastAccessDate"`
	LastNotificationDate *time.Time    `json:"lastNotificationDate"`
	LastSurveyDate       *time.Time    `json:"lastSurveyDate"`
	Tasks                []Task        `json:"tasks" gorm:"foreignKey:UserID"`
	Interactions         []Interaction `json:"interactions" gorm:"foreignKey:UserID"`
	CreatedAt            time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt            time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// LeaseField names one of the timestamp columns used as a cooldown lease.
type LeaseField string

const (
	LeaseAccess       LeaseField = "last_access_date"
	LeaseNotification LeaseField = "last_notification_date"
	LeaseSurvey       LeaseField = "last_survey_date"
)

// Lease returns the current value of the given lease field.
func (u *User) Lease(f LeaseField) *time.Time {
	switch f {
	case LeaseAccess:
		return u.LastAccessDate
	case LeaseNotification:
		return u.LastNotificationDate
	case LeaseSurvey:
		return u.LastSurveyDate
	}
	return nil
}

// SetLease stores t into the given lease field.
func (u *User) SetLease(f LeaseField, t time.Time) {
	switch f {
	case LeaseAccess:
		u.LastAccessDate = &t
	case LeaseNotification:
		u.LastNotificationDate = &t
	case LeaseSurvey:
		u.LastSurveyDate = &t
	}
}

// Within reports whether t is set and lies less than window before now.
func Within(t *time.Time, now time.Time, window time.Duration) bool {
	return t != nil && now.Sub(*t) < window
}
