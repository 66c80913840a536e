package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskPasswordBreach TaskType = "password"
	TaskTwoFactorAuth  TaskType = "2fa"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	return t == TaskPasswordBreach || t == TaskTwoFactorAuth
}

// Task is a stored recommendation for one domain. Domain and Account hold
// ciphertext tokens; see internal/codec.
type Task struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Type      TaskType  `json:"type" gorm:"type:varchar(16);not null"`
	Domain    string    `json:"domain" gorm:"type:text;not null"`
	Account   string    `json:"account,omitempty" gorm:"type:text"`
	Breach    string    `json:"breach,omitempty"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
