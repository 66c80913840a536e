package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction records that a task was shown and how the user responded.
// Rows are append-only; Survey goes from nil to set at most once.
type Interaction struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Type        TaskType  `json:"type" gorm:"type:varchar(16);not null"`
	Domain      string    `json:"domain" gorm:"type:text;not null"`
	Affirmative *bool     `json:"affirmative"`
	Survey      *string   `json:"survey" gorm:"type:text"`
}

func (i *Interaction) Answered() bool {
	return i.Survey != nil
}
