package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignIDs fills zero identifiers before a row is first written.
func (u *User) AssignIDs() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
}

func (t *Task) AssignIDs() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (i *Interaction) AssignIDs() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error {
	u.AssignIDs()
	return nil
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	t.AssignIDs()
	return nil
}

func (i *Interaction) BeforeCreate(*gorm.DB) error {
	i.AssignIDs()
	return nil
}
