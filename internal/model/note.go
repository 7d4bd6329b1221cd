package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a single note, optionally filed under a category.
// JSON field names follow the wire contract consumed by clients.
type Note struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	NoteTitle  string     `json:"note_title" gorm:"size:255;not null"`
	NoteDesc   string     `json:"note_desc" gorm:"type:text;not null"`
	CategoryID *uuid.UUID `json:"category_id" gorm:"type:char(36);index"`
	UserEmail  string     `json:"-" gorm:"size:255;not null;index"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
