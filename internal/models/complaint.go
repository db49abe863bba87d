package models

import (
	"time"

	"github.com/google/uuid"
)

// Complaint is an anonymous complaint record. The target person fields are a
// soft reference into the static roster plus a denormalized name snapshot taken
// at submission time; the snapshot is never re-joined against the roster, so it
// stays accurate even if the roster changes later.
//
// The record is immutable after creation except for IsRead. Deletion is a hard
// delete (no gorm.DeletedAt).
type Complaint struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AgainstPersonID   *string   `gorm:"size:50;index" json:"againstPersonId,omitempty"`
	AgainstPersonName *string   `gorm:"size:255" json:"againstPersonName,omitempty"`
	Complaint         string    `gorm:"type:text;not null" json:"complaint"`
	Category          *string   `gorm:"size:50;index" json:"category,omitempty"`
	Priority          *string   `gorm:"size:20;index" json:"priority,omitempty"`
	SubmittedAt       time.Time `gorm:"not null;index:idx_complaints_submitted_at,sort:desc" json:"submittedAt"`
	IsRead            bool      `gorm:"not null;default:false;index" json:"isRead"`
	IPAddress         *string   `gorm:"size:45" json:"-"`
}

func (Complaint) TableName() string {
	return "complaints"
}
