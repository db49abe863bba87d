package storage

import (
	"time"

	"github.com/complaintbox/backend/internal/models"
	"github.com/google/uuid"
)

// ComplaintFilter narrows admin list queries. Nil/empty fields are ignored.
type ComplaintFilter struct {
	AgainstPersonID *string
	IsRead          *bool
	Search          string
	Category        string
	Priority        string
}

// Storage owns all persisted records. Handlers and services only touch the
// database through this interface.
type Storage interface {
	CreateComplaint(complaint *models.Complaint) error
	ListComplaints(filter ComplaintFilter, page, limit int) ([]models.Complaint, int64, error)
	GetComplaint(id uuid.UUID) (*models.Complaint, error)
	SetComplaintRead(id uuid.UUID, isRead bool) (*models.Complaint, error)
	DeleteComplaint(id uuid.UUID) error

	FindActiveAdmin(username string) (*models.Admin, error)
	TouchAdminLogin(id uuid.UUID, at time.Time) error
}
