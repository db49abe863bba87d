package dto

import (
	"github.com/complaintbox/backend/internal/models"
	"github.com/google/uuid"
)

type SubmitComplaintRequest struct {
	AgainstPersonID string  `json:"againstPersonId"`
	Complaint       string  `json:"complaint"`
	Category        *string `json:"category,omitempty"`
	Priority        *string `json:"priority,omitempty"`
}

type SubmitComplaintResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

type MarkReadRequest struct {
	IsRead bool `json:"isRead"`
}

// Pagination describes one page of an admin list query.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives page flags from the total count for the same filter.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type ComplaintListResponse struct {
	Complaints []models.Complaint `json:"complaints"`
	Pagination Pagination         `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
