package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/complaintbox/backend/internal/dto"
	"github.com/complaintbox/backend/internal/models"
	"github.com/complaintbox/backend/internal/roster"
	"github.com/complaintbox/backend/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingFields     = errors.New("against person and complaint are required")
	ErrComplaintLength   = errors.New("complaint must be between 10 and 5000 characters")
	ErrUnknownPerson     = errors.New("invalid team member selected")
	ErrComplaintNotFound = errors.New("complaint not found")
)

const (
	minComplaintLen = 10
	maxComplaintLen = 5000
)

// Markup is stripped before length validation and before persistence, so the
// stored text is always plain.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ComplaintService handles intake validation and the moderation lifecycle.
type ComplaintService struct {
	store  storage.Storage
	roster *roster.Registry
}

func NewComplaintService(store storage.Storage, r *roster.Registry) *ComplaintService {
	return &ComplaintService{store: store, roster: r}
}

// Submit validates and persists a new complaint. The target name is
// denormalized from the roster at submission time; ip is stored for audit
// unless it is the "unknown" fallback.
func (s *ComplaintService) Submit(req *dto.SubmitComplaintRequest, ip string) (*models.Complaint, error) {
	text := strings.TrimSpace(tagPattern.ReplaceAllString(req.Complaint, ""))

	if req.AgainstPersonID == "" || text == "" {
		return nil, ErrMissingFields
	}
	if n := utf8.RuneCountInString(text); n < minComplaintLen || n > maxComplaintLen {
		return nil, ErrComplaintLength
	}

	complaint := models.Complaint{
		Complaint:   text,
		SubmittedAt: time.Now().UTC(),
		IsRead:      false,
	}

	targetID := req.AgainstPersonID
	complaint.AgainstPersonID = &targetID
	if targetID != roster.GeneralID {
		person := s.roster.Get(targetID)
		if person == nil {
			return nil, ErrUnknownPerson
		}
		name := person.Name
		complaint.AgainstPersonName = &name
	}

	if category := strings.TrimSpace(deref(req.Category)); category != "" {
		complaint.Category = &category
	}
	if priority := strings.TrimSpace(deref(req.Priority)); priority != "" {
		complaint.Priority = &priority
	}

	if ip != "" && ip != "unknown" {
		complaint.IPAddress = &ip
	}

	if err := s.store.CreateComplaint(&complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return &complaint, nil
}

// List runs an admin filter query and derives the pagination descriptor.
func (s *ComplaintService) List(filter storage.ComplaintFilter, page, limit int) (*dto.ComplaintListResponse, error) {
	complaints, total, err := s.store.ListComplaints(filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return &dto.ComplaintListResponse{
		Complaints: complaints,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *ComplaintService) Get(id uuid.UUID) (*models.Complaint, error) {
	complaint, err := s.store.GetComplaint(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}

// SetRead toggles the only mutable field. Idempotent.
func (s *ComplaintService) SetRead(id uuid.UUID, isRead bool) (*models.Complaint, error) {
	complaint, err := s.store.SetComplaintRead(id, isRead)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}

// Delete permanently removes a complaint. There is no soft delete.
func (s *ComplaintService) Delete(id uuid.UUID) error {
	if err := s.store.DeleteComplaint(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrComplaintNotFound
		}
		return err
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
