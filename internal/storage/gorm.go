package storage

import (
	"errors"
	"time"

	"github.com/complaintbox/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record id does not resolve.
var ErrNotFound = errors.New("record not found")

// Service is the GORM-backed Storage implementation.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	return s.db.Create(complaint).Error
}

func (s *Service) ListComplaints(filter ComplaintFilter, page, limit int) ([]models.Complaint, int64, error) {
	var complaints []models.Complaint
	var total int64

	query := s.db.Model(&models.Complaint{})
	if filter.AgainstPersonID != nil {
		query = query.Where("against_person_id = ?", *filter.AgainstPersonID)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	if filter.Search != "" {
		query = query.Where("complaint ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

func (s *Service) GetComplaint(id uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.db.First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (s *Service) SetComplaintRead(id uuid.UUID, isRead bool) (*models.Complaint, error) {
	result := s.db.Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("is_read", isRead)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComplaint(id)
}

func (s *Service) DeleteComplaint(id uuid.UUID) error {
	result := s.db.Delete(&models.Complaint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) FindActiveAdmin(username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Where("username = ? AND is_active = true", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Service) TouchAdminLogin(id uuid.UUID, at time.Time) error {
	return s.db.Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
