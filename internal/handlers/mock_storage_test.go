package handlers_test

import (
	"time"

	"github.com/complaintbox/backend/internal/models"
	"github.com/complaintbox/backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints(filter storage.ComplaintFilter, page, limit int) ([]models.Complaint, int64, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) GetComplaint(id uuid.UUID) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) SetComplaintRead(id uuid.UUID, isRead bool) (*models.Complaint, error) {
	args := m.Called(id, isRead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) DeleteComplaint(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) FindActiveAdmin(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockStorage) TouchAdminLogin(id uuid.UUID, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}
