package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockEMIService struct {
	mock.Mock
}

func (m *MockEMIService) Calculate(ctx context.Context, userID string, request *domain.CalculateEMIRequest) (*domain.EMICalculation, *domain.EMIResult, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.EMICalculation), args.Get(1).(*domain.EMIResult), args.Error(2)
}

func (m *MockEMIService) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EMICalculation), args.Error(1)
}

func (m *MockEMIService) GetCalculation(ctx context.Context, userID string, id uuid.UUID) (*domain.EMICalculation, *domain.EMIResult, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.EMICalculation), args.Get(1).(*domain.EMIResult), args.Error(2)
}

func (m *MockEMIService) DeleteCalculation(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// NewMockEMIService creates a new mock EMI service instance
func NewMockEMIService() *MockEMIService {
	return &MockEMIService{}
}
