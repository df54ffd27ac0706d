package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockEMIRepository struct {
	mock.Mock
}

func (m *MockEMIRepository) Create(ctx context.Context, calculation *domain.EMICalculation) error {
	args := m.Called(ctx, calculation)
	return args.Error(0)
}

func (m *MockEMIRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EMICalculation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EMICalculation), args.Error(1)
}

func (m *MockEMIRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EMICalculation), args.Error(1)
}

func (m *MockEMIRepository) Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEMIRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, id uuid.UUID) (*domain.EMIResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EMIResult), args.Error(1)
}

func (m *MockResultCache) Set(ctx context.Context, id uuid.UUID, result *domain.EMIResult) error {
	args := m.Called(ctx, id, result)
	return args.Error(0)
}

func (m *MockResultCache) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

type MockSessionLifetime struct {
	mock.Mock
}

func (m *MockSessionLifetime) TTL(ctx context.Context, token string) (time.Duration, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(time.Duration), args.Error(1)
}
