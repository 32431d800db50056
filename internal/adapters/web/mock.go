package web

import (
	"context"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock of ports.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Current() domain.SessionView {
	args := m.Called()
	return args.Get(0).(domain.SessionView)
}

func (m *MockSessionService) Update(ctx context.Context, a domain.Assessment, findingRef string) (domain.SessionView, error) {
	args := m.Called(ctx, a, findingRef)
	return args.Get(0).(domain.SessionView), args.Error(1)
}

func (m *MockSessionService) ApplyCode(ctx context.Context, shared string) (domain.SessionView, error) {
	args := m.Called(ctx, shared)
	return args.Get(0).(domain.SessionView), args.Error(1)
}

func (m *MockSessionService) Reset(ctx context.Context) (domain.SessionView, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SessionView), args.Error(1)
}

// MockFindingService is a mock of ports.FindingService
type MockFindingService struct {
	mock.Mock
}

func (m *MockFindingService) Save(ctx context.Context, shared string) (*domain.FindingEntry, error) {
	args := m.Called(ctx, shared)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FindingEntry), args.Error(1)
}

func (m *MockFindingService) Get(ctx context.Context, id string) (*domain.FindingEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FindingEntry), args.Error(1)
}

func (m *MockFindingService) List(ctx context.Context, limit int) ([]domain.FindingEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FindingEntry), args.Error(1)
}

// MockAuditService is a mock of ports.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	args := m.Called(ctx, action, target, details)
	return args.Error(0)
}

func (m *MockAuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
