package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/regnotify/internal/storage"
)

// MockDeliveryLogService is a mock implementation of service.DeliveryLogService.
type MockDeliveryLogService struct {
	mock.Mock
}

//nolint:revive
func (m *MockDeliveryLogService) List(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DeliveryLogEntry), args.Error(1)
}

//nolint:revive
func (m *MockDeliveryLogService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
