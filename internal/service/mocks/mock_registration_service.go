package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockRegistrationService is a mock implementation of service.RegistrationService.
type MockRegistrationService struct {
	mock.Mock
}

//nolint:revive
func (m *MockRegistrationService) Register(username string) {
	m.Called(username)
}

//nolint:revive
func (m *MockRegistrationService) Channel() string {
	args := m.Called()
	return args.String(0)
}
