package mocks

import (
	"github.com/stretchr/testify/mock"

	"antiseptic.dev/pkg/antiseptic/internal/adapter"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// MockProjectConfigAdapter is a mock type for the ProjectConfigAdapter type.
type MockProjectConfigAdapter struct {
	mock.Mock
}

// Find provides a mock function with given fields: start.
func (_m *MockProjectConfigAdapter) Find(start m.Path) (adapter.ProjectConfig, error) {
	ret := _m.Called(start)

	return ret.Get(0).(adapter.ProjectConfig), ret.Error(1)
}

// NewMockProjectConfigAdapter creates a new instance of MockProjectConfigAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProjectConfigAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProjectConfigAdapter {
	mock := &MockProjectConfigAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
