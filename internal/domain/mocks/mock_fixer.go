package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// MockFixer is a mock type for the Fixer type.
type MockFixer struct {
	mock.Mock
}

// Patch provides a mock function with given fields: ctx, findings.
func (_m *MockFixer) Patch(ctx context.Context, findings []m.Finding) (string, error) {
	ret := _m.Called(ctx, findings)

	return ret.String(0), ret.Error(1)
}

// NewMockFixer creates a new instance of MockFixer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockFixer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFixer {
	mock := &MockFixer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
