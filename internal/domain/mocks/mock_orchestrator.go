package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// MockOrchestrator is a mock type for the Orchestrator type.
type MockOrchestrator struct {
	mock.Mock
}

// Run provides a mock function with given fields: ctx, args.
func (_m *MockOrchestrator) Run(ctx context.Context, args domain.RunArgs) (m.ScanResult, error) {
	ret := _m.Called(ctx, args)

	return ret.Get(0).(m.ScanResult), ret.Error(1)
}

// NewMockOrchestrator creates a new instance of MockOrchestrator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockOrchestrator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrchestrator {
	mock := &MockOrchestrator{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
