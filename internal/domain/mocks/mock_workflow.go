package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
)

// MockWorkflow is a mock type for the Workflow type.
type MockWorkflow struct {
	mock.Mock
}

// Check provides a mock function with given fields: ctx, args.
func (_m *MockWorkflow) Check(ctx context.Context, args domain.CheckArgs) (int, error) {
	ret := _m.Called(ctx, args)

	return ret.Int(0), ret.Error(1)
}

// Words provides a mock function with given fields: ctx, args.
func (_m *MockWorkflow) Words(ctx context.Context, args domain.WordsArgs) (int, error) {
	ret := _m.Called(ctx, args)

	return ret.Int(0), ret.Error(1)
}

// View provides a mock function with given fields: ctx, args.
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
