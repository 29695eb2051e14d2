package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"antiseptic.dev/pkg/antiseptic/internal/controller"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// MockUI is a mock type for the UI type.
type MockUI struct {
	mock.Mock
}

// Start provides a mock function with given fields: ctx, options.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	args := []any{ctx}
	for _, option := range options {
		args = append(args, option)
	}

	ret := _m.Called(args...)

	return ret.Error(0)
}

// Close provides a mock function with given fields: ctx.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayWarnings provides a mock function with given fields: ctx, warnings.
func (_m *MockUI) DisplayWarnings(ctx context.Context, warnings []string) {
	_m.Called(ctx, warnings)
}

// DisplayReport provides a mock function with given fields: ctx, report.
func (_m *MockUI) DisplayReport(ctx context.Context, report string) error {
	ret := _m.Called(ctx, report)

	return ret.Error(0)
}

// DisplayDiff provides a mock function with given fields: ctx, diff.
func (_m *MockUI) DisplayDiff(ctx context.Context, diff string) error {
	ret := _m.Called(ctx, diff)

	return ret.Error(0)
}

// DisplaySummary provides a mock function with given fields: ctx, result.
func (_m *MockUI) DisplaySummary(ctx context.Context, result m.ScanResult) {
	_m.Called(ctx, result)
}

// DisplayWords provides a mock function with given fields: ctx, verdicts.
func (_m *MockUI) DisplayWords(ctx context.Context, verdicts []m.WordVerdict) error {
	ret := _m.Called(ctx, verdicts)

	return ret.Error(0)
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
