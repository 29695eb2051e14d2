package mocks

import (
	"github.com/stretchr/testify/mock"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// MockReportStore is a mock type for the ReportStore type.
type MockReportStore struct {
	mock.Mock
}

// SaveReport provides a mock function with given fields: path, result.
func (_m *MockReportStore) SaveReport(path m.Path, result m.ScanResult) error {
	ret := _m.Called(path, result)

	return ret.Error(0)
}

// LoadReport provides a mock function with given fields: path.
func (_m *MockReportStore) LoadReport(path m.Path) (m.ScanResult, error) {
	ret := _m.Called(path)

	if rf, ok := ret.Get(0).(func(m.Path) (m.ScanResult, error)); ok {
		return rf(path)
	}

	return ret.Get(0).(m.ScanResult), ret.Error(1)
}

// NewMockReportStore creates a new instance of MockReportStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	mock := &MockReportStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
