package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
)

// MockDictionaryStore is a mock type for the DictionaryStore type.
type MockDictionaryStore struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx, args.
func (_m *MockDictionaryStore) Load(ctx context.Context, args domain.DictionaryArgs) (*domain.DictionarySet, []error, error) {
	ret := _m.Called(ctx, args)

	var dict *domain.DictionarySet
	if v := ret.Get(0); v != nil {
		dict = v.(*domain.DictionarySet)
	}

	var warnings []error
	if v := ret.Get(1); v != nil {
		warnings = v.([]error)
	}

	return dict, warnings, ret.Error(2)
}

// NewMockDictionaryStore creates a new instance of MockDictionaryStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDictionaryStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDictionaryStore {
	mock := &MockDictionaryStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
