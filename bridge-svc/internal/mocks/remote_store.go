package mocks

import (
	"context"

	"menu-bridge/bridge-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RemoteStore struct {
	mock.Mock
}

func (_m *RemoteStore) Select(ctx context.Context, q domain.Query) ([]domain.Row, error) {
	ret := _m.Called(ctx, q)
	var r0 []domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *RemoteStore) Insert(ctx context.Context, table string, rows []domain.Row) ([]domain.Row, error) {
	ret := _m.Called(ctx, table, rows)
	var r0 []domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *RemoteStore) Update(ctx context.Context, table string, patch domain.Row, filters []domain.Filter) ([]domain.Row, error) {
	ret := _m.Called(ctx, table, patch, filters)
	var r0 []domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *RemoteStore) Delete(ctx context.Context, table string, filters []domain.Filter) error {
	ret := _m.Called(ctx, table, filters)
	return ret.Error(0)
}

func NewRemoteStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *RemoteStore {
	m := &RemoteStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
