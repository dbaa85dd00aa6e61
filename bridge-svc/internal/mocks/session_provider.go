package mocks

import (
	"context"

	"menu-bridge/bridge-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SessionProvider struct {
	mock.Mock
}

func (_m *SessionProvider) Session(ctx context.Context) (*domain.Session, error) {
	ret := _m.Called(ctx)
	var r0 *domain.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}
	return r0, ret.Error(1)
}

func NewSessionProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionProvider {
	m := &SessionProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
