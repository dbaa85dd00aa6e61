package mocks

import "github.com/stretchr/testify/mock"

type Navigator struct {
	mock.Mock
}

func (_m *Navigator) Redirect(path string) {
	_m.Called(path)
}

func NewNavigator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Navigator {
	m := &Navigator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
