package mocks

import (
	"context"

	"menu-bridge/bridge-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, msg domain.KafkaMessage) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
