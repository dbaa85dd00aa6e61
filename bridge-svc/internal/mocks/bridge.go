package mocks

import (
	"context"

	"menu-bridge/bridge-svc/internal/domain"
	"menu-bridge/bridge-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type BridgeInterface struct {
	mock.Mock
}

func (_m *BridgeInterface) SyncPublicCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	ret := _m.Called(ctx)
	var r0 *domain.CatalogSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CatalogSnapshot)
	}
	return r0, ret.Error(1)
}

func (_m *BridgeInterface) CreateOrder(ctx context.Context, input domain.OrderInput) (domain.Row, error) {
	ret := _m.Called(ctx, input)
	var r0 domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *BridgeInterface) CreateReservation(ctx context.Context, input domain.ReservationInput) (domain.Row, error) {
	ret := _m.Called(ctx, input)
	var r0 domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *BridgeInterface) UpdateReservation(ctx context.Context, id int64, patch domain.Row) (domain.Row, error) {
	ret := _m.Called(ctx, id, patch)
	var r0 domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *BridgeInterface) DeleteReservation(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *BridgeInterface) CreateRating(ctx context.Context, input domain.RatingInput) (domain.Row, error) {
	ret := _m.Called(ctx, input)
	var r0 domain.Row
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Row)
	}
	return r0, ret.Error(1)
}

func (_m *BridgeInterface) SyncAdminData(ctx context.Context) (bool, error) {
	ret := _m.Called(ctx)
	return ret.Bool(0), ret.Error(1)
}

// RequireAdminOrRedirect runs the configured Run hook, if any, so tests can
// drive the navigator the way the real guard does.
func (_m *BridgeInterface) RequireAdminOrRedirect(ctx context.Context, nav service.Navigator, loginPath string) *domain.Session {
	ret := _m.Called(ctx, nav, loginPath)
	var r0 *domain.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}
	return r0
}

func (_m *BridgeInterface) MirrorValue(ctx context.Context, key string) (string, bool) {
	ret := _m.Called(ctx, key)
	return ret.String(0), ret.Bool(1)
}

func NewBridgeInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *BridgeInterface {
	m := &BridgeInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
