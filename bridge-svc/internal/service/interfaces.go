package service

import (
	"context"

	"menu-bridge/bridge-svc/internal/domain"
)

type BridgeInterface interface {
	SyncPublicCatalog(ctx context.Context) (*domain.CatalogSnapshot, error)
	CreateOrder(ctx context.Context, input domain.OrderInput) (domain.Row, error)
	CreateReservation(ctx context.Context, input domain.ReservationInput) (domain.Row, error)
	UpdateReservation(ctx context.Context, id int64, patch domain.Row) (domain.Row, error)
	DeleteReservation(ctx context.Context, id int64) error
	CreateRating(ctx context.Context, input domain.RatingInput) (domain.Row, error)
	SyncAdminData(ctx context.Context) (bool, error)
	RequireAdminOrRedirect(ctx context.Context, nav Navigator, loginPath string) *domain.Session
	MirrorValue(ctx context.Context, key string) (string, bool)
}

// RemoteStore is the structured-query side of the hosted backend.
type RemoteStore interface {
	Select(ctx context.Context, q domain.Query) ([]domain.Row, error)
	Insert(ctx context.Context, table string, rows []domain.Row) ([]domain.Row, error)
	Update(ctx context.Context, table string, patch domain.Row, filters []domain.Filter) ([]domain.Row, error)
	Delete(ctx context.Context, table string, filters []domain.Filter) error
}

// SessionProvider returns the current auth session, or nil when there is none.
type SessionProvider interface {
	Session(ctx context.Context) (*domain.Session, error)
}

// KeyValueStore persists the local mirror as text.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	// Update rewrites key from its current content. It fails without writing
	// when the current content cannot be read.
	Update(ctx context.Context, key string, change func(current string, found bool) (string, error)) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.KafkaMessage) error
}

type Navigator interface {
	Redirect(path string)
}

var _ BridgeInterface = (*Bridge)(nil)
