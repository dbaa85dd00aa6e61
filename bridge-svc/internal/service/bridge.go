package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"menu-bridge/bridge-svc/internal/domain"
)

var publicMenuColumns = []string{
	"id", "name", "desc", "price", "img", "cat_id", "available", "fresh", "rating_avg", "rating_count",
}

var adminOrderColumns = []string{
	"id", "order_name", "phone", "table_no", "notes", "total", "created_at",
}

// Bridge mirrors the remote restaurant tables into the local key-value store.
type Bridge struct {
	remote    RemoteStore
	sessions  SessionProvider
	mirror    KeyValueStore
	publisher EventPublisher
	now       func() time.Time

	// mirrorMu guards read-modify-write cycles on the mirror.
	mirrorMu sync.Mutex
}

// NewBridge wires the bridge to its collaborators. publisher may be nil.
func NewBridge(remote RemoteStore, sessions SessionProvider, mirror KeyValueStore, publisher EventPublisher) *Bridge {
	return &Bridge{
		remote:    remote,
		sessions:  sessions,
		mirror:    mirror,
		publisher: publisher,
		now:       time.Now,
	}
}

// SyncPublicCatalog replaces the category and menu mirrors with the current
// remote catalog. Nothing is written unless both fetches succeed.
func (b *Bridge) SyncPublicCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	categories, err := b.remote.Select(ctx, domain.Query{
		Table: "categories",
		Order: domain.Asc("sort"),
	})
	if err != nil {
		return nil, remoteErr("select", "categories", err)
	}

	rows, err := b.remote.Select(ctx, domain.Query{
		Table:   "menu_items",
		Columns: publicMenuColumns,
		Filters: []domain.Filter{domain.Eq("available", true)},
		Order:   domain.Desc("created_at"),
	})
	if err != nil {
		return nil, remoteErr("select", "menu_items", err)
	}

	if categories == nil {
		categories = []domain.Row{}
	}
	items := menuItemsFromRows(rows)

	if err := b.writeAll(ctx, []mirrorWrite{
		{domain.KeyCategories, categories},
		{domain.KeyMenuItems, items},
	}); err != nil {
		return nil, err
	}

	log.Printf("Synced public catalog: %d categories, %d items", len(categories), len(items))
	return &domain.CatalogSnapshot{Categories: categories, Items: items}, nil
}

// SyncAdminData refetches every admin-facing table and fully replaces each
// mirror key, including notifications derived from orders. The first failed
// fetch aborts the sync before any mirror write.
func (b *Bridge) SyncAdminData(ctx context.Context) (bool, error) {
	categories, err := b.remote.Select(ctx, domain.Query{Table: "categories", Order: domain.Asc("sort")})
	if err != nil {
		return false, remoteErr("select", "categories", err)
	}

	itemRows, err := b.remote.Select(ctx, domain.Query{Table: "menu_items", Order: domain.Desc("created_at")})
	if err != nil {
		return false, remoteErr("select", "menu_items", err)
	}

	orderRows, err := b.remote.Select(ctx, domain.Query{
		Table:   "orders",
		Columns: adminOrderColumns,
		Order:   domain.Desc("created_at"),
	})
	if err != nil {
		return false, remoteErr("select", "orders", err)
	}

	orderIDs := make([]int64, 0, len(orderRows))
	for _, o := range orderRows {
		orderIDs = append(orderIDs, toInt64(o["id"]))
	}

	var lineRows []domain.Row
	if len(orderIDs) > 0 {
		lineRows, err = b.remote.Select(ctx, domain.Query{
			Table:   "order_items",
			Filters: []domain.Filter{domain.In("order_id", orderIDs)},
		})
		if err != nil {
			return false, remoteErr("select", "order_items", err)
		}
	}

	ratingRows, err := b.remote.Select(ctx, domain.Query{Table: "ratings", Order: domain.Desc("created_at")})
	if err != nil {
		return false, remoteErr("select", "ratings", err)
	}

	reservationRows, err := b.remote.Select(ctx, domain.Query{Table: "reservations", Order: domain.Asc("date")})
	if err != nil {
		return false, remoteErr("select", "reservations", err)
	}

	linesByOrder := make(map[int64][]domain.OrderLine, len(orderIDs))
	for _, row := range lineRows {
		orderID := toInt64(row["order_id"])
		linesByOrder[orderID] = append(linesByOrder[orderID], orderLineFromRow(row))
	}

	orders := make([]domain.OrderSummary, 0, len(orderRows))
	notifications := make([]domain.Notification, 0, len(orderRows))
	for i, row := range orderRows {
		lines := linesByOrder[orderIDs[i]]
		var count float64
		for _, line := range lines {
			count += line.Qty
		}
		summary := domain.OrderSummary{
			ID:        orderIDs[i],
			Items:     lines,
			ItemCount: count,
			Total:     toNumber(row["total"]),
			CreatedAt: toText(row["created_at"]),
			Table:     toText(row["table_no"]),
			OrderName: toText(row["order_name"]),
			Notes:     toText(row["notes"]),
		}
		orders = append(orders, summary)
		notifications = append(notifications, orderNotification(summary))
	}

	ratings := make([]domain.Rating, 0, len(ratingRows))
	for _, row := range ratingRows {
		ratings = append(ratings, ratingFromRow(row))
	}

	reservations := make([]domain.Reservation, 0, len(reservationRows))
	for _, row := range reservationRows {
		reservations = append(reservations, reservationFromRow(row))
	}

	if categories == nil {
		categories = []domain.Row{}
	}

	if err := b.writeAll(ctx, []mirrorWrite{
		{domain.KeyCategories, categories},
		{domain.KeyMenuItems, menuItemsFromRows(itemRows)},
		{domain.KeyOrders, orders},
		{domain.KeyRatings, ratings},
		{domain.KeyReservations, reservations},
		{domain.KeyNotifications, notifications},
	}); err != nil {
		return false, err
	}

	log.Printf("Synced admin data: %d orders, %d ratings, %d reservations",
		len(orders), len(ratings), len(reservations))
	return true, nil
}

// MirrorValue returns the persisted text of a known mirror key.
func (b *Bridge) MirrorValue(ctx context.Context, key string) (string, bool) {
	for _, known := range domain.MirrorKeys {
		if key == known {
			return b.mirror.Get(ctx, key)
		}
	}
	return "", false
}

func (b *Bridge) publish(ctx context.Context, msg domain.KafkaMessage) {
	if b.publisher == nil {
		return
	}
	msg.Timestamp = b.now()
	if err := b.publisher.Publish(ctx, msg); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", msg.Type, err)
	}
}

func single(op, table string, rows []domain.Row) (domain.Row, error) {
	if len(rows) != 1 {
		return nil, remoteErr(op, table, fmt.Errorf("%w, got %d", ErrNotSingle, len(rows)))
	}
	return rows[0], nil
}
