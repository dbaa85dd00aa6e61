package service

import (
	"context"
	"log"

	"menu-bridge/bridge-svc/internal/domain"
)

// OrderTotal sums price×qty over the submitted lines. A missing price counts
// as 0, a missing quantity as 1.
func OrderTotal(items []domain.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += toNumber(it.Price) * toQty(it.Qty)
	}
	return total
}

// CreateOrder inserts the order and then its lines. If the line insert fails
// the order row stays committed remotely and the local mirror is not touched.
// Once both inserts succeed the order is returned even if mirroring fails.
func (b *Bridge) CreateOrder(ctx context.Context, input domain.OrderInput) (domain.Row, error) {
	total := OrderTotal(input.Items)

	inserted, err := b.remote.Insert(ctx, "orders", []domain.Row{{
		"order_name": input.OrderName,
		"phone":      input.Phone,
		"table_no":   input.TableNo,
		"notes":      input.Notes,
		"total":      total,
	}})
	if err != nil {
		return nil, remoteErr("insert", "orders", err)
	}
	order, err := single("insert", "orders", inserted)
	if err != nil {
		return nil, err
	}
	orderID := toInt64(order["id"])

	lines := make([]domain.Row, 0, len(input.Items))
	var itemCount float64
	for _, it := range input.Items {
		var itemID any
		if it.ID != nil && *it.ID != 0 {
			itemID = *it.ID
		}
		qty := toQty(it.Qty)
		itemCount += qty
		lines = append(lines, domain.Row{
			"order_id": orderID,
			"item_id":  itemID,
			"name":     it.Name,
			"price":    toNumber(it.Price),
			"qty":      qty,
		})
	}
	if len(lines) > 0 {
		if _, err := b.remote.Insert(ctx, "order_items", lines); err != nil {
			log.Printf("ERROR: order %d committed without its lines: %v", orderID, err)
			return nil, remoteErr("insert", "order_items", err)
		}
	}

	summary := domain.OrderSummary{
		ID:        orderID,
		ItemCount: itemCount,
		Total:     total,
		CreatedAt: timestamp(b.now()),
		Table:     input.TableNo,
		OrderName: input.OrderName,
		Notes:     input.Notes,
	}
	if err := updateMirror(ctx, b, domain.KeyOrders, []domain.OrderSummary{}, func(orders []domain.OrderSummary) ([]domain.OrderSummary, bool) {
		return append([]domain.OrderSummary{summary}, orders...), true
	}); err != nil {
		log.Printf("Warning: order %d saved but not mirrored: %v", orderID, err)
	}

	b.publish(ctx, domain.KafkaMessage{
		Type:     domain.EventOrderCreated,
		EntityID: orderID,
		Total:    total,
	})

	log.Printf("Created order %d with %d lines, total %s", orderID, len(lines), formatNumber(total))
	return order, nil
}

// CreateRating inserts a rating. The ratings mirror only changes on admin sync.
func (b *Bridge) CreateRating(ctx context.Context, input domain.RatingInput) (domain.Row, error) {
	inserted, err := b.remote.Insert(ctx, "ratings", []domain.Row{{
		"item_id": input.ItemID,
		"stars":   input.Stars,
	}})
	if err != nil {
		return nil, remoteErr("insert", "ratings", err)
	}
	rating, err := single("insert", "ratings", inserted)
	if err != nil {
		return nil, err
	}

	b.publish(ctx, domain.KafkaMessage{
		Type:     domain.EventRatingCreated,
		EntityID: toInt64(rating["id"]),
		ItemID:   input.ItemID,
		Stars:    input.Stars,
	})
	return rating, nil
}
