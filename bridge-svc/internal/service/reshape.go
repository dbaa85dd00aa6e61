package service

import (
	"fmt"

	"menu-bridge/bridge-svc/internal/domain"
)

const defaultDurationMinutes = 90

func menuItemFromRow(row domain.Row) domain.MenuItem {
	return domain.MenuItem{
		ID:    toInt64(row["id"]),
		Name:  toText(row["name"]),
		Desc:  toText(row["desc"]),
		Price: toNumber(row["price"]),
		Img:   toText(row["img"]),
		CatID: toInt64(row["cat_id"]),
		Fresh: truthy(row["fresh"]),
		Rating: domain.RatingSummary{
			Avg:   toNumber(row["rating_avg"]),
			Count: toNumber(row["rating_count"]),
		},
		Available: truthy(row["available"]),
	}
}

func menuItemsFromRows(rows []domain.Row) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, menuItemFromRow(row))
	}
	return items
}

func reservationFromRow(row domain.Row) domain.Reservation {
	duration := int(toNumber(row["duration_minutes"]))
	if duration == 0 {
		duration = defaultDurationMinutes
	}
	return domain.Reservation{
		ID:       toInt64(row["id"]),
		Name:     toText(row["name"]),
		Phone:    toText(row["phone"]),
		Time:     toText(row["date"]),
		People:   int(toNumber(row["people"])),
		Kind:     toText(row["kind"]),
		Table:    toText(row["table_no"]),
		Duration: duration,
		Notes:    toText(row["notes"]),
	}
}

func ratingFromRow(row domain.Row) domain.Rating {
	return domain.Rating{
		ID:     toInt64(row["id"]),
		ItemID: toInt64(row["item_id"]),
		Stars:  int(toNumber(row["stars"])),
		Time:   toText(row["created_at"]),
	}
}

func orderLineFromRow(row domain.Row) domain.OrderLine {
	return domain.OrderLine{
		ID:    nullableID(row["item_id"]),
		Name:  toText(row["name"]),
		Price: toNumber(row["price"]),
		Qty:   toQty(row["qty"]),
	}
}

// applyReservationPatch merges a remote-column patch into a mirrored
// reservation. View field names are accepted too; unknown keys are ignored.
func applyReservationPatch(r *domain.Reservation, patch domain.Row) {
	for key, value := range patch {
		switch key {
		case "name":
			r.Name = toText(value)
		case "phone":
			r.Phone = toText(value)
		case "date", "time":
			r.Time = toText(value)
		case "people":
			r.People = int(toNumber(value))
		case "kind":
			r.Kind = toText(value)
		case "table_no", "table":
			r.Table = toText(value)
		case "notes":
			r.Notes = toText(value)
		case "duration_minutes", "duration":
			r.Duration = int(toNumber(value))
		}
	}
}

func orderNotification(o domain.OrderSummary) domain.Notification {
	return domain.Notification{
		ID:      fmt.Sprintf("ord-%d", o.ID),
		Type:    "order",
		Title:   fmt.Sprintf("طلب جديد #%d", o.ID),
		Message: fmt.Sprintf("عدد العناصر: %s | الإجمالي: %s", formatNumber(o.ItemCount), formatNumber(o.Total)),
		Time:    o.CreatedAt,
		Read:    false,
	}
}
