package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventReservationCreated = "reservation_created"
	EventReservationUpdated = "reservation_updated"
	EventReservationDeleted = "reservation_deleted"
	EventRatingCreated      = "rating_created"
)

type KafkaMessage struct {
	Type      string    `json:"type"`
	EntityID  int64     `json:"entity_id"`
	ItemID    int64     `json:"item_id,omitempty"`
	Stars     int       `json:"stars,omitempty"`
	Total     float64   `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
