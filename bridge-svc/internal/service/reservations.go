package service

import (
	"context"
	"log"

	"menu-bridge/bridge-svc/internal/domain"
)

const defaultReservationKind = "table"

func (b *Bridge) CreateReservation(ctx context.Context, input domain.ReservationInput) (domain.Row, error) {
	if input.Kind == "" {
		input.Kind = defaultReservationKind
	}
	if input.DurationMinutes == 0 {
		input.DurationMinutes = defaultDurationMinutes
	}

	inserted, err := b.remote.Insert(ctx, "reservations", []domain.Row{{
		"name":             input.Name,
		"phone":            input.Phone,
		"date":             input.ISO,
		"people":           input.People,
		"kind":             input.Kind,
		"notes":            input.Notes,
		"duration_minutes": input.DurationMinutes,
		"table_no":         input.Table,
	}})
	if err != nil {
		return nil, remoteErr("insert", "reservations", err)
	}
	row, err := single("insert", "reservations", inserted)
	if err != nil {
		return nil, err
	}

	view := reservationFromRow(row)
	view.CreatedAt = timestamp(b.now())

	if err := updateMirror(ctx, b, domain.KeyReservations, []domain.Reservation{}, func(list []domain.Reservation) ([]domain.Reservation, bool) {
		return append([]domain.Reservation{view}, list...), true
	}); err != nil {
		log.Printf("Warning: reservation %d saved but not mirrored: %v", view.ID, err)
	}

	b.publish(ctx, domain.KafkaMessage{Type: domain.EventReservationCreated, EntityID: view.ID})
	return row, nil
}

// UpdateReservation patches the remote row and, when the reservation is
// mirrored locally, merges the patch into the mirrored record.
func (b *Bridge) UpdateReservation(ctx context.Context, id int64, patch domain.Row) (domain.Row, error) {
	updated, err := b.remote.Update(ctx, "reservations", patch, []domain.Filter{domain.Eq("id", id)})
	if err != nil {
		return nil, remoteErr("update", "reservations", err)
	}
	row, err := single("update", "reservations", updated)
	if err != nil {
		return nil, err
	}

	if err := updateMirror(ctx, b, domain.KeyReservations, []domain.Reservation{}, func(list []domain.Reservation) ([]domain.Reservation, bool) {
		for i := range list {
			if list[i].ID == id {
				applyReservationPatch(&list[i], patch)
				list[i].UpdatedAt = timestamp(b.now())
				return list, true
			}
		}
		return list, false
	}); err != nil {
		log.Printf("Warning: reservation %d updated but not mirrored: %v", id, err)
	}

	b.publish(ctx, domain.KafkaMessage{Type: domain.EventReservationUpdated, EntityID: id})
	return row, nil
}

func (b *Bridge) DeleteReservation(ctx context.Context, id int64) error {
	if err := b.remote.Delete(ctx, "reservations", []domain.Filter{domain.Eq("id", id)}); err != nil {
		return remoteErr("delete", "reservations", err)
	}

	if err := updateMirror(ctx, b, domain.KeyReservations, []domain.Reservation{}, func(list []domain.Reservation) ([]domain.Reservation, bool) {
		kept := make([]domain.Reservation, 0, len(list))
		for _, r := range list {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		return kept, true
	}); err != nil {
		log.Printf("Warning: reservation %d deleted but still mirrored: %v", id, err)
	}

	b.publish(ctx, domain.KafkaMessage{Type: domain.EventReservationDeleted, EntityID: id})
	return nil
}
