// Package journal persists the state changes the core emits: reservation
// lifecycle, room status moves and swipe events. It writes and never reads;
// the engine in memory stays the allocation authority.
package journal

import (
	"context"
	"errors"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/room"
	"lastresort/internal/infra"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresJournal struct {
	db *pgxpool.Pool
}

func NewPostgresJournal(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

var _ usecase.Journal = (*PostgresJournal)(nil)

// wrapInsertErr classifies unique violations separately so callers can treat
// a replayed write as already journaled rather than as a storage failure.
func wrapInsertErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return infra.WrapRepoErr(infra.KindDuplicateKey, msg, err)
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}

func (j *PostgresJournal) ReservationConfirmed(ctx context.Context, rec usecase.ReservationRecord) error {
	const q = `
		INSERT INTO reservations (id, customer_id, start_at, end_at, units, total_rate_cents, deposit_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := j.db.Exec(ctx, q,
		rec.ID, rec.CustomerID, rec.Start, rec.End, rec.Units, rec.TotalRateCents, rec.DepositStatus, rec.Status,
	); err != nil {
		return wrapInsertErr("failed to persist reservation", err)
	}

	const qr = `
		INSERT INTO reservation_rooms (reservation_id, room_id, room_number, building)
		VALUES ($1, $2, $3, $4)`
	for i, roomID := range rec.RoomIDs {
		number, building := "", ""
		if i < len(rec.RoomNumbers) {
			number = rec.RoomNumbers[i]
		}
		if i < len(rec.Buildings) {
			building = rec.Buildings[i]
		}
		if _, err := j.db.Exec(ctx, qr, rec.ID, roomID, number, building); err != nil {
			return wrapInsertErr("failed to persist reservation room", err)
		}
	}
	return nil
}

func (j *PostgresJournal) ReservationRescheduled(ctx context.Context, rec usecase.ReservationRecord) error {
	const q = `
		UPDATE reservations
		SET start_at = $2, end_at = $3, units = $4, total_rate_cents = $5, updated_at = now()
		WHERE id = $1`
	if _, err := j.db.Exec(ctx, q, rec.ID, rec.Start, rec.End, rec.Units, rec.TotalRateCents); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to persist reschedule", err)
	}
	return nil
}

func (j *PostgresJournal) ReservationCancelled(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return j.setReservationStatus(ctx, reservationID, "cancelled", at)
}

func (j *PostgresJournal) ReservationCompleted(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return j.setReservationStatus(ctx, reservationID, "completed", at)
}

func (j *PostgresJournal) setReservationStatus(ctx context.Context, reservationID uuid.UUID, status string, at time.Time) error {
	const q = `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := j.db.Exec(ctx, q, reservationID, status, at); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to persist reservation status", err)
	}
	return nil
}

func (j *PostgresJournal) RoomStatusChanged(ctx context.Context, roomID uuid.UUID, st room.Status, at time.Time) error {
	const q = `
		INSERT INTO room_status_changes (room_id, status, changed_at)
		VALUES ($1, $2, $3)`
	if _, err := j.db.Exec(ctx, q, roomID, st.String(), at); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to persist room status change", err)
	}
	return nil
}

func (j *PostgresJournal) SwipeRecorded(ctx context.Context, ev access.Event) error {
	const q = `
		INSERT INTO access_events (sequence, card_id, reader_id, occurred_at, outcome, denial_reason)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := j.db.Exec(ctx, q,
		ev.Sequence, ev.CardID, ev.ReaderID, ev.Timestamp, string(ev.Outcome), string(ev.Reason),
	); err != nil {
		return wrapInsertErr("failed to persist access event", err)
	}
	return nil
}
