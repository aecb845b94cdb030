// Package directory implements the read-only customer and staff-card lookups
// the core consumes. Record management lives entirely outside the engine.
package directory

import (
	"context"
	"errors"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/room"
	"lastresort/internal/engine/accesslog"
	"lastresort/internal/infra"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDirectory struct {
	db *pgxpool.Pool
}

func NewPostgresDirectory(db *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

var (
	_ usecase.CustomerDirectory = (*PostgresDirectory)(nil)
	_ accesslog.CardDirectory   = (*PostgresDirectory)(nil)
	_ usecase.Inventory         = (*PostgresDirectory)(nil)
)

func (d *PostgresDirectory) Exists(ctx context.Context, customerID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	var exists bool
	if err := d.db.QueryRow(ctx, q, customerID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to look up customer", err)
	}
	return exists, nil
}

func (d *PostgresDirectory) Lookup(ctx context.Context, cardID uuid.UUID) (access.CardRecord, error) {
	const q = `
		SELECT c.id, a.staff_id, c.active, c.expires_at
		FROM staff_cards c
		JOIN staff_card_assignments a ON a.card_id = c.id
		WHERE c.id = $1`
	var rec access.CardRecord
	err := d.db.QueryRow(ctx, q, cardID).Scan(&rec.CardID, &rec.StaffID, &rec.Active, &rec.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return access.CardRecord{}, infra.WrapRepoErr(infra.KindNotFound, "card not found", err)
	}
	if err != nil {
		return access.CardRecord{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to look up card", err)
	}
	return rec, nil
}

func (d *PostgresDirectory) ListRooms(ctx context.Context) ([]*room.Room, error) {
	const q = `
		SELECT r.id, r.number, b.name, r.wing, r.floor,
		       t.name, t.base_rate_cents, t.max_occupancy,
		       r.square_footage, r.has_paid_bar, r.status
		FROM rooms r
		JOIN room_types t ON t.id = r.room_type_id
		JOIN buildings b ON b.id = r.building_id`
	rows, err := d.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rooms", err)
	}
	defer rows.Close()

	var out []*room.Room
	for rows.Next() {
		var (
			id               uuid.UUID
			number, building string
			wing             *string
			floor            *int
			typeName         string
			baseRateCents    int64
			maxOccupancy     int
			squareFootage    int
			hasPaidBar       bool
			st               string
		)
		if err := rows.Scan(&id, &number, &building, &wing, &floor,
			&typeName, &baseRateCents, &maxOccupancy,
			&squareFootage, &hasPaidBar, &st); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan room", err)
		}
		rt, err := room.NewType(typeName, baseRateCents, maxOccupancy)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid room type row", err)
		}
		loc := room.Location{Building: building, Wing: wing, Floor: floor}
		rm, err := room.ReconstructRoom(id, number, loc, rt, squareFootage, hasPaidBar, room.Status(st))
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid room row", err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rooms", err)
	}
	return out, nil
}

func (d *PostgresDirectory) ListAdjacencies(ctx context.Context) ([]usecase.AdjacencyEdge, error) {
	const q = `SELECT room_id, adjacent_room_id FROM room_adjacencies`
	rows, err := d.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list adjacency edges", err)
	}
	defer rows.Close()

	var out []usecase.AdjacencyEdge
	for rows.Next() {
		var e usecase.AdjacencyEdge
		if err := rows.Scan(&e.RoomID, &e.AdjacentRoomID); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan adjacency edge", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list adjacency edges", err)
	}
	return out, nil
}

func (d *PostgresDirectory) ListReaders(ctx context.Context) ([]usecase.ReaderBinding, error) {
	const q = `SELECT id, room_id FROM readers`
	rows, err := d.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list readers", err)
	}
	defer rows.Close()

	var out []usecase.ReaderBinding
	for rows.Next() {
		var rd usecase.ReaderBinding
		if err := rows.Scan(&rd.ReaderID, &rd.RoomID); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reader", err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list readers", err)
	}
	return out, nil
}
