package usecase

import (
	"context"
	"log/slog"

	"lastresort/internal/engine/accesslog"
	"lastresort/internal/engine/adjacency"
	"lastresort/internal/engine/allocator"
	"lastresort/internal/pkg/errs"
)

// InventoryLoader seeds the in-process engine from the inventory tables. The
// allocator, resolver and correlator all boot empty; until Load runs nothing
// is bookable and no reader accepts a swipe.
type InventoryLoader interface {
	Load(ctx context.Context) error
}

type inventoryLoaderImpl struct {
	inventory  Inventory
	alloc      *allocator.Allocator
	resolver   *adjacency.Resolver
	correlator *accesslog.Correlator
	logger     *slog.Logger
}

func NewInventoryLoader(
	inventory Inventory,
	alloc *allocator.Allocator,
	resolver *adjacency.Resolver,
	correlator *accesslog.Correlator,
	logger *slog.Logger,
) InventoryLoader {
	return &inventoryLoaderImpl{
		inventory:  inventory,
		alloc:      alloc,
		resolver:   resolver,
		correlator: correlator,
		logger:     logger,
	}
}

func (l *inventoryLoaderImpl) Load(ctx context.Context) error {
	rooms, err := l.inventory.ListRooms(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to list rooms")
	}
	for _, rm := range rooms {
		l.alloc.RegisterRoom(rm)
	}

	edges, err := l.inventory.ListAdjacencies(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to list adjacency edges")
	}
	for _, e := range edges {
		if err := l.resolver.AddEdge(e.RoomID, e.AdjacentRoomID); err != nil {
			return errs.Wrap(err, "failed to register adjacency edge")
		}
	}

	readers, err := l.inventory.ListReaders(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to list readers")
	}
	for _, rd := range readers {
		l.correlator.RegisterReader(rd.ReaderID, rd.RoomID)
	}

	l.logger.Info("engine seeded",
		"rooms", len(rooms),
		"adjacency_edges", len(edges),
		"readers", len(readers),
	)
	return nil
}
