// Package adjacency resolves combination requests (a primary room plus a
// required room count) into concrete room sets over declared adjacency edges.
// Only direct adjacency counts; the resolver never infers transitivity.
package adjacency

import (
	"sync"

	"lastresort/internal/engine/roomlock"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSelfLoop = errs.New("room cannot be adjacent to itself")

type Resolver struct {
	mu sync.RWMutex
	// Edges are stored directed as declared, with a reverse index so lookup is
	// symmetric in intent.
	out map[uuid.UUID]map[uuid.UUID]struct{}
	in  map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewResolver() *Resolver {
	return &Resolver{
		out: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		in:  make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (r *Resolver) AddEdge(roomID, adjacentRoomID uuid.UUID) error {
	if roomID == adjacentRoomID {
		return ErrSelfLoop
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	addEdge(r.out, roomID, adjacentRoomID)
	addEdge(r.in, adjacentRoomID, roomID)
	return nil
}

func addEdge(m map[uuid.UUID]map[uuid.UUID]struct{}, from, to uuid.UUID) {
	set, ok := m[from]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

// Neighbors returns the rooms directly adjacent to roomID in either edge
// direction, in canonical ascending order.
func (r *Resolver) Neighbors(roomID uuid.UUID) []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(r.out[roomID])+len(r.in[roomID]))
	for id := range r.out[roomID] {
		ids = append(ids, id)
	}
	for id := range r.in[roomID] {
		ids = append(ids, id)
	}
	return roomlock.SortIDs(ids)
}

// Resolve expands a combination request into up to requiredRooms bookable
// rooms: the primary plus its direct neighbors, taken in ascending ID order.
// It is a pure read over the edge set and the supplied bookability check.
func (r *Resolver) Resolve(primaryRoomID uuid.UUID, requiredRooms int, bookable func(uuid.UUID) bool) ([]uuid.UUID, error) {
	if requiredRooms < 1 {
		return nil, errs.Newf("required room count %d must be at least 1", requiredRooms)
	}

	// The combination is anchored on the primary; it cannot be substituted.
	if !bookable(primaryRoomID) {
		return nil, errs.Mark(
			errs.Newf("primary room %s is not bookable", primaryRoomID),
			errs.ErrInsufficientAdjacency,
		)
	}

	selected := make([]uuid.UUID, 0, requiredRooms)
	selected = append(selected, primaryRoomID)

	for _, id := range r.Neighbors(primaryRoomID) {
		if len(selected) == requiredRooms {
			break
		}
		if bookable(id) {
			selected = append(selected, id)
		}
	}

	if len(selected) < requiredRooms {
		return nil, errs.Mark(
			errs.Newf("room %s has %d bookable rooms within direct adjacency, need %d",
				primaryRoomID, len(selected), requiredRooms),
			errs.ErrInsufficientAdjacency,
		)
	}
	return selected, nil
}
