package room

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumber       = errors.New("room number cannot be empty")
	ErrInvalidFootage    = errors.New("square footage must be positive")
	ErrInvalidRate       = errors.New("base rate cannot be negative")
	ErrInvalidOccupancy  = errors.New("max occupancy must be positive")
	ErrInvalidRoomStatus = errors.New("invalid room status")
)

// Type is immutable reference data shared by rooms of the same kind.
type Type struct {
	name          string
	baseRateCents int64
	maxOccupancy  int
}

func NewType(name string, baseRateCents int64, maxOccupancy int) (Type, error) {
	if baseRateCents < 0 {
		return Type{}, ErrInvalidRate
	}
	if maxOccupancy <= 0 {
		return Type{}, ErrInvalidOccupancy
	}
	return Type{name: name, baseRateCents: baseRateCents, maxOccupancy: maxOccupancy}, nil
}

func (t Type) Name() string         { return t.name }
func (t Type) BaseRateCents() int64 { return t.baseRateCents }
func (t Type) MaxOccupancy() int    { return t.maxOccupancy }

// Location places a room in the facility. Wing and floor are optional; the
// original inventory has detached buildings without wings.
type Location struct {
	Building string
	Wing     *string
	Floor    *int
}

type Room struct {
	id            uuid.UUID
	number        string
	location      Location
	roomType      Type
	squareFootage int
	hasPaidBar    bool
	status        Status
}

func NewRoom(number string, loc Location, rt Type, squareFootage int, hasPaidBar bool) (*Room, error) {
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if squareFootage <= 0 {
		return nil, ErrInvalidFootage
	}
	return &Room{
		id:            uuid.New(),
		number:        number,
		location:      loc,
		roomType:      rt,
		squareFootage: squareFootage,
		hasPaidBar:    hasPaidBar,
		status:        StatusAvailable,
	}, nil
}

func ReconstructRoom(id uuid.UUID, number string, loc Location, rt Type, squareFootage int, hasPaidBar bool, status Status) (*Room, error) {
	if !status.IsValid() {
		return nil, ErrInvalidRoomStatus
	}
	return &Room{
		id:            id,
		number:        number,
		location:      loc,
		roomType:      rt,
		squareFootage: squareFootage,
		hasPaidBar:    hasPaidBar,
		status:        status,
	}, nil
}

func (r *Room) ID() uuid.UUID      { return r.id }
func (r *Room) Number() string     { return r.number }
func (r *Room) Location() Location { return r.location }
func (r *Room) RoomType() Type     { return r.roomType }
func (r *Room) SquareFootage() int { return r.squareFootage }
func (r *Room) HasPaidBar() bool   { return r.hasPaidBar }
func (r *Room) Status() Status     { return r.status }
