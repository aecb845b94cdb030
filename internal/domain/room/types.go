package room

// Status is the operational state of a room. Maintenance, renovation and
// reconstruction are authoritative blocks; occupied is advisory only and the
// interval index stays the source of truth for bookability.
type Status string

const (
	StatusAvailable      Status = "available"
	StatusOccupied       Status = "occupied"
	StatusMaintenance    Status = "maintenance"
	StatusRenovation     Status = "renovation"
	StatusReconstruction Status = "reconstruction"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusRenovation, StatusReconstruction:
		return true
	default:
		return false
	}
}

// Blocks reports whether the status forbids new bookings regardless of the
// interval index.
func (s Status) Blocks() bool {
	switch s {
	case StatusMaintenance, StatusRenovation, StatusReconstruction:
		return true
	default:
		return false
	}
}

// transitions lists the allowed next states per status. Occupied can only be
// released back to available; a room must be released before staff can pull it
// into a blocking state.
var transitions = map[Status][]Status{
	StatusAvailable:      {StatusOccupied, StatusMaintenance, StatusRenovation, StatusReconstruction},
	StatusOccupied:       {StatusAvailable},
	StatusMaintenance:    {StatusAvailable, StatusRenovation, StatusReconstruction},
	StatusRenovation:     {StatusAvailable, StatusMaintenance, StatusReconstruction},
	StatusReconstruction: {StatusAvailable, StatusRenovation},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}
