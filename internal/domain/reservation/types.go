package reservation

// Status is the reservation lifecycle state. A reservation only exists in
// pending inside an allocation attempt; aborted attempts retain no state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes pending → confirmed, confirmed → cancelled and
// confirmed → completed. There is no edge out of cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// DepositStatus mirrors the facility's deposit bookkeeping.
type DepositStatus string

const (
	DepositNone     DepositStatus = "none"
	DepositPending  DepositStatus = "pending"
	DepositPaid     DepositStatus = "paid"
	DepositRefunded DepositStatus = "refunded"
)

func (d DepositStatus) IsValid() bool {
	switch d {
	case DepositNone, DepositPending, DepositPaid, DepositRefunded:
		return true
	default:
		return false
	}
}
