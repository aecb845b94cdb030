package access

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeDenied  Outcome = "denied"
)

type DenialReason string

const (
	DenialReasonNone         DenialReason = ""
	DenialReasonCardInactive DenialReason = "card_inactive"
	DenialReasonCardExpired  DenialReason = "card_expired"
	DenialReasonCardUnknown  DenialReason = "card_unknown"
)

// Event is a single badge swipe. Events are append-only: denied attempts are
// recorded too, because they are themselves the audit signal.
type Event struct {
	Sequence  uint64
	CardID    uuid.UUID
	ReaderID  uuid.UUID
	Timestamp time.Time
	Outcome   Outcome
	Reason    DenialReason
}

// CardRecord is the read-only view the staff directory exposes for a card.
type CardRecord struct {
	CardID    uuid.UUID
	StaffID   uuid.UUID
	Active    bool
	ExpiresAt time.Time
}

// Verdict is a grant policy decision. The correlator records it verbatim and
// never decides policy itself.
type Verdict struct {
	Granted bool
	Reason  DenialReason
}

// GrantPolicy is the injected access capability check.
type GrantPolicy interface {
	Decide(card CardRecord, at time.Time) Verdict
}

// ActiveCardPolicy grants access to active, unexpired cards.
type ActiveCardPolicy struct{}

func (ActiveCardPolicy) Decide(card CardRecord, at time.Time) Verdict {
	if !card.Active {
		return Verdict{Granted: false, Reason: DenialReasonCardInactive}
	}
	if !card.ExpiresAt.IsZero() && at.After(card.ExpiresAt) {
		return Verdict{Granted: false, Reason: DenialReasonCardExpired}
	}
	return Verdict{Granted: true}
}
