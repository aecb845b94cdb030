package response

import (
	"time"

	"lastresort/internal/domain/access"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AccessEventResponse struct {
	Sequence  uint64              `json:"sequence"`
	CardID    uuid.UUID           `json:"card_id"`
	ReaderID  uuid.UUID           `json:"reader_id"`
	Timestamp time.Time           `json:"timestamp"`
	Outcome   access.Outcome      `json:"outcome"`
	Reason    access.DenialReason `json:"denial_reason,omitempty"`
}

func FromAccessEvent(ev access.Event) *AccessEventResponse {
	var resp AccessEventResponse
	_ = copier.Copy(&resp, &ev)
	return &resp
}
