package request

import (
	"time"

	"github.com/google/uuid"
)

type RecordSwipeRequest struct {
	CardID   uuid.UUID `json:"card_id" binding:"required"`
	ReaderID uuid.UUID `json:"reader_id" binding:"required"`
	// Timestamp is the reader's hardware clock, not ingestion time.
	Timestamp time.Time `json:"timestamp" binding:"required"`
}
