package request

import "time"

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied maintenance renovation reconstruction"`
}

type AvailabilityQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
