package dto

import (
	"time"

	"skyhr_backend/internals/features/attendance/attendance/model"
)

/* =============== REQUEST =============== */

type ValidateQrRequest struct {
	QrData string `json:"qr_data" validate:"required"`
}

// CheckInRequest diparse dari multipart/form-data (foto wajah ikut di
// field "image"), jadi koordinat masuk sebagai string.
type CheckInRequest struct {
	QrData    string `form:"qr_data" validate:"required"`
	Latitude  string `form:"latitude" validate:"required"`
	Longitude string `form:"longitude" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

/* =============== RESPONSE =============== */

type ValidateQrResponse struct {
	OrganizationID string `json:"organization_id"`
	LocationID     string `json:"location_id"`
	LocationName   string `json:"location_name"`
	IsValid        bool   `json:"is_valid"`
}

type AttendanceEventResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	OrganizationID string     `json:"organization_id"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       *time.Time `json:"check_out,omitempty"`

	IsVerified bool   `json:"is_verified"`
	Source     string `json:"source"`

	Latitude            *string `json:"latitude,omitempty"`
	Longitude           *string `json:"longitude,omitempty"`
	DistanceToGeofenceM *int    `json:"distance_to_geofence_m,omitempty"`
	IsWithinGeofence    *bool   `json:"is_within_geofence,omitempty"`

	Status         string  `json:"status"`
	ShiftID        *string `json:"shift_id,omitempty"`
	FaceConfidence *string `json:"face_confidence,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	WorkDurationMinutes *int `json:"work_duration_minutes,omitempty"`
}

func NewAttendanceEventResponse(ev *model.AttendanceEventModel) AttendanceEventResponse {
	resp := AttendanceEventResponse{
		ID:                  ev.AttendanceEventID.String(),
		UserID:              ev.AttendanceEventUserID,
		OrganizationID:      ev.AttendanceEventOrganizationID,
		CheckIn:             ev.AttendanceEventCheckIn,
		CheckOut:            ev.AttendanceEventCheckOut,
		IsVerified:          ev.AttendanceEventIsVerified,
		Source:              ev.AttendanceEventSource,
		Latitude:            ev.AttendanceEventLatitude,
		Longitude:           ev.AttendanceEventLongitude,
		DistanceToGeofenceM: ev.AttendanceEventDistanceToGeofence,
		IsWithinGeofence:    ev.AttendanceEventIsWithinGeofence,
		Status:              ev.AttendanceEventStatus,
		FaceConfidence:      ev.AttendanceEventFaceConfidence,
		Notes:               ev.AttendanceEventNotes,
	}
	if ev.AttendanceEventShiftID != nil {
		id := ev.AttendanceEventShiftID.String()
		resp.ShiftID = &id
	}
	if ev.AttendanceEventCheckOut != nil {
		minutes := int(ev.AttendanceEventCheckOut.Sub(ev.AttendanceEventCheckIn).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		resp.WorkDurationMinutes = &minutes
	}
	return resp
}

type MarkAbsencesResponse struct {
	MarkedAbsent int `json:"marked_absent"`
}
