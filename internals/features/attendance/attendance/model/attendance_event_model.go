package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status kehadiran hasil klasifikasi.
const (
	StatusOnTime      = "on_time"
	StatusLate        = "late"
	StatusEarly       = "early"
	StatusAbsent      = "absent"
	StatusOutOfBounds = "out_of_bounds"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOnTime, StatusLate, StatusEarly, StatusAbsent, StatusOutOfBounds:
		return true
	}
	return false
}

const (
	SourceQrFace = "qr_face"
	SourceSystem = "system"
)

// AttendanceEventModel: satu sesi kehadiran (check-in, lalu check-out).
// Sesi "open" = check_out masih NULL; maksimal satu open session per
// user per organization per hari (dijaga partial unique index di DB).
type AttendanceEventModel struct {
	AttendanceEventID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_event_id" json:"attendance_event_id"`
	AttendanceEventUserID         string    `gorm:"not null;index;column:attendance_event_user_id" json:"attendance_event_user_id"`
	AttendanceEventOrganizationID string    `gorm:"not null;index;column:attendance_event_organization_id" json:"attendance_event_organization_id"`

	AttendanceEventCheckIn  time.Time  `gorm:"not null;column:attendance_event_check_in" json:"attendance_event_check_in"`
	AttendanceEventCheckOut *time.Time `gorm:"column:attendance_event_check_out" json:"attendance_event_check_out,omitempty"`

	AttendanceEventIsVerified bool   `gorm:"not null;default:false;column:attendance_event_is_verified" json:"attendance_event_is_verified"`
	AttendanceEventSource     string `gorm:"not null;default:qr_face;column:attendance_event_source" json:"attendance_event_source"`

	AttendanceEventLatitude           *string `gorm:"column:attendance_event_latitude" json:"attendance_event_latitude,omitempty"`
	AttendanceEventLongitude          *string `gorm:"column:attendance_event_longitude" json:"attendance_event_longitude,omitempty"`
	AttendanceEventDistanceToGeofence *int    `gorm:"column:attendance_event_distance_to_geofence_m" json:"attendance_event_distance_to_geofence_m,omitempty"`
	AttendanceEventIsWithinGeofence   *bool   `gorm:"column:attendance_event_is_within_geofence" json:"attendance_event_is_within_geofence,omitempty"`

	AttendanceEventStatus  string     `gorm:"not null;default:on_time;column:attendance_event_status" json:"attendance_event_status"`
	AttendanceEventShiftID *uuid.UUID `gorm:"type:uuid;column:attendance_event_shift_id" json:"attendance_event_shift_id,omitempty"`

	// Skor face match disimpan sebagai text apa adanya dari provider.
	AttendanceEventFaceConfidence *string `gorm:"column:attendance_event_face_confidence" json:"attendance_event_face_confidence,omitempty"`
	AttendanceEventLivenessScore  *string `gorm:"column:attendance_event_liveness_score" json:"attendance_event_liveness_score,omitempty"`
	AttendanceEventSpoofFlag      bool    `gorm:"not null;default:false;column:attendance_event_spoof_flag" json:"attendance_event_spoof_flag"`

	AttendanceEventNotes *string `gorm:"column:attendance_event_notes" json:"attendance_event_notes,omitempty"`

	AttendanceEventCreatedAt time.Time      `gorm:"column:attendance_event_created_at;autoCreateTime" json:"attendance_event_created_at"`
	AttendanceEventUpdatedAt *time.Time     `gorm:"column:attendance_event_updated_at;autoUpdateTime" json:"attendance_event_updated_at,omitempty"`
	AttendanceEventDeletedAt gorm.DeletedAt `gorm:"column:attendance_event_deleted_at;index" json:"attendance_event_deleted_at,omitempty"`
}

func (AttendanceEventModel) TableName() string { return "attendance_event" }
