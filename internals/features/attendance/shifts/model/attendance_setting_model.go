package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSettingModel: toleransi waktu absen per organization.
type AttendanceSettingModel struct {
	AttendanceSettingID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_setting_id" json:"attendance_setting_id"`
	AttendanceSettingOrganizationID string    `gorm:"not null;uniqueIndex;column:attendance_setting_organization_id" json:"attendance_setting_organization_id"`

	// Grace period: 0–60 menit setelah mulai shift masih dihitung on_time.
	AttendanceSettingGracePeriodMin int `gorm:"not null;default:15;column:attendance_setting_grace_period_min" json:"attendance_setting_grace_period_min"`

	// Check-in lebih awal dari (start - toleransi) diberi status early.
	AttendanceSettingEarlyToleranceMin int `gorm:"not null;default:30;column:attendance_setting_early_tolerance_min" json:"attendance_setting_early_tolerance_min"`

	AttendanceSettingCreatedAt time.Time  `gorm:"column:attendance_setting_created_at;autoCreateTime" json:"attendance_setting_created_at"`
	AttendanceSettingUpdatedAt *time.Time `gorm:"column:attendance_setting_updated_at;autoUpdateTime" json:"attendance_setting_updated_at,omitempty"`
}

func (AttendanceSettingModel) TableName() string { return "attendance_setting" }
