package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ShiftModel: jadwal kerja per user. Jam disimpan sebagai menit sejak
// tengah malam (waktu lokal organization) supaya aritmetika grace period
// tidak perlu parsing jam berulang.
type ShiftModel struct {
	ShiftID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:shift_id" json:"shift_id"`
	ShiftUserID         string    `gorm:"not null;index;column:shift_user_id" json:"shift_user_id"`
	ShiftOrganizationID string    `gorm:"not null;index;column:shift_organization_id" json:"shift_organization_id"`

	ShiftName string `gorm:"not null;column:shift_name" json:"shift_name"`

	// 0=Minggu .. 6=Sabtu (time.Weekday)
	ShiftWeekdays pq.Int32Array `gorm:"type:integer[];not null;column:shift_weekdays" json:"shift_weekdays"`

	ShiftStartMinutes int `gorm:"not null;column:shift_start_minutes" json:"shift_start_minutes"`
	ShiftEndMinutes   int `gorm:"not null;column:shift_end_minutes" json:"shift_end_minutes"`

	ShiftActive bool `gorm:"not null;default:true;column:shift_active" json:"shift_active"`

	ShiftCreatedAt time.Time      `gorm:"column:shift_created_at;autoCreateTime" json:"shift_created_at"`
	ShiftUpdatedAt *time.Time     `gorm:"column:shift_updated_at;autoUpdateTime" json:"shift_updated_at,omitempty"`
	ShiftDeletedAt gorm.DeletedAt `gorm:"column:shift_deleted_at;index" json:"shift_deleted_at,omitempty"`
}

func (ShiftModel) TableName() string { return "shift" }

// CoversWeekday: apakah shift berlaku di hari tersebut.
func (s *ShiftModel) CoversWeekday(wd time.Weekday) bool {
	for _, d := range s.ShiftWeekdays {
		if int(d) == int(wd) {
			return true
		}
	}
	return false
}

// StartOn / EndOn: jam shift pada tanggal tertentu.
func (s *ShiftModel) StartOn(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, s.ShiftStartMinutes/60, s.ShiftStartMinutes%60, 0, 0, day.Location())
}

func (s *ShiftModel) EndOn(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, s.ShiftEndMinutes/60, s.ShiftEndMinutes%60, 0, 0, day.Location())
}
