package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "skyhr_backend/internals/features/attendance/shifts/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateShiftRequest struct {
	ShiftUserID       string  `json:"shift_user_id" validate:"required,max=64"`
	ShiftName         string  `json:"shift_name" validate:"required,max=120"`
	ShiftWeekdays     []int32 `json:"shift_weekdays" validate:"required,min=1,max=7,dive,min=0,max=6"`
	ShiftStartMinutes int     `json:"shift_start_minutes" validate:"min=0,max=1439"`
	ShiftEndMinutes   int     `json:"shift_end_minutes" validate:"required,gtfield=ShiftStartMinutes,max=1439"`
}

type UpdateShiftRequest struct {
	ShiftName         *string  `json:"shift_name" validate:"omitempty,max=120"`
	ShiftWeekdays     *[]int32 `json:"shift_weekdays" validate:"omitempty,min=1,max=7,dive,min=0,max=6"`
	ShiftStartMinutes *int     `json:"shift_start_minutes" validate:"omitempty,min=0,max=1439"`
	ShiftEndMinutes   *int     `json:"shift_end_minutes" validate:"omitempty,min=1,max=1439"`
	ShiftActive       *bool    `json:"shift_active" validate:"omitempty"`
}

type UpsertAttendanceSettingRequest struct {
	GracePeriodMin    *int `json:"grace_period_min" validate:"required,min=0,max=60"`
	EarlyToleranceMin *int `json:"early_tolerance_min" validate:"required,min=0,max=180"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type ShiftResponse struct {
	ShiftID             uuid.UUID `json:"shift_id"`
	ShiftUserID         string    `json:"shift_user_id"`
	ShiftOrganizationID string    `json:"shift_organization_id"`
	ShiftName           string    `json:"shift_name"`
	ShiftWeekdays       []int32   `json:"shift_weekdays"`
	ShiftStartMinutes   int       `json:"shift_start_minutes"`
	ShiftEndMinutes     int       `json:"shift_end_minutes"`
	ShiftActive         bool      `json:"shift_active"`
	ShiftCreatedAt      time.Time `json:"shift_created_at"`
}

type AttendanceSettingResponse struct {
	OrganizationID    string `json:"organization_id"`
	GracePeriodMin    int    `json:"grace_period_min"`
	EarlyToleranceMin int    `json:"early_tolerance_min"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateShiftRequest) ToModel(organizationID string) m.ShiftModel {
	return m.ShiftModel{
		ShiftUserID:         r.ShiftUserID,
		ShiftOrganizationID: organizationID,
		ShiftName:           r.ShiftName,
		ShiftWeekdays:       pq.Int32Array(r.ShiftWeekdays),
		ShiftStartMinutes:   r.ShiftStartMinutes,
		ShiftEndMinutes:     r.ShiftEndMinutes,
		ShiftActive:         true,
	}
}

func NewShiftResponse(mdl m.ShiftModel) ShiftResponse {
	return ShiftResponse{
		ShiftID:             mdl.ShiftID,
		ShiftUserID:         mdl.ShiftUserID,
		ShiftOrganizationID: mdl.ShiftOrganizationID,
		ShiftName:           mdl.ShiftName,
		ShiftWeekdays:       []int32(mdl.ShiftWeekdays),
		ShiftStartMinutes:   mdl.ShiftStartMinutes,
		ShiftEndMinutes:     mdl.ShiftEndMinutes,
		ShiftActive:         mdl.ShiftActive,
		ShiftCreatedAt:      mdl.ShiftCreatedAt,
	}
}

func NewAttendanceSettingResponse(mdl m.AttendanceSettingModel) AttendanceSettingResponse {
	return AttendanceSettingResponse{
		OrganizationID:    mdl.AttendanceSettingOrganizationID,
		GracePeriodMin:    mdl.AttendanceSettingGracePeriodMin,
		EarlyToleranceMin: mdl.AttendanceSettingEarlyToleranceMin,
	}
}
