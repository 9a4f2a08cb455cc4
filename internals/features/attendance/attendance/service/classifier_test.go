package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyhr_backend/internals/features/attendance/attendance/model"
	shiftModel "skyhr_backend/internals/features/attendance/shifts/model"
)

// Shift 09:00–17:00, berlaku setiap hari.
func nineToFiveShift() *shiftModel.ShiftModel {
	return &shiftModel.ShiftModel{
		ShiftName:         "Reguler",
		ShiftWeekdays:     []int32{0, 1, 2, 3, 4, 5, 6},
		ShiftStartMinutes: 9 * 60,
		ShiftEndMinutes:   17 * 60,
		ShiftActive:       true,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestClassifyCheckIn_OnTimeExact(t *testing.T) {
	status, note := ClassifyCheckIn(at(9, 0), nineToFiveShift(), 15, 30)
	assert.Equal(t, model.StatusOnTime, status)
	assert.Nil(t, note)
}

func TestClassifyCheckIn_WithinGrace(t *testing.T) {
	// Grace 15 menit: 09:15 masih on_time.
	status, _ := ClassifyCheckIn(at(9, 15), nineToFiveShift(), 15, 30)
	assert.Equal(t, model.StatusOnTime, status)
}

func TestClassifyCheckIn_LateAfterGrace(t *testing.T) {
	status, note := ClassifyCheckIn(at(9, 16), nineToFiveShift(), 15, 30)
	assert.Equal(t, model.StatusLate, status)
	assert.Nil(t, note)
}

func TestClassifyCheckIn_EarlyWithinTolerance(t *testing.T) {
	// Toleransi early 30 menit: 08:30 masih on_time.
	status, _ := ClassifyCheckIn(at(8, 30), nineToFiveShift(), 15, 30)
	assert.Equal(t, model.StatusOnTime, status)
}

func TestClassifyCheckIn_EarlyBeforeTolerance(t *testing.T) {
	status, _ := ClassifyCheckIn(at(8, 29), nineToFiveShift(), 15, 30)
	assert.Equal(t, model.StatusEarly, status)
}

func TestClassifyCheckIn_ZeroGrace(t *testing.T) {
	status, _ := ClassifyCheckIn(at(9, 1), nineToFiveShift(), 0, 30)
	assert.Equal(t, model.StatusLate, status)
}

func TestClassifyCheckIn_NoShift(t *testing.T) {
	status, note := ClassifyCheckIn(at(11, 0), nil, 15, 30)
	assert.Equal(t, model.StatusOnTime, status)
	require.NotNil(t, note)
	assert.Contains(t, *note, "Tidak ada shift")
}
