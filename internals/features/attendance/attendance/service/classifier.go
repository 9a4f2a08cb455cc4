package service

import (
	"time"

	"skyhr_backend/internals/features/attendance/attendance/model"
	shiftModel "skyhr_backend/internals/features/attendance/shifts/model"
)

// ClassifyCheckIn menentukan status kehadiran dari waktu check-in
// relatif terhadap shift user.
//
// Tanpa shift aktif hari itu, status default on_time dengan catatan.
// Dengan shift:
//   - check_in <= start + grace            -> on_time
//   - check_in >  start + grace            -> late
//   - check_in <  start - early tolerance  -> early
func ClassifyCheckIn(checkIn time.Time, shift *shiftModel.ShiftModel, graceMin, earlyMin int) (string, *string) {
	if shift == nil {
		note := "Tidak ada shift aktif hari ini; status default on_time."
		return model.StatusOnTime, &note
	}

	start := shift.StartOn(checkIn)
	graceEnd := start.Add(time.Duration(graceMin) * time.Minute)
	earlyStart := start.Add(-time.Duration(earlyMin) * time.Minute)

	switch {
	case checkIn.After(graceEnd):
		return model.StatusLate, nil
	case checkIn.Before(earlyStart):
		return model.StatusEarly, nil
	default:
		return model.StatusOnTime, nil
	}
}
