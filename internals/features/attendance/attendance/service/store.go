package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyhr_backend/internals/configs"
	"skyhr_backend/internals/features/attendance/attendance/model"
	geofenceModel "skyhr_backend/internals/features/attendance/geofence/model"
	shiftModel "skyhr_backend/internals/features/attendance/shifts/model"
)

// ErrDuplicateOpenSession: sudah ada sesi check-in yang belum ditutup
// untuk user tersebut di hari yang sama (ditangkap dari unique index).
var ErrDuplicateOpenSession = errors.New("sesi check-in masih terbuka")

/* =============== INTERFACES =============== */

// EventStore: persistensi sesi kehadiran. Orchestrator hanya bicara
// lewat interface ini supaya alurnya bisa diuji tanpa DB.
type EventStore interface {
	FindOpenSession(ctx context.Context, userID, orgID string, day time.Time) (*model.AttendanceEventModel, error)
	CreateEvent(ctx context.Context, ev *model.AttendanceEventModel) error
	CloseSession(ctx context.Context, eventID uuid.UUID, orgID string, checkOut time.Time, isWithin bool, distanceM int) (*model.AttendanceEventModel, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, orgID, status string, notes *string) (*model.AttendanceEventModel, error)
	HasEventOn(ctx context.Context, userID, orgID string, day time.Time) (bool, error)
}

// ShiftStore: shift aktif + setting toleransi per organization.
type ShiftStore interface {
	ActiveShift(ctx context.Context, userID, orgID string, at time.Time) (*shiftModel.ShiftModel, error)
	Settings(ctx context.Context, orgID string) (graceMin, earlyMin int, err error)
	ShiftsEndedBefore(ctx context.Context, orgID string, at time.Time) ([]shiftModel.ShiftModel, error)
}

// GeofenceStore: lookup geofence aktif milik organization.
type GeofenceStore interface {
	FindActive(ctx context.Context, orgID, geofenceID string) (*geofenceModel.GeofenceModel, error)
}

/* =============== GORM IMPLEMENTATION =============== */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

// dayBoundsUTC: [awal, akhir) hari kalender UTC yang memuat t.
// Harus konsisten dengan ekspresi di ux_attendance_open_session.
func dayBoundsUTC(t time.Time) (time.Time, time.Time) {
	y, m, d := t.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *GormStore) FindOpenSession(ctx context.Context, userID, orgID string, day time.Time) (*model.AttendanceEventModel, error) {
	start, end := dayBoundsUTC(day)

	var ev model.AttendanceEventModel
	err := s.DB.WithContext(ctx).
		Where("attendance_event_user_id = ? AND attendance_event_organization_id = ?", userID, orgID).
		Where("attendance_event_check_out IS NULL").
		Where("attendance_event_check_in >= ? AND attendance_event_check_in < ?", start, end).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *GormStore) CreateEvent(ctx context.Context, ev *model.AttendanceEventModel) error {
	if err := s.DB.WithContext(ctx).Create(ev).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOpenSession
		}
		return err
	}
	return nil
}

func (s *GormStore) CloseSession(ctx context.Context, eventID uuid.UUID, orgID string, checkOut time.Time, isWithin bool, distanceM int) (*model.AttendanceEventModel, error) {
	var ev model.AttendanceEventModel
	res := s.DB.WithContext(ctx).
		Model(&ev).
		Clauses(clause.Returning{}).
		Where("attendance_event_id = ? AND attendance_event_organization_id = ?", eventID, orgID).
		Where("attendance_event_check_out IS NULL").
		Updates(map[string]interface{}{
			"attendance_event_check_out":              checkOut,
			"attendance_event_is_within_geofence":     isWithin,
			"attendance_event_distance_to_geofence_m": distanceM,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &ev, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, eventID uuid.UUID, orgID, status string, notes *string) (*model.AttendanceEventModel, error) {
	updates := map[string]interface{}{"attendance_event_status": status}
	if notes != nil {
		updates["attendance_event_notes"] = *notes
	}

	var ev model.AttendanceEventModel
	res := s.DB.WithContext(ctx).
		Model(&ev).
		Clauses(clause.Returning{}).
		Where("attendance_event_id = ? AND attendance_event_organization_id = ?", eventID, orgID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &ev, nil
}

func (s *GormStore) HasEventOn(ctx context.Context, userID, orgID string, day time.Time) (bool, error) {
	start, end := dayBoundsUTC(day)

	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.AttendanceEventModel{}).
		Where("attendance_event_user_id = ? AND attendance_event_organization_id = ?", userID, orgID).
		Where("attendance_event_check_in >= ? AND attendance_event_check_in < ?", start, end).
		Count(&count).Error
	return count > 0, err
}

/* ---- ShiftStore ---- */

func (s *GormStore) ActiveShift(ctx context.Context, userID, orgID string, at time.Time) (*shiftModel.ShiftModel, error) {
	var shifts []shiftModel.ShiftModel
	err := s.DB.WithContext(ctx).
		Where("shift_user_id = ? AND shift_organization_id = ? AND shift_active = TRUE", userID, orgID).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	// Filter hari berlaku di aplikasi: weekday array kecil, tidak perlu
	// operator array Postgres di jalur panas.
	for i := range shifts {
		if shifts[i].CoversWeekday(at.Weekday()) {
			return &shifts[i], nil
		}
	}
	return nil, nil
}

func (s *GormStore) Settings(ctx context.Context, orgID string) (int, int, error) {
	var setting shiftModel.AttendanceSettingModel
	err := s.DB.WithContext(ctx).
		Where("attendance_setting_organization_id = ?", orgID).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return configs.DefaultGracePeriodMin, configs.DefaultEarlyToleranceMin, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return setting.AttendanceSettingGracePeriodMin, setting.AttendanceSettingEarlyToleranceMin, nil
}

func (s *GormStore) ShiftsEndedBefore(ctx context.Context, orgID string, at time.Time) ([]shiftModel.ShiftModel, error) {
	var shifts []shiftModel.ShiftModel
	err := s.DB.WithContext(ctx).
		Where("shift_organization_id = ? AND shift_active = TRUE", orgID).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	ended := shifts[:0]
	for i := range shifts {
		if shifts[i].CoversWeekday(at.Weekday()) && shifts[i].EndOn(at).Before(at) {
			ended = append(ended, shifts[i])
		}
	}
	return ended, nil
}

/* ---- GeofenceStore ---- */

func (s *GormStore) FindActive(ctx context.Context, orgID, geofenceID string) (*geofenceModel.GeofenceModel, error) {
	var gf geofenceModel.GeofenceModel
	err := s.DB.WithContext(ctx).
		Where("geofence_id = ? AND geofence_organization_id = ? AND geofence_active = TRUE", geofenceID, orgID).
		First(&gf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gf, nil
}
