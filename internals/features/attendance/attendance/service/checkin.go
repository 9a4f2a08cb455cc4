package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"skyhr_backend/internals/features/attendance/attendance/model"
	geofenceService "skyhr_backend/internals/features/attendance/geofence/service"
	bio "skyhr_backend/internals/features/biometrics/service"
	qrService "skyhr_backend/internals/features/qr/service"
)

// FaceMatcher: pencarian wajah di collection organization.
// nil match = tidak ada wajah yang cocok sama sekali.
type FaceMatcher interface {
	SearchFace(ctx context.Context, collectionID string, image []byte) (*bio.FaceMatch, error)
}

// CollectionResolver: memastikan collection wajah organization tersedia.
type CollectionResolver interface {
	Ensure(ctx context.Context, orgID string) (string, error)
}

type CheckInInput struct {
	UserID  string
	OrgID   string
	QrToken string

	Latitude  float64
	Longitude float64

	Image []byte
}

// Orchestrator menjalankan alur check-in/check-out lengkap: QR ->
// geofence -> duplikasi sesi -> verifikasi wajah -> klasifikasi status.
// Urutan gate tidak boleh diubah; gate yang gagal menghentikan alur
// tanpa menulis event apapun.
type Orchestrator struct {
	Events      EventStore
	Shifts      ShiftStore
	Geofences   GeofenceStore
	Faces       FaceMatcher
	Collections CollectionResolver

	Secret    string
	Threshold float32

	// Dapat diganti di test.
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) CheckIn(ctx context.Context, in CheckInInput) (*model.AttendanceEventModel, error) {
	now := o.now()

	// 1) Payload QR
	payload, err := qrService.DecodePayload(in.QrToken, o.Secret)
	if err != nil {
		var decodeErr *qrService.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "QR tidak valid")
		}
		return nil, err
	}
	if payload.OrganizationID != in.OrgID {
		return nil, fiber.NewError(fiber.StatusForbidden, "QR bukan milik organization Anda")
	}

	// 2) Geofence
	gf, err := o.Geofences.FindActive(ctx, in.OrgID, payload.LocationID)
	if err != nil {
		return nil, err
	}
	if gf == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Geofence tidak ditemukan atau tidak aktif")
	}
	eval, err := geofenceService.Evaluate(in.Latitude, in.Longitude, gf)
	if err != nil {
		return nil, err
	}

	// 3) Satu open session per hari
	open, err := o.Events.FindOpenSession(ctx, in.UserID, in.OrgID, now)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Anda sudah check-in hari ini")
	}

	// 4) Verifikasi wajah
	collectionID, err := o.Collections.Ensure(ctx, in.OrgID)
	if err != nil {
		return nil, err
	}
	match, err := o.Faces.SearchFace(ctx, collectionID, in.Image)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Wajah tidak dikenali. Daftarkan wajah terlebih dahulu")
	}
	if match.ExternalID != in.UserID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Wajah tidak cocok dengan user login")
	}
	if match.Similarity < o.Threshold {
		return nil, fiber.NewError(fiber.StatusForbidden, "Kecocokan wajah di bawah ambang batas")
	}

	// 5) Klasifikasi status
	shift, err := o.Shifts.ActiveShift(ctx, in.UserID, in.OrgID, now)
	if err != nil {
		return nil, err
	}
	graceMin, earlyMin, err := o.Shifts.Settings(ctx, in.OrgID)
	if err != nil {
		return nil, err
	}
	status, note := ClassifyCheckIn(now, shift, graceMin, earlyMin)

	// Di luar geofence: status di-override, check-in tetap tercatat.
	distance := int(math.Round(eval.DistanceMeters))
	if !eval.IsWithin {
		status = model.StatusOutOfBounds
		n := fmt.Sprintf("Check-in %dm from geofence (radius: %dm).", distance, gf.GeofenceRadiusM)
		note = &n
	}

	lat := strconv.FormatFloat(in.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(in.Longitude, 'f', -1, 64)
	confidence := strconv.FormatFloat(float64(match.Similarity), 'f', -1, 32)
	within := eval.IsWithin

	ev := &model.AttendanceEventModel{
		AttendanceEventUserID:             in.UserID,
		AttendanceEventOrganizationID:     in.OrgID,
		AttendanceEventCheckIn:            now,
		AttendanceEventIsVerified:         true,
		AttendanceEventSource:             model.SourceQrFace,
		AttendanceEventLatitude:           &lat,
		AttendanceEventLongitude:          &lon,
		AttendanceEventDistanceToGeofence: &distance,
		AttendanceEventIsWithinGeofence:   &within,
		AttendanceEventStatus:             status,
		AttendanceEventFaceConfidence:     &confidence,
		AttendanceEventNotes:              note,
	}
	if shift != nil {
		ev.AttendanceEventShiftID = &shift.ShiftID
	}

	if err := o.Events.CreateEvent(ctx, ev); err != nil {
		if errors.Is(err, ErrDuplicateOpenSession) {
			return nil, fiber.NewError(fiber.StatusConflict, "Anda sudah check-in hari ini")
		}
		return nil, err
	}
	return ev, nil
}

type CheckOutInput struct {
	UserID string
	OrgID  string

	// Wajib dikirim klien (kontrak endpoint), tapi geofence tidak
	// dievaluasi ulang saat checkout: sesi ditutup sebagai dalam area.
	Latitude  float64
	Longitude float64
}

// CheckOut menutup open session hari ini dan mengembalikan event beserta
// durasi kerja dalam menit.
func (o *Orchestrator) CheckOut(ctx context.Context, in CheckOutInput) (*model.AttendanceEventModel, int, error) {
	now := o.now()

	open, err := o.Events.FindOpenSession(ctx, in.UserID, in.OrgID, now)
	if err != nil {
		return nil, 0, err
	}
	if open == nil {
		return nil, 0, fiber.NewError(fiber.StatusNotFound, "Tidak ada sesi check-in yang aktif")
	}

	closed, err := o.Events.CloseSession(ctx, open.AttendanceEventID, in.OrgID, now, true, 0)
	if err != nil {
		return nil, 0, err
	}

	duration := int(now.Sub(closed.AttendanceEventCheckIn).Minutes())
	if duration < 0 {
		duration = 0
	}
	return closed, duration, nil
}

// MarkAbsences menandai absent semua user yang shift-nya sudah berakhir
// hari ini tanpa event kehadiran apapun. Idempotent: user yang sudah
// punya event (termasuk absent) dilewati.
func (o *Orchestrator) MarkAbsences(ctx context.Context, orgID string) (int, error) {
	now := o.now()

	shifts, err := o.Shifts.ShiftsEndedBefore(ctx, orgID, now)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range shifts {
		shift := &shifts[i]

		has, err := o.Events.HasEventOn(ctx, shift.ShiftUserID, orgID, now)
		if err != nil {
			return marked, err
		}
		if has {
			continue
		}

		end := shift.EndOn(now)
		note := "Ditandai absent otomatis: tidak ada check-in sampai shift berakhir."
		ev := &model.AttendanceEventModel{
			AttendanceEventUserID:         shift.ShiftUserID,
			AttendanceEventOrganizationID: orgID,
			AttendanceEventCheckIn:        end,
			AttendanceEventCheckOut:       &end,
			AttendanceEventIsVerified:     false,
			AttendanceEventSource:         model.SourceSystem,
			AttendanceEventStatus:         model.StatusAbsent,
			AttendanceEventShiftID:        &shift.ShiftID,
			AttendanceEventNotes:          &note,
		}
		if err := o.Events.CreateEvent(ctx, ev); err != nil {
			if errors.Is(err, ErrDuplicateOpenSession) {
				continue
			}
			return marked, err
		}
		marked++
	}
	return marked, nil
}
