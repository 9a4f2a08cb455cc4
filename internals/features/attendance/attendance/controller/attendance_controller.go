package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyhr_backend/internals/configs"
	"skyhr_backend/internals/features/attendance/attendance/dto"
	"skyhr_backend/internals/features/attendance/attendance/model"
	"skyhr_backend/internals/features/attendance/attendance/service"
	geofenceModel "skyhr_backend/internals/features/attendance/geofence/model"
	geofenceService "skyhr_backend/internals/features/attendance/geofence/service"
	qrService "skyhr_backend/internals/features/qr/service"
	helper "skyhr_backend/internals/helpers"
)

// Foto wajah dari klien mobile; dibatasi sebelum dikirim ke provider.
const maxFaceImageBytes = 5 << 20

type AttendanceController struct {
	DB           *gorm.DB
	Orchestrator *service.Orchestrator
}

func NewAttendanceController(db *gorm.DB, orch *service.Orchestrator) *AttendanceController {
	return &AttendanceController{DB: db, Orchestrator: orch}
}

/* ===================== VALIDATE QR ===================== */
// POST /api/u/attendance/qr/validate
//
// Mengecek payload QR terhadap state geofence saat ini (tanpa membuat
// event apapun). Dipakai klien sebelum membuka kamera.
func (ctrl *AttendanceController) ValidateQr(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ValidateQrRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payload, err := qrService.DecodePayload(req.QrData, configs.QRSecret)
	if err != nil {
		var decodeErr *qrService.DecodeError
		if errors.As(err, &decodeErr) {
			return helper.Error(c, fiber.StatusBadRequest, "QR tidak valid")
		}
		return helper.FromFiberError(c, err)
	}
	if payload.OrganizationID != orgID {
		return helper.Error(c, fiber.StatusForbidden, "QR bukan milik organization Anda")
	}

	var gf geofenceModel.GeofenceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_id = ? AND geofence_organization_id = ? AND geofence_active = TRUE",
			payload.LocationID, orgID).
		First(&gf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan atau tidak aktif")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "QR valid", dto.ValidateQrResponse{
		OrganizationID: payload.OrganizationID,
		LocationID:     payload.LocationID,
		LocationName:   gf.GeofenceName,
		IsValid:        true,
	})
}

/* ===================== CHECK-IN ===================== */
// POST /api/u/attendance/check-in (multipart/form-data)
//
// Field: qr_payload, latitude, longitude + file "image" (foto wajah).
// Seluruh gate dijalankan orchestrator dengan urutan tetap.
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	req := dto.CheckInRequest{
		QrData:    strings.TrimSpace(c.FormValue("qr_data")),
		Latitude:  strings.TrimSpace(c.FormValue("latitude")),
		Longitude: strings.TrimSpace(c.FormValue("longitude")),
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	lat, err := geofenceService.ParseCoordinate(req.Latitude)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lon, err := geofenceService.ParseCoordinate(req.Longitude)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	image, err := readFaceImage(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ev, err := ctrl.Orchestrator.CheckIn(c.UserContext(), service.CheckInInput{
		UserID:    userID,
		OrgID:     orgID,
		QrToken:   req.QrData,
		Latitude:  lat,
		Longitude: lon,
		Image:     image,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Check-in berhasil", dto.NewAttendanceEventResponse(ev))
}

func readFaceImage(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Foto wajah wajib dikirim di field 'image'")
	}
	if fileHeader.Size > maxFaceImageBytes {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Ukuran foto maksimal 5MB")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Foto wajah tidak bisa dibaca")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFaceImageBytes+1))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Foto wajah tidak bisa dibaca")
	}
	if len(data) > maxFaceImageBytes {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Ukuran foto maksimal 5MB")
	}
	return data, nil
}

/* ===================== CHECK-OUT ===================== */
// POST /api/u/attendance/check-out (multipart/form-data)
//
// Field: latitude, longitude. Koordinat wajib dikirim meskipun geofence
// tidak dievaluasi ulang saat checkout.
func (ctrl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	latRaw := strings.TrimSpace(c.FormValue("latitude"))
	lonRaw := strings.TrimSpace(c.FormValue("longitude"))
	if latRaw == "" || lonRaw == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Latitude dan longitude wajib dikirim")
	}
	lat, err := geofenceService.ParseCoordinate(latRaw)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lon, err := geofenceService.ParseCoordinate(lonRaw)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ev, duration, err := ctrl.Orchestrator.CheckOut(c.UserContext(), service.CheckOutInput{
		UserID:    userID,
		OrgID:     orgID,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := dto.NewAttendanceEventResponse(ev)
	resp.WorkDurationMinutes = &duration
	return helper.Success(c, "Check-out berhasil", resp)
}

/* ===================== REPORT ===================== */
// GET /api/u/attendance/report?status=&from=&to=
func (ctrl *AttendanceController) MyReport(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.report(c, orgID, userID)
}

// GET /api/a/attendance/report?user_id=&status=&from=&to=
func (ctrl *AttendanceController) Report(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.report(c, orgID, strings.TrimSpace(c.Query("user_id")))
}

func (ctrl *AttendanceController) report(c *fiber.Ctx, orgID, userID string) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.AttendanceEventModel{}).
		Where("attendance_event_organization_id = ?", orgID)
	if userID != "" {
		q = q.Where("attendance_event_user_id = ?", userID)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.ValidStatus(status) {
			return helper.Error(c, fiber.StatusBadRequest, "Status tidak dikenal")
		}
		q = q.Where("attendance_event_status = ?", status)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		q = q.Where("attendance_event_check_in >= ?", from)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		q = q.Where("attendance_event_check_in < ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.AttendanceEventModel
	if err := q.Order("attendance_event_check_in DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.AttendanceEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewAttendanceEventResponse(&rows[i]))
	}
	return helper.JsonList(c, "Riwayat kehadiran", out, helper.BuildPagination(paging, total))
}

/* ===================== FLAGGED ===================== */
// GET /api/a/attendance/flagged
//
// Event yang perlu review manual: di luar geofence, absent, terlambat,
// atau terindikasi spoof.
func (ctrl *AttendanceController) Flagged(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	flaggedStatuses := []string{model.StatusOutOfBounds, model.StatusAbsent, model.StatusLate}
	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.AttendanceEventModel{}).
		Where("attendance_event_organization_id = ?", orgID).
		Where("attendance_event_status IN ? OR attendance_event_spoof_flag = TRUE", flaggedStatuses)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.AttendanceEventModel
	if err := q.Order("attendance_event_check_in DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.AttendanceEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewAttendanceEventResponse(&rows[i]))
	}
	return helper.JsonList(c, "Event yang perlu review", out, helper.BuildPagination(paging, total))
}

/* ===================== MARK ABSENCES ===================== */
// POST /api/a/attendance/admin/mark-absences
//
// Sweep manual oleh admin setelah shift berakhir. Idempotent.
func (ctrl *AttendanceController) MarkAbsences(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	marked, err := ctrl.Orchestrator.MarkAbsences(c.UserContext(), orgID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Sweep absent selesai", dto.MarkAbsencesResponse{MarkedAbsent: marked})
}

/* ===================== UPDATE STATUS ===================== */
// PUT /api/a/attendance/admin/update-status/:eventId
func (ctrl *AttendanceController) UpdateStatus(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !model.ValidStatus(req.Status) {
		return helper.Error(c, fiber.StatusBadRequest, "Status tidak dikenal")
	}

	ev, err := ctrl.Orchestrator.Events.UpdateStatus(c.UserContext(), eventID, orgID, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status event berhasil diubah", dto.NewAttendanceEventResponse(ev))
}
