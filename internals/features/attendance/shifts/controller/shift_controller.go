package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyhr_backend/internals/features/attendance/shifts/dto"
	"skyhr_backend/internals/features/attendance/shifts/model"
	helper "skyhr_backend/internals/helpers"
)

type ShiftController struct {
	DB *gorm.DB
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db}
}

/* ===================== CREATE ===================== */
// POST /api/a/shifts
func (ctrl *ShiftController) Create(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(orgID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Shift berhasil dibuat", dto.NewShiftResponse(m))
}

/* ===================== LIST ===================== */
// GET /api/a/shifts?user_id=
func (ctrl *ShiftController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ShiftModel{}).
		Where("shift_organization_id = ?", orgID)
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("shift_user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.ShiftModel
	if err := q.Order("shift_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.ShiftResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewShiftResponse(r))
	}
	return helper.JsonList(c, "Daftar shift", out, helper.BuildPagination(paging, total))
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /api/a/shifts/:id
func (ctrl *ShiftController) Update(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ShiftName != nil {
		updates["shift_name"] = *req.ShiftName
	}
	if req.ShiftWeekdays != nil {
		updates["shift_weekdays"] = pq.Int32Array(*req.ShiftWeekdays)
	}
	if req.ShiftStartMinutes != nil {
		updates["shift_start_minutes"] = *req.ShiftStartMinutes
	}
	if req.ShiftEndMinutes != nil {
		updates["shift_end_minutes"] = *req.ShiftEndMinutes
	}
	if req.ShiftActive != nil {
		updates["shift_active"] = *req.ShiftActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "Tidak ada perubahan", fiber.Map{"shift_id": id})
	}

	var updated model.ShiftModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ShiftModel{}).
		Where("shift_id = ? AND shift_organization_id = ?", id, orgID).
		Clauses(clause.Returning{}).
		Updates(updates).
		Scan(&updated)
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Shift tidak ditemukan")
	}

	return helper.Success(c, "Shift berhasil diubah", dto.NewShiftResponse(updated))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /api/a/shifts/:id
func (ctrl *ShiftController) Delete(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("shift_id = ? AND shift_organization_id = ?", id, orgID).
		Delete(&model.ShiftModel{})
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Shift tidak ditemukan")
	}

	return helper.Success(c, "Shift dihapus", fiber.Map{"shift_id": id})
}

/* ===================== SETTINGS ===================== */
// GET /api/a/attendance-settings
func (ctrl *ShiftController) GetSettings(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var set model.AttendanceSettingModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_setting_organization_id = ?", orgID).
		Take(&set).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Setting belum dibuat")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Setting attendance", dto.NewAttendanceSettingResponse(set))
}

// PUT /api/a/attendance-settings
func (ctrl *ShiftController) UpsertSettings(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpsertAttendanceSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	set := model.AttendanceSettingModel{
		AttendanceSettingOrganizationID:    orgID,
		AttendanceSettingGracePeriodMin:    *req.GracePeriodMin,
		AttendanceSettingEarlyToleranceMin: *req.EarlyToleranceMin,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attendance_setting_organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_setting_grace_period_min",
				"attendance_setting_early_tolerance_min",
			}),
		}).
		Create(&set).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Setting attendance disimpan", dto.NewAttendanceSettingResponse(set))
}
