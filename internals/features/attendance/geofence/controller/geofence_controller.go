package controller

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyhr_backend/internals/features/attendance/geofence/dto"
	"skyhr_backend/internals/features/attendance/geofence/model"
	"skyhr_backend/internals/features/attendance/geofence/service"
	helper "skyhr_backend/internals/helpers"
)

type GeofenceController struct {
	DB *gorm.DB
}

func NewGeofenceController(db *gorm.DB) *GeofenceController {
	return &GeofenceController{DB: db}
}

/* ===================== CREATE ===================== */
// POST /api/a/geofences
func (ctrl *GeofenceController) Create(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateGeofenceRequest
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

	return helper.JsonCreated(c, "Geofence berhasil dibuat", dto.NewGeofenceResponse(m))
}

/* ===================== LIST ===================== */
// GET /api/a/geofences
func (ctrl *GeofenceController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.GeofenceModel{}).
		Where("geofence_organization_id = ?", orgID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.GeofenceModel
	if err := q.Order("geofence_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.GeofenceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewGeofenceResponse(r))
	}
	return helper.JsonList(c, "Daftar geofence", out, helper.BuildPagination(paging, total))
}

/* ===================== DETAIL ===================== */
// GET /api/a/geofences/:id
func (ctrl *GeofenceController) GetByID(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var gf model.GeofenceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_id = ? AND geofence_organization_id = ?", id, orgID).
		Take(&gf).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Geofence ditemukan", dto.NewGeofenceResponse(gf))
}

/* ===================== UPDATE (partial) ===================== */
// PUT /api/a/geofences/:id
func (ctrl *GeofenceController) Update(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateGeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.GeofenceName != nil {
		updates["geofence_name"] = *req.GeofenceName
	}
	if req.GeofenceCenterLatitude != nil {
		updates["geofence_center_latitude"] = *req.GeofenceCenterLatitude
	}
	if req.GeofenceCenterLongitude != nil {
		updates["geofence_center_longitude"] = *req.GeofenceCenterLongitude
	}
	if req.GeofenceRadiusM != nil {
		updates["geofence_radius_m"] = *req.GeofenceRadiusM
	}
	if req.GeofenceActive != nil {
		updates["geofence_active"] = *req.GeofenceActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "Tidak ada perubahan", fiber.Map{"geofence_id": id})
	}

	var updated model.GeofenceModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.GeofenceModel{}).
		Where("geofence_id = ? AND geofence_organization_id = ?", id, orgID).
		Clauses(clause.Returning{}).
		Updates(updates).
		Scan(&updated)
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan")
	}

	return helper.Success(c, "Geofence berhasil diubah", dto.NewGeofenceResponse(updated))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /api/a/geofences/:id
func (ctrl *GeofenceController) Delete(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_id = ? AND geofence_organization_id = ?", id, orgID).
		Delete(&model.GeofenceModel{})
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan")
	}

	return helper.Success(c, "Geofence dihapus", fiber.Map{"geofence_id": id})
}

/* ===================== CHECK ===================== */
// POST /api/u/geofences/check — uji keanggotaan titik
func (ctrl *GeofenceController) Check(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckGeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var gf model.GeofenceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_id = ? AND geofence_organization_id = ?", req.GeofenceID, orgID).
		Take(&gf).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	lat, err := service.ParseCoordinate(req.Latitude)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lon, err := service.ParseCoordinate(req.Longitude)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	eval, err := service.Evaluate(lat, lon, &gf)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Pengecekan geofence selesai", dto.CheckGeofenceResponse{
		IsWithinGeofence: eval.IsWithin,
		DistanceMeters:   int(math.Round(eval.DistanceMeters)),
	})
}
