package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyhr_backend/internals/features/visitors/dto"
	"skyhr_backend/internals/features/visitors/model"
	helper "skyhr_backend/internals/helpers"
)

type VisitorController struct {
	DB *gorm.DB
}

func NewVisitorController(db *gorm.DB) *VisitorController {
	return &VisitorController{DB: db}
}

/* ===================== LIST ===================== */
// GET /api/u/visitors?status=&q=
//
// Owner/admin melihat seluruh pengajuan organization; member hanya
// pengajuan miliknya sendiri.
func (ctrl *VisitorController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.VisitorModel{}).
		Where("visitor_organization_id = ?", orgID)
	if !helper.IsPrivilegedRole(helper.GetOrgRoleFromToken(c)) {
		q = q.Where("visitor_created_by = ?", userID)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.ValidVisitorStatus(status) {
			return helper.Error(c, fiber.StatusBadRequest, "Status tidak dikenal")
		}
		q = q.Where("visitor_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("visitor_name ILIKE ? OR visitor_purpose ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.VisitorModel
	if err := q.Order("visitor_visit_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.VisitorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewVisitorResponse(r))
	}
	return helper.JsonList(c, "Daftar pengajuan kunjungan", out, helper.BuildPagination(paging, total))
}

/* ===================== CREATE ===================== */
// POST /api/u/visitors
//
// Pengajuan owner/admin langsung approved (self-approve); member masuk
// antrian pending.
func (ctrl *VisitorController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	visitDate, ok := dto.ParseVisitDate(req.VisitDate)
	if !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Format visit_date tidak valid")
	}

	m := model.VisitorModel{
		VisitorOrganizationID: orgID,
		VisitorCreatedBy:      userID,
		VisitorName:           strings.TrimSpace(req.Name),
		VisitorPhone:          strings.TrimSpace(req.Phone),
		VisitorPurpose:        strings.TrimSpace(req.Purpose),
		VisitorVisitDate:      visitDate,
		VisitorAccessAreas:    dto.AccessAreasToArray(req.AccessAreas),
		VisitorStatus:         model.VisitorStatusPending,
	}
	if helper.IsPrivilegedRole(helper.GetOrgRoleFromToken(c)) {
		m.VisitorStatus = model.VisitorStatusApproved
		m.VisitorApprovedBy = &userID
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Pengajuan kunjungan berhasil dibuat", dto.NewVisitorResponse(m))
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /api/u/visitors/:id
//
// Hanya pengajuan milik sendiri yang masih pending.
func (ctrl *VisitorController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["visitor_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["visitor_phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Purpose != nil {
		updates["visitor_purpose"] = strings.TrimSpace(*req.Purpose)
	}
	if req.VisitDate != nil {
		visitDate, ok := dto.ParseVisitDate(*req.VisitDate)
		if !ok {
			return helper.Error(c, fiber.StatusBadRequest, "Format visit_date tidak valid")
		}
		updates["visitor_visit_date"] = visitDate
	}
	if req.AccessAreas != nil {
		updates["visitor_access_areas"] = dto.AccessAreasToArray(*req.AccessAreas)
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var m model.VisitorModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("visitor_id = ? AND visitor_organization_id = ? AND visitor_created_by = ?", id, orgID, userID).
		Where("visitor_status = ?", model.VisitorStatusPending).
		Updates(updates)
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Pengajuan tidak ditemukan atau sudah diproses")
	}
	return helper.Success(c, "Pengajuan kunjungan berhasil diubah", dto.NewVisitorResponse(m))
}

/* ===================== CANCEL ===================== */
// PATCH /api/u/visitors/:id/cancel
func (ctrl *VisitorController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.VisitorModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("visitor_id = ? AND visitor_organization_id = ? AND visitor_created_by = ?", id, orgID, userID).
		Where("visitor_status IN ?", []string{model.VisitorStatusPending, model.VisitorStatusApproved}).
		Update("visitor_status", model.VisitorStatusCancelled)
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Pengajuan tidak ditemukan atau tidak bisa dibatalkan")
	}
	return helper.Success(c, "Pengajuan kunjungan dibatalkan", dto.NewVisitorResponse(m))
}

/* ===================== APPROVE / REJECT ===================== */
// PATCH /api/a/visitors/:id/approve | /reject
//
// Hanya pengajuan pending yang bisa diputuskan.
func (ctrl *VisitorController) Approve(c *fiber.Ctx) error {
	return ctrl.decide(c, model.VisitorStatusApproved, "Pengajuan kunjungan disetujui")
}

func (ctrl *VisitorController) Reject(c *fiber.Ctx) error {
	return ctrl.decide(c, model.VisitorStatusRejected, "Pengajuan kunjungan ditolak")
}

func (ctrl *VisitorController) decide(c *fiber.Ctx, status, message string) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.VisitorModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("visitor_id = ? AND visitor_organization_id = ?", id, orgID).
		Where("visitor_status = ?", model.VisitorStatusPending).
		Updates(map[string]interface{}{
			"visitor_status":      status,
			"visitor_approved_by": adminID,
		})
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Pengajuan tidak ditemukan atau sudah diproses")
	}
	return helper.Success(c, message, dto.NewVisitorResponse(m))
}
