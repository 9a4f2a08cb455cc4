package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyhr_backend/internals/features/organizations/dto"
	"skyhr_backend/internals/features/organizations/model"
	orgService "skyhr_backend/internals/features/organizations/service"
	helper "skyhr_backend/internals/helpers"
)

type OrganizationController struct {
	DB       *gorm.DB
	Registry *orgService.CollectionRegistry
}

func NewOrganizationController(db *gorm.DB, registry *orgService.CollectionRegistry) *OrganizationController {
	return &OrganizationController{DB: db, Registry: registry}
}

/* ===================== GET ME ===================== */
// GET /api/u/organizations/me
func (ctrl *OrganizationController) GetActive(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var org model.OrganizationModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("organization_id = ?", orgID).
		Take(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Organization tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Organization ditemukan", dto.NewOrganizationResponse(org))
}

/* ===================== SYNC ===================== */
// POST /api/a/organizations/sync — upsert profil dari provider auth
func (ctrl *OrganizationController) Sync(c *fiber.Ctx) error {
	var req dto.SyncOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if req.OrganizationID != orgID {
		return helper.Error(c, fiber.StatusForbidden, "Hanya boleh sync organization aktif")
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"organization_name", "organization_slug", "organization_logo",
			}),
		}).
		Create(&m).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Organization tersinkron", dto.NewOrganizationResponse(m))
}

/* ===================== SET ACTIVE ===================== */
// PATCH /api/a/organizations/active — nonaktifkan org sekaligus
// menghapus face collection miliknya.
func (ctrl *OrganizationController) SetActive(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SetOrganizationActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.OrganizationModel{}).
		Where("organization_id = ?", orgID).
		Update("organization_is_active", *req.IsActive)
	if tx.Error != nil {
		return helper.FromFiberError(c, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Organization tidak ditemukan")
	}

	if !*req.IsActive {
		if err := ctrl.Registry.Drop(c.UserContext(), orgID); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	return helper.Success(c, "Status organization diubah", fiber.Map{
		"organization_id": orgID,
		"is_active":       *req.IsActive,
	})
}
