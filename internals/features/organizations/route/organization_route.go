package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgCtrl "skyhr_backend/internals/features/organizations/controller"
	orgService "skyhr_backend/internals/features/organizations/service"
)

func OrganizationUserRoutes(r fiber.Router, db *gorm.DB, registry *orgService.CollectionRegistry) {
	ctrl := orgCtrl.NewOrganizationController(db, registry)

	g := r.Group("/organizations")
	g.Get("/me", ctrl.GetActive)
}

func OrganizationAdminRoutes(r fiber.Router, db *gorm.DB, registry *orgService.CollectionRegistry) {
	ctrl := orgCtrl.NewOrganizationController(db, registry)

	g := r.Group("/organizations")
	g.Post("/sync", ctrl.Sync)
	g.Patch("/active", ctrl.SetActive)
}
