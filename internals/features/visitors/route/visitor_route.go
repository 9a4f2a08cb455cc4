package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/features/visitors/controller"
)

// VisitorUserRoutes — pengajuan kunjungan oleh user login.
func VisitorUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVisitorController(db)

	visitors := user.Group("/visitors")
	visitors.Get("/", ctrl.List)
	visitors.Post("/", ctrl.Create)
	visitors.Patch("/:id", ctrl.Update)
	visitors.Patch("/:id/cancel", ctrl.Cancel)
}

// VisitorAdminRoutes — keputusan approve/reject oleh owner/admin.
func VisitorAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVisitorController(db)

	visitors := admin.Group("/visitors")
	visitors.Patch("/:id/approve", ctrl.Approve)
	visitors.Patch("/:id/reject", ctrl.Reject)
}
