package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gfCtrl "skyhr_backend/internals/features/attendance/geofence/controller"
)

func GeofenceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := gfCtrl.NewGeofenceController(db)

	g := r.Group("/geofences")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}

func GeofenceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := gfCtrl.NewGeofenceController(db)

	g := r.Group("/geofences")
	g.Post("/check", ctrl.Check)
}
