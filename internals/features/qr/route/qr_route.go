package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/features/qr/controller"
	"skyhr_backend/internals/storage"
)

// QrAdminRoutes — pembuatan QR lokasi, khusus owner/admin organization.
func QrAdminRoutes(admin fiber.Router, db *gorm.DB, blob storage.BlobStorage) {
	ctrl := controller.NewQrController(db, blob)

	qr := admin.Group("/qr")
	qr.Post("/register-location", ctrl.RegisterLocation)
}

// QrUserRoutes — pembacaan payload QR oleh user login.
func QrUserRoutes(user fiber.Router, db *gorm.DB, blob storage.BlobStorage) {
	ctrl := controller.NewQrController(db, blob)

	qr := user.Group("/qr")
	qr.Post("/deobfuscate", ctrl.Deobfuscate)
}
